/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package term implements the presentation side of the engine: a loop that
// owns stdout/stdin, fed through a one-way command channel by the script
// worker, with a single-slot reply channel carrying captured input lines
// back. The worker and the loop never share mutable structures.
package term

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gonovel/internal/script"
)

type cmdKind int

const (
	cmdAppend cmdKind = iota
	cmdClear
	cmdSetFrame
	cmdClearFrame
	cmdAlignFrame
	cmdTitle
	cmdPrompt
)

type command struct {
	kind  cmdKind
	text  string
	align script.Alignment
}

// Options configures the terminal loop. Zero values mean stdout/stdin,
// 80 columns, colors on.
type Options struct {
	Out     io.Writer
	In      io.Reader
	Width   int
	NoColor bool
}

// UI processes presentation commands on the caller's goroutine. It owns the
// output writer and the input reader exclusively.
type UI struct {
	cmds  chan command
	lines chan string
	out   io.Writer
	in    *bufio.Reader
	width int
	align script.Alignment
}

// New builds the UI loop and the Messenger handed to the script worker.
func New(opts Options) (*UI, *Messenger) {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	cmds := make(chan command, 16)
	lines := make(chan string)
	ui := &UI{
		cmds:  cmds,
		lines: lines,
		out:   opts.Out,
		in:    bufio.NewReader(opts.In),
		width: opts.Width,
	}
	m := &Messenger{cmds: cmds, lines: lines, noColor: opts.NoColor}
	return ui, m
}

// Run processes commands until the messenger is closed. Must run on the
// goroutine that owns the terminal.
func (u *UI) Run() {
	for cmd := range u.cmds {
		switch cmd.kind {
		case cmdAppend:
			io.WriteString(u.out, cmd.text)
		case cmdClear:
			io.WriteString(u.out, "\x1b[2J\x1b[H")
		case cmdSetFrame:
			io.WriteString(u.out, u.placeFrame(cmd.text)+"\n")
		case cmdClearFrame:
			io.WriteString(u.out, "\n")
		case cmdAlignFrame:
			u.align = cmd.align
		case cmdTitle:
			io.WriteString(u.out, cmd.text+"\n")
		case cmdPrompt:
			u.lines <- u.readLine()
		}
	}
}

func (u *UI) placeFrame(content string) string {
	if u.align == script.AlignCenter {
		return lipgloss.PlaceHorizontal(u.width, lipgloss.Center, content)
	}
	return content
}

func (u *UI) readLine() string {
	io.WriteString(u.out, "> ")
	line, err := u.in.ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}
