/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package term

import (
	"time"

	"github.com/common-nighthawk/go-figure"

	"gonovel/internal/script"
)

// errorStyle dresses compile-error banners.
var errorStyle = script.Style{Color: "lightred"}

// Messenger is the worker-side half of the presentation boundary. All
// pacing (typewriter reveal, title holds) sleeps here, on the worker's
// goroutine; the UI loop only ever renders.
type Messenger struct {
	cmds    chan<- command
	lines   <-chan string
	noColor bool
}

var _ script.Sink = (*Messenger)(nil)

// Close ends the UI loop once the script is done.
func (m *Messenger) Close() {
	close(m.cmds)
}

func (m *Messenger) render(t script.StyledText) string {
	if m.noColor {
		return t.Text
	}
	return styleFor(t.Style).Render(t.Text)
}

func (m *Messenger) Clear() {
	m.cmds <- command{kind: cmdClear}
}

func (m *Messenger) Append(t script.StyledText) {
	m.cmds <- command{kind: cmdAppend, text: m.render(t) + "\n"}
}

// Typewrite reveals the text rune by rune spread over the given duration,
// blocking the worker until the reveal completes. A non-positive duration
// appends at once.
func (m *Messenger) Typewrite(t script.StyledText, seconds float64) {
	runes := []rune(t.Text)
	if seconds <= 0 || len(runes) == 0 {
		m.Append(t)
		return
	}
	delta := time.Duration(seconds / float64(len(runes)) * float64(time.Second))
	for _, r := range runes {
		m.cmds <- command{kind: cmdAppend, text: m.render(script.StyledText{Text: string(r), Style: t.Style})}
		time.Sleep(delta)
	}
	m.cmds <- command{kind: cmdAppend, text: "\n"}
}

func (m *Messenger) SetFrame(content string) {
	m.cmds <- command{kind: cmdSetFrame, text: content}
}

func (m *Messenger) ClearFrame() {
	m.cmds <- command{kind: cmdClearFrame}
}

func (m *Messenger) AlignFrame(a script.Alignment) {
	m.cmds <- command{kind: cmdAlignFrame, align: a}
}

// ShowTitle renders a FIGlet banner and holds it for waitSeconds.
func (m *Messenger) ShowTitle(text string, waitSeconds int64) {
	banner := figure.NewFigure(text, "", true).String()
	m.cmds <- command{kind: cmdTitle, text: banner}
	if waitSeconds > 0 {
		time.Sleep(time.Duration(waitSeconds) * time.Second)
	}
}

// GetLine blocks until the presentation loop captures one input line.
func (m *Messenger) GetLine() string {
	m.cmds <- command{kind: cmdPrompt}
	return <-m.lines
}

// ReportError shows a titled error block: reverse/bold heading, message
// line, and an ERROR banner held for two seconds.
func (m *Messenger) ReportError(title, message string) {
	heading := script.StyledText{
		Text:  title,
		Style: errorStyle.WithEffect(script.EffectReverse).WithEffect(script.EffectBold),
	}
	m.Append(heading)
	m.Append(script.StyledText{Text: message, Style: errorStyle})
	m.ShowTitle("ERROR", 2)
}
