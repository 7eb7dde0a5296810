/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gonovel/internal/config"
	"gonovel/internal/export"
	applog "gonovel/internal/log"
	"gonovel/internal/script"
	"gonovel/internal/term"
	"gonovel/internal/transcript"
	"gonovel/internal/version"
)

func main() {
	args := os.Args
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println(version.String())
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
	}

	fs := flag.NewFlagSet("gonovel", flag.ExitOnError)
	formatFlag := fs.String("format", cfg.Player.Notation, "script notation: yaml or json")
	widthFlag := fs.Int("width", cfg.Player.Width, "terminal width in columns")
	noColorFlag := fs.Bool("no-color", cfg.Player.NoColor, "disable ANSI styling")
	noTranscriptFlag := fs.Bool("no-transcript", !cfg.Transcript.Enabled, "disable transcript recording")
	exportPDF := fs.String("export-pdf", "", "export the script as a screenplay PDF to this path and exit")
	exportText := fs.String("export-text", "", "export the script as a plain-text screenplay to this path and exit")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: gonovel [flags] <project-dir>\n       gonovel version\n\nFlags:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args[1:])

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	root := fs.Arg(0)

	applog.Init(applog.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	l := applog.WithComponent("cli")

	format, err := script.ParseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if *exportPDF != "" || *exportText != "" {
		os.Exit(runExport(root, format, *exportPDF, *exportText))
	}

	ui, messenger := term.New(term.Options{Width: *widthFlag, NoColor: *noColorFlag})

	// The worker compiles and plays the script; the main goroutine owns the
	// terminal until the messenger closes.
	go func() {
		defer messenger.Close()

		project, err := script.CompileProject(root, format)
		if err != nil {
			l.Error("compile failed", slog.Any("err", err))
			messenger.ReportError(errTitle(err), err.Error())
			return
		}

		var sink script.Sink = messenger
		if !*noTranscriptFlag {
			store, err := transcript.Open(project.Root)
			if err != nil {
				l.Warn("transcript unavailable", slog.Any("err", err))
			} else {
				defer store.Close()
				sink = transcript.NewRecordingSink(messenger, store)
			}
		}

		engine := script.NewEngine(project.Init, sink)
		if err := engine.Run(project.Entry); err != nil {
			l.Error("run aborted", slog.Any("err", err))
			messenger.ReportError(errTitle(err), err.Error())
		}
	}()

	ui.Run()
}

func runExport(root string, format script.Format, pdfPath, textPath string) int {
	l := applog.WithComponent("export")
	project, err := script.CompileProject(root, format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	title := filepath.Base(project.Root)
	if textPath != "" {
		if err := export.ExportText(project, textPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		l.Info("text export written", slog.String("path", textPath))
	}
	if pdfPath != "" {
		if err := export.ExportPDF(project, title, pdfPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		l.Info("pdf export written", slog.String("path", pdfPath))
	}
	return 0
}

// errTitle picks the banner heading for an error shown in the terminal.
func errTitle(err error) string {
	var ce *script.CompileError
	if errors.As(err, &ce) {
		return ce.Title()
	}
	return "RuntimeError"
}
