/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package log

import (
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConsoleHandlerOutput(t *testing.T) {
	var b strings.Builder
	h := &consoleHandler{level: slog.LevelInfo, w: &b}
	logger := slog.New(h).With(slog.String("component", "test"))

	logger.Info("something happened", slog.Int("count", 3))

	got := b.String()
	if !strings.Contains(got, "INF something happened") {
		t.Fatalf("output: %q", got)
	}
	if !strings.Contains(got, "component=test") || !strings.Contains(got, "count=3") {
		t.Fatalf("attrs missing: %q", got)
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	h := &consoleHandler{level: slog.LevelWarn}
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("info should be filtered at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("error should pass at warn level")
	}
}

func TestWithComponent(t *testing.T) {
	Init(Options{Level: "error"})
	if WithComponent("x") == nil {
		t.Fatal("nil logger")
	}
}
