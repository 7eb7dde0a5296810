/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import "testing"

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Player.Notation != "yaml" {
		t.Fatalf("notation = %q", cfg.Player.Notation)
	}
	if cfg.Player.Width != 80 {
		t.Fatalf("width = %d", cfg.Player.Width)
	}
	if !cfg.Transcript.Enabled {
		t.Fatal("transcript should default on")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" {
		t.Fatalf("logging defaults: %+v", cfg.Logging)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvNotation, "JSON")
	t.Setenv(EnvWidth, "120")
	t.Setenv(EnvNoColor, "yes")
	t.Setenv(EnvTranscript, "off")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg := Defaults()
	applyEnvOverrides(&cfg)

	if cfg.Player.Notation != "json" {
		t.Fatalf("notation = %q", cfg.Player.Notation)
	}
	if cfg.Player.Width != 120 {
		t.Fatalf("width = %d", cfg.Player.Width)
	}
	if !cfg.Player.NoColor {
		t.Fatal("no-color override ignored")
	}
	if cfg.Transcript.Enabled {
		t.Fatal("transcript override ignored")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}
}

func TestApplyEnvOverridesIgnoresBadWidth(t *testing.T) {
	t.Setenv(EnvWidth, "not-a-number")
	cfg := Defaults()
	applyEnvOverrides(&cfg)
	if cfg.Player.Width != 80 {
		t.Fatalf("width = %d", cfg.Player.Width)
	}
}

func TestMergeInto(t *testing.T) {
	dst := Defaults()
	src := AppConfig{
		Player:  PlayerConfig{Notation: " JSON ", Width: 100},
		Logging: LoggingConfig{Level: "WARN"},
	}
	src.Transcript.Enabled = true
	mergeInto(&dst, &src)

	if dst.Player.Notation != "json" {
		t.Fatalf("notation = %q", dst.Player.Notation)
	}
	if dst.Player.Width != 100 {
		t.Fatalf("width = %d", dst.Player.Width)
	}
	if dst.Logging.Level != "warn" {
		t.Fatalf("level = %q", dst.Logging.Level)
	}
	// Empty source fields keep the defaults.
	if dst.Logging.Format != "console" {
		t.Fatalf("format = %q", dst.Logging.Format)
	}
}

func TestIsTruthy(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "on", "yes"} {
		if !isTruthy(v) {
			t.Fatalf("%q should be truthy", v)
		}
	}
	for _, v := range []string{"0", "false", "off", "no", ""} {
		if isTruthy(v) {
			t.Fatalf("%q should be falsy", v)
		}
	}
}
