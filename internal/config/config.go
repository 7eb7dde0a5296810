/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package config holds the user-editable configuration persisted to a YAML
// file in the user scope. Environment variables act as read-only overrides
// at runtime.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type PlayerConfig struct {
	Notation string `yaml:"notation"` // "yaml" | "json"
	Width    int    `yaml:"width"`    // terminal columns for frame alignment
	NoColor  bool   `yaml:"no_color"`
}

type TranscriptConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int              `yaml:"config_version"`
	Player        PlayerConfig     `yaml:"player"`
	Transcript    TranscriptConfig `yaml:"transcript"`
	Logging       LoggingConfig    `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Player:        PlayerConfig{Notation: "yaml", Width: 80},
		Transcript:    TranscriptConfig{Enabled: true},
		Logging:       LoggingConfig{Level: "info", Format: "console", File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvNotation   = "GNV_NOTATION"
	EnvWidth      = "GNV_WIDTH"
	EnvNoColor    = "GNV_NO_COLOR"
	EnvTranscript = "GNV_TRANSCRIPT"
	EnvLogLevel   = "GNV_LOG_LEVEL"
	EnvLogFormat  = "GNV_LOG_FORMAT"
	EnvLogFile    = "GNV_LOG_FILE"
)

// Path returns the per-user config file path.
func Path() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "gonovel")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "gonovel")
	default:
		base = filepath.Join(os.Getenv("HOME"), ".config", "gonovel")
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges
// environment overrides.
func Load() (AppConfig, error) {
	cfg := Defaults()
	path, err := Path()
	if err != nil {
		return cfg, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if strings.TrimSpace(src.Player.Notation) != "" {
		dst.Player.Notation = strings.ToLower(strings.TrimSpace(src.Player.Notation))
	}
	if src.Player.Width > 0 {
		dst.Player.Width = src.Player.Width
	}
	dst.Player.NoColor = src.Player.NoColor
	dst.Transcript.Enabled = src.Transcript.Enabled
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvNotation)); v != "" {
		cfg.Player.Notation = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvWidth)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Player.Width = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvNoColor)); v != "" {
		cfg.Player.NoColor = isTruthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvTranscript)); v != "" {
		cfg.Transcript.Enabled = isTruthy(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func isTruthy(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}
