/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package transcript records play-throughs into a per-project embedded
// SQLite database: one row per visible line, title, and captured input.
package transcript

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	applog "gonovel/internal/log"
	"gonovel/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// DirName stores all per-project ephemeral data under the project root.
	DirName  = ".gonovel"
	FileName = "transcript.sqlite"

	schemaVersion = 1
)

// StorePath returns the full path of the project's transcript database.
func StorePath(projectRoot string) string {
	return filepath.Join(projectRoot, DirName, FileName)
}

// Store appends events of one playback session.
type Store struct {
	db      *sql.DB
	session int64
}

// Open ensures the transcript database exists under <root>/.gonovel,
// enables WAL mode, creates the schema, and starts a new session row.
func Open(projectRoot string) (*Store, error) {
	l := applog.WithOperation(applog.WithComponent("transcript"), "open").With(
		slog.String("root", projectRoot),
	)
	if strings.TrimSpace(projectRoot) == "" {
		return nil, errors.New("project root is required")
	}
	if err := os.MkdirAll(filepath.Join(projectRoot, DirName), 0o755); err != nil {
		return nil, fmt.Errorf("create %s dir: %w", DirName, err)
	}

	path := StorePath(projectRoot)
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	res, err := db.ExecContext(ctx,
		`INSERT INTO sessions (started_at, app_version) VALUES (?, ?);`,
		time.Now().UTC().Format(time.RFC3339), version.Version)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("start session: %w", err)
	}
	session, err := res.LastInsertId()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session id: %w", err)
	}

	l.Info("transcript ready", slog.String("path", path), slog.Int64("session", session))
	return &Store{db: db, session: session}, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at  TEXT NOT NULL,
			app_version TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			session INTEGER NOT NULL REFERENCES sessions(id),
			ts      TEXT NOT NULL,
			kind    TEXT NOT NULL,
			speaker TEXT,
			text    TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_session ON events(session);`,
	}
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('schema', ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value;`,
		fmt.Sprint(schemaVersion))
	if err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	return nil
}

// Record appends one event to the current session.
func (s *Store) Record(kind, speaker, text string) error {
	_, err := s.db.Exec(
		`INSERT INTO events (session, ts, kind, speaker, text) VALUES (?, ?, ?, ?, ?);`,
		s.session, time.Now().UTC().Format(time.RFC3339), kind, speaker, text)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

// Session returns the id of the session this store appends to.
func (s *Store) Session() int64 { return s.session }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
