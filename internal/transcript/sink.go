/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package transcript

import (
	"log/slog"

	applog "gonovel/internal/log"
	"gonovel/internal/script"
)

// Event kinds written by the recording sink.
const (
	EventLine  = "line"
	EventPrint = "print"
	EventTitle = "title"
	EventInput = "input"
)

// RecordingSink decorates a presentation sink, mirroring everything shown
// and every captured input into the store. Recording failures are logged
// and never interrupt playback.
type RecordingSink struct {
	script.Sink
	store *Store
}

func NewRecordingSink(next script.Sink, store *Store) *RecordingSink {
	return &RecordingSink{Sink: next, store: store}
}

func (r *RecordingSink) record(kind, speaker, text string) {
	if err := r.store.Record(kind, speaker, text); err != nil {
		applog.WithComponent("transcript").Warn("record failed",
			slog.String("kind", kind), slog.Any("err", err))
	}
}

func (r *RecordingSink) Append(t script.StyledText) {
	r.record(EventPrint, "", t.Text)
	r.Sink.Append(t)
}

func (r *RecordingSink) Typewrite(t script.StyledText, seconds float64) {
	r.record(EventLine, "", t.Text)
	r.Sink.Typewrite(t, seconds)
}

func (r *RecordingSink) ShowTitle(text string, waitSeconds int64) {
	r.record(EventTitle, "", text)
	r.Sink.ShowTitle(text, waitSeconds)
}

func (r *RecordingSink) GetLine() string {
	line := r.Sink.GetLine()
	r.record(EventInput, "", line)
	return line
}
