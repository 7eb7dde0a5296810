/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gonovel/internal/script"
)

// WriteText renders the project as a plain-text screenplay draft.
func WriteText(p *script.Project, w io.Writer) error {
	var werr error
	write := func(s string) {
		if werr == nil {
			_, werr = io.WriteString(w, s)
		}
	}
	Walk(p, func(ev Event) {
		switch ev.Kind {
		case EventTitle:
			write("\n== " + strings.ToUpper(ev.Text) + " ==\n\n")
		case EventDialog:
			write(strings.ToUpper(ev.Speaker) + "\n    " + ev.Text + "\n")
		case EventNarration:
			write(ev.Text + "\n")
		case EventPrint:
			write(ev.Text + "\n")
		case EventChoice:
			write("\n[" + ev.Text + "]\n")
		}
	})
	return werr
}

// ExportText writes the screenplay draft to outPath.
func ExportText(p *script.Project, outPath string) error {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create text export: %w", err)
	}
	if err := WriteText(p, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write text export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close text export: %w", err)
	}
	return nil
}
