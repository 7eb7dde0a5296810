/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package term

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gonovel/internal/script"
)

// ansiColors maps the color names accepted in character definitions to ANSI
// palette indices. Hex values pass through untouched; unknown names render
// unstyled.
var ansiColors = map[string]string{
	"black":        "0",
	"red":          "1",
	"green":        "2",
	"yellow":       "3",
	"blue":         "4",
	"magenta":      "5",
	"cyan":         "6",
	"white":        "7",
	"grey":         "8",
	"gray":         "8",
	"lightred":     "9",
	"lightgreen":   "10",
	"lightyellow":  "11",
	"lightblue":    "12",
	"lightmagenta": "13",
	"lightcyan":    "14",
	"lightwhite":   "15",
}

func colorFor(name string) (lipgloss.Color, bool) {
	if strings.HasPrefix(name, "#") {
		return lipgloss.Color(name), true
	}
	if code, ok := ansiColors[strings.ToLower(name)]; ok {
		return lipgloss.Color(code), true
	}
	return "", false
}

// styleFor translates a character style descriptor into a lipgloss style.
func styleFor(s script.Style) lipgloss.Style {
	st := lipgloss.NewStyle()
	if c, ok := colorFor(s.Color); ok {
		st = st.Foreground(c)
	}
	for _, e := range s.Effects {
		switch e {
		case script.EffectReverse:
			st = st.Reverse(true)
		case script.EffectDim:
			st = st.Faint(true)
		case script.EffectBold:
			st = st.Bold(true)
		case script.EffectItalic:
			st = st.Italic(true)
		case script.EffectStrikethrough:
			st = st.Strikethrough(true)
		case script.EffectUnderline:
			st = st.Underline(true)
		case script.EffectBlink:
			st = st.Blink(true)
		case script.EffectSimple:
			// no attribute
		}
	}
	return st
}
