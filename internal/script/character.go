/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "strings"

// Effect is a text attribute applied to a character's lines. Unrecognized
// effect names degrade to EffectSimple rather than failing the document.
type Effect int

const (
	EffectSimple Effect = iota
	EffectReverse
	EffectDim
	EffectBold
	EffectItalic
	EffectStrikethrough
	EffectUnderline
	EffectBlink
)

func ParseEffect(s string) Effect {
	switch strings.ToLower(s) {
	case "reverse":
		return EffectReverse
	case "dim":
		return EffectDim
	case "bold":
		return EffectBold
	case "italic":
		return EffectItalic
	case "strikethrough":
		return EffectStrikethrough
	case "underline", "underlined":
		return EffectUnderline
	case "blink":
		return EffectBlink
	default:
		return EffectSimple
	}
}

// Style is the visual descriptor of a character: a color name or hex value
// plus a set of effects. Interpretation is the presentation sink's concern.
type Style struct {
	Color   string
	Effects []Effect
}

// WithEffect returns a copy of the style with one more effect appended.
func (s Style) WithEffect(e Effect) Style {
	effects := make([]Effect, 0, len(s.Effects)+1)
	effects = append(effects, s.Effects...)
	effects = append(effects, e)
	return Style{Color: s.Color, Effects: effects}
}

const (
	// DefaultCharacterName keys the fallback character used for any
	// addressed-but-unregistered speaker.
	DefaultCharacterName = "__default__"
	// DefaultDuration is the typewriter speed (runes per second) when a
	// character omits its own.
	DefaultDuration = 20

	defaultColor = "grey"
)

// Character is a named speaker with a style and a default typewriter speed.
type Character struct {
	Name     string
	Style    Style
	Duration int64
}

// DefaultCharacter returns the distinguished fallback character.
func DefaultCharacter() Character {
	return Character{
		Name:     DefaultCharacterName,
		Style:    Style{Color: defaultColor},
		Duration: DefaultDuration,
	}
}
