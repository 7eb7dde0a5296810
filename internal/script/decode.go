/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "fmt"

// Shared construction helpers for the two notation decoders, applying the
// schema defaults in one place.

func characterFrom(name, color string, effects []string, duration *int64) Character {
	c := Character{Name: name, Duration: DefaultDuration}
	c.Style.Color = defaultColor
	if color != "" {
		c.Style.Color = color
	}
	for _, e := range effects {
		c.Style.Effects = append(c.Style.Effects, ParseEffect(e))
	}
	if duration != nil {
		c.Duration = *duration
	}
	return c
}

func titleFrom(text string, wait *int64) TitleInput {
	t := TitleInput{Text: text, Wait: DefaultTitleWait}
	if wait != nil {
		t.Wait = *wait
	}
	return t
}

func showFrom(file, frameContent string, scale *int, invert bool, align string, duration *int64) (ShowInput, error) {
	s := ShowInput{
		Frame:    frameContent,
		Invert:   invert,
		Scale:    DefaultShowScale,
		Align:    ParseAlignment(align),
		Duration: duration,
	}
	if scale != nil {
		s.Scale = *scale
	}
	if file != "" {
		if frameContent != "" {
			return s, fmt.Errorf("show takes either a file or an inline frame, not both")
		}
		s.File = &PathReference{Raw: file}
	}
	if s.File == nil && s.Frame == "" {
		return s, fmt.Errorf("show needs a file or an inline frame")
	}
	if s.Scale <= 0 {
		return s, fmt.Errorf("show scale must be positive")
	}
	return s, nil
}
