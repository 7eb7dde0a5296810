/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSON rendition of the externally tagged union. Mirrors decode_yaml.go;
// dialog blocks need token scanning because map decoding would lose the
// document order of speakers.

func jsonIsString(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '"'
}

func jsonIsArray(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}

func singleKeyJSON(data []byte, what string) (string, json.RawMessage, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return "", nil, err
	}
	if len(m) != 1 {
		return "", nil, fmt.Errorf("%s must be a single-key object", what)
	}
	for k, v := range m {
		return k, v, nil
	}
	return "", nil, fmt.Errorf("%s must be a single-key object", what)
}

func (n *Node) UnmarshalJSON(data []byte) error {
	if jsonIsString(data) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "clear" {
			n.Kind = KindClear
			return nil
		}
		return fmt.Errorf("%q is not a script node", s)
	}
	tag, payload, err := singleKeyJSON(data, "script node")
	if err != nil {
		return err
	}

	switch tag {
	case "sequence", "seq":
		n.Kind = KindSequence
		return json.Unmarshal(payload, &n.Children)
	case "dialog":
		n.Kind = KindDialog
		n.Block = new(TextBlock)
		return json.Unmarshal(payload, n.Block)
	case "text":
		n.Kind = KindText
		n.Block = new(TextBlock)
		return json.Unmarshal(payload, n.Block)
	case "title":
		n.Kind = KindTitle
		n.Title = new(TitleInput)
		return json.Unmarshal(payload, n.Title)
	case "wait":
		n.Kind = KindWait
		return json.Unmarshal(payload, &n.Seconds)
	case "show":
		n.Kind = KindShow
		n.Show = new(ShowInput)
		return json.Unmarshal(payload, n.Show)
	case "refer", "ref":
		n.Kind = KindRefer
		var raw string
		if err := json.Unmarshal(payload, &raw); err != nil {
			return err
		}
		n.Ref = &PathReference{Raw: raw}
		return nil
	case "characterDef", "character":
		n.Kind = KindCharacterDef
		n.Character = new(Character)
		return json.Unmarshal(payload, n.Character)
	case "input", "in":
		n.Kind = KindInput
		n.Input = new(Switcher[Capture])
		return json.Unmarshal(payload, n.Input)
	case "switch":
		n.Kind = KindSwitch
		n.Switch = new(Switcher[Conditional])
		return json.Unmarshal(payload, n.Switch)
	case "branch":
		n.Kind = KindBranch
		n.Branch = new(Branch)
		return json.Unmarshal(payload, n.Branch)
	case "print":
		n.Kind = KindPrint
		return json.Unmarshal(payload, &n.Source)
	case "let":
		n.Kind = KindLet
		return json.Unmarshal(payload, &n.Source)
	case "clear":
		n.Kind = KindClear
		return nil
	default:
		return fmt.Errorf("unknown script node %q", tag)
	}
}

func (b *TextBlock) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("dialog block must be an object")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		if key == "duration" {
			var d int64
			if err := dec.Decode(&d); err != nil {
				return err
			}
			b.Duration = &d
			continue
		}
		var text string
		if err := dec.Decode(&text); err != nil {
			return err
		}
		b.Lines = append(b.Lines, DialogLine{Speaker: key, Text: text})
	}
	_, err = dec.Token() // closing brace
	return err
}

func (t *TitleInput) UnmarshalJSON(data []byte) error {
	if jsonIsString(data) {
		if err := json.Unmarshal(data, &t.Text); err != nil {
			return err
		}
		t.Wait = DefaultTitleWait
		return nil
	}
	var raw struct {
		Text string `json:"text"`
		Wait *int64 `json:"wait"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = titleFrom(raw.Text, raw.Wait)
	return nil
}

func (s *ShowInput) UnmarshalJSON(data []byte) error {
	if jsonIsString(data) {
		var frameContent string
		if err := json.Unmarshal(data, &frameContent); err != nil {
			return err
		}
		*s = ShowInput{Frame: frameContent, Scale: DefaultShowScale}
		return nil
	}
	var raw struct {
		File     string `json:"file"`
		Frame    string `json:"frame"`
		Scale    *int   `json:"scale"`
		Invert   bool   `json:"invert"`
		Align    string `json:"align"`
		Duration *int64 `json:"duration"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	show, err := showFrom(raw.File, raw.Frame, raw.Scale, raw.Invert, raw.Align, raw.Duration)
	if err != nil {
		return err
	}
	*s = show
	return nil
}

func (c *Character) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     string   `json:"name"`
		Color    string   `json:"color"`
		Effects  []string `json:"effects"`
		Duration *int64   `json:"duration"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Name == "" {
		return fmt.Errorf("character needs a name")
	}
	*c = characterFrom(raw.Name, raw.Color, raw.Effects, raw.Duration)
	return nil
}

func (s *Switcher[C]) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for key, payload := range m {
		switch key {
		case "cases":
			if err := json.Unmarshal(payload, &s.Cases); err != nil {
				return err
			}
		case "default", "def":
			s.Default = new(Node)
			if err := json.Unmarshal(payload, s.Default); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown switch field %q", key)
		}
	}
	return nil
}

func (c *Case[C]) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	seen := false
	for key, payload := range m {
		switch key {
		case "section", "sec":
			seen = true
			if err := json.Unmarshal(payload, &c.Body); err != nil {
				return err
			}
		case "captures", "cap":
			if err := json.Unmarshal(payload, &c.Guards); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown case field %q", key)
		}
	}
	if !seen {
		return fmt.Errorf("case needs a section")
	}
	return nil
}

func (b *Branch) UnmarshalJSON(data []byte) error {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for key, payload := range m {
		switch key {
		case "conditions", "if":
			if err := json.Unmarshal(payload, &b.Conditions); err != nil {
				return err
			}
		case "then":
			b.Then = new(Node)
			if err := json.Unmarshal(payload, b.Then); err != nil {
				return err
			}
		case "otherwise", "else":
			b.Otherwise = new(Node)
			if err := json.Unmarshal(payload, b.Otherwise); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown branch field %q", key)
		}
	}
	if b.Then == nil {
		return fmt.Errorf("branch needs a then arm")
	}
	return nil
}

func (c *Conditional) UnmarshalJSON(data []byte) error {
	key, payload, err := singleKeyJSON(data, "condition")
	if err != nil {
		return err
	}
	switch key {
	case "expression", "expr", "e":
		return json.Unmarshal(payload, &c.Expression)
	case "lastIn":
		return json.Unmarshal(payload, &c.LastIn)
	default:
		return fmt.Errorf("unknown condition %q", key)
	}
}

func (c *Capture) UnmarshalJSON(data []byte) error {
	key, payload, err := singleKeyJSON(data, "capture")
	if err != nil {
		return err
	}
	if key != "literals" && key != "lit" {
		return fmt.Errorf("unknown capture %q", key)
	}
	if jsonIsArray(payload) {
		return json.Unmarshal(payload, &c.Literals)
	}
	var one string
	if err := json.Unmarshal(payload, &one); err != nil {
		return err
	}
	c.Literals = []string{one}
	return nil
}
