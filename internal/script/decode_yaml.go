/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// The node union is externally tagged: every node is a single-key mapping
// whose key names the variant. Unit variants (clear) may also appear as a
// bare scalar.

func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		if value.Value == "clear" {
			n.Kind = KindClear
			return nil
		}
		return fmt.Errorf("line %d: %q is not a script node", value.Line, value.Value)
	}
	if value.Kind != yaml.MappingNode || len(value.Content) != 2 {
		return fmt.Errorf("line %d: script node must be a single-key mapping", value.Line)
	}
	tag := value.Content[0].Value
	payload := value.Content[1]

	switch tag {
	case "sequence", "seq":
		n.Kind = KindSequence
		return payload.Decode(&n.Children)
	case "dialog":
		n.Kind = KindDialog
		n.Block = new(TextBlock)
		return payload.Decode(n.Block)
	case "text":
		n.Kind = KindText
		n.Block = new(TextBlock)
		return payload.Decode(n.Block)
	case "title":
		n.Kind = KindTitle
		n.Title = new(TitleInput)
		return payload.Decode(n.Title)
	case "wait":
		n.Kind = KindWait
		return payload.Decode(&n.Seconds)
	case "show":
		n.Kind = KindShow
		n.Show = new(ShowInput)
		return payload.Decode(n.Show)
	case "refer", "ref":
		n.Kind = KindRefer
		var raw string
		if err := payload.Decode(&raw); err != nil {
			return err
		}
		n.Ref = &PathReference{Raw: raw}
		return nil
	case "characterDef", "character":
		n.Kind = KindCharacterDef
		n.Character = new(Character)
		return payload.Decode(n.Character)
	case "input", "in":
		n.Kind = KindInput
		n.Input = new(Switcher[Capture])
		return payload.Decode(n.Input)
	case "switch":
		n.Kind = KindSwitch
		n.Switch = new(Switcher[Conditional])
		return payload.Decode(n.Switch)
	case "branch":
		n.Kind = KindBranch
		n.Branch = new(Branch)
		return payload.Decode(n.Branch)
	case "print":
		n.Kind = KindPrint
		return payload.Decode(&n.Source)
	case "let":
		n.Kind = KindLet
		return payload.Decode(&n.Source)
	case "clear":
		n.Kind = KindClear
		return nil
	default:
		return fmt.Errorf("line %d: unknown script node %q", value.Line, tag)
	}
}

func (b *TextBlock) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: dialog block must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		payload := value.Content[i+1]
		if key == "duration" {
			var d int64
			if err := payload.Decode(&d); err != nil {
				return err
			}
			b.Duration = &d
			continue
		}
		var text string
		if err := payload.Decode(&text); err != nil {
			return err
		}
		b.Lines = append(b.Lines, DialogLine{Speaker: key, Text: text})
	}
	return nil
}

func (t *TitleInput) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		t.Text = value.Value
		t.Wait = DefaultTitleWait
		return nil
	}
	var raw struct {
		Text string `yaml:"text"`
		Wait *int64 `yaml:"wait"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*t = titleFrom(raw.Text, raw.Wait)
	return nil
}

func (s *ShowInput) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*s = ShowInput{Frame: value.Value, Scale: DefaultShowScale}
		return nil
	}
	var raw struct {
		File     string `yaml:"file"`
		Frame    string `yaml:"frame"`
		Scale    *int   `yaml:"scale"`
		Invert   bool   `yaml:"invert"`
		Align    string `yaml:"align"`
		Duration *int64 `yaml:"duration"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	show, err := showFrom(raw.File, raw.Frame, raw.Scale, raw.Invert, raw.Align, raw.Duration)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = show
	return nil
}

func (c *Character) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Name     string   `yaml:"name"`
		Color    string   `yaml:"color"`
		Effects  []string `yaml:"effects"`
		Duration *int64   `yaml:"duration"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Name == "" {
		return fmt.Errorf("line %d: character needs a name", value.Line)
	}
	*c = characterFrom(raw.Name, raw.Color, raw.Effects, raw.Duration)
	return nil
}

func (s *Switcher[C]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: switch must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		payload := value.Content[i+1]
		switch key {
		case "cases":
			if err := payload.Decode(&s.Cases); err != nil {
				return err
			}
		case "default", "def":
			s.Default = new(Node)
			if err := payload.Decode(s.Default); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: unknown switch field %q", value.Line, key)
		}
	}
	return nil
}

func (c *Case[C]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: case must be a mapping", value.Line)
	}
	seen := false
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		payload := value.Content[i+1]
		switch key {
		case "section", "sec":
			seen = true
			if err := payload.Decode(&c.Body); err != nil {
				return err
			}
		case "captures", "cap":
			if err := payload.Decode(&c.Guards); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: unknown case field %q", value.Line, key)
		}
	}
	if !seen {
		return fmt.Errorf("line %d: case needs a section", value.Line)
	}
	return nil
}

func (b *Branch) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: branch must be a mapping", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		payload := value.Content[i+1]
		switch key {
		case "conditions", "if":
			if err := payload.Decode(&b.Conditions); err != nil {
				return err
			}
		case "then":
			b.Then = new(Node)
			if err := payload.Decode(b.Then); err != nil {
				return err
			}
		case "otherwise", "else":
			b.Otherwise = new(Node)
			if err := payload.Decode(b.Otherwise); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: unknown branch field %q", value.Line, key)
		}
	}
	if b.Then == nil {
		return fmt.Errorf("line %d: branch needs a then arm", value.Line)
	}
	return nil
}

func (c *Conditional) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode || len(value.Content) != 2 {
		return fmt.Errorf("line %d: condition must be a single-key mapping", value.Line)
	}
	key := value.Content[0].Value
	payload := value.Content[1]
	switch key {
	case "expression", "expr", "e":
		return payload.Decode(&c.Expression)
	case "lastIn":
		return payload.Decode(&c.LastIn)
	default:
		return fmt.Errorf("line %d: unknown condition %q", value.Line, key)
	}
}

func (c *Capture) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode || len(value.Content) != 2 {
		return fmt.Errorf("line %d: capture must be a single-key mapping", value.Line)
	}
	key := value.Content[0].Value
	payload := value.Content[1]
	if key != "literals" && key != "lit" {
		return fmt.Errorf("line %d: unknown capture %q", value.Line, key)
	}
	// One literal or a list of them.
	if payload.Kind == yaml.SequenceNode {
		return payload.Decode(&c.Literals)
	}
	var one string
	if err := payload.Decode(&one); err != nil {
		return err
	}
	c.Literals = []string{one}
	return nil
}
