/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package script implements the narrative script engine: the node tree
// deserialized from YAML or JSON documents, the two-phase compiler that
// resolves cross-document references into a shared store, and the
// tree-walking execution engine that replays the compiled tree against a
// presentation sink.
package script

// Kind discriminates the node union. Exactly one payload field of Node is
// meaningful per kind.
type Kind int

const (
	KindInvalid Kind = iota
	KindSequence
	KindDialog
	KindText
	KindTitle
	KindWait
	KindShow
	KindRefer
	KindResolvedRefer
	KindPending
	KindCharacterDef
	KindInput
	KindSwitch
	KindBranch
	KindPrint
	KindLet
	KindClear
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindDialog:
		return "dialog"
	case KindText:
		return "text"
	case KindTitle:
		return "title"
	case KindWait:
		return "wait"
	case KindShow:
		return "show"
	case KindRefer:
		return "refer"
	case KindResolvedRefer:
		return "resolvedRefer"
	case KindPending:
		return "pendingCompilation"
	case KindCharacterDef:
		return "characterDef"
	case KindInput:
		return "input"
	case KindSwitch:
		return "switch"
	case KindBranch:
		return "branch"
	case KindPrint:
		return "print"
	case KindLet:
		return "let"
	case KindClear:
		return "clear"
	default:
		return "invalid"
	}
}

// Node is a single instruction of the script tree. The tree owns its
// children exclusively; cross-document edges exist only as ResolvedRefer
// lookups into the compiled store.
type Node struct {
	Kind Kind

	Children  []Node                 // Sequence
	Block     *TextBlock             // Dialog, Text
	Title     *TitleInput            // Title
	Seconds   int64                  // Wait
	Show      *ShowInput             // Show
	Ref       *PathReference         // Refer (cleared on resolution)
	Resolved  string                 // ResolvedRefer: canonical store key
	Character *Character             // CharacterDef
	Input     *Switcher[Capture]     // Input
	Switch    *Switcher[Conditional] // Switch
	Branch    *Branch                // Branch
	Source    string                 // Print (template) and Let (expression)
}

// DialogLine is one speaker/text pair of a dialog or text block.
type DialogLine struct {
	Speaker string
	Text    string
}

// TextBlock keeps its lines in document order. Duration, when present,
// overrides the per-character typewriter speed for every line in the block.
type TextBlock struct {
	Lines    []DialogLine
	Duration *int64
}

// TitleInput is a banner with a wait applied after rendering.
type TitleInput struct {
	Text string
	Wait int64
}

// DefaultTitleWait is applied when a title omits its wait.
const DefaultTitleWait = 1

// Alignment positions a displayed frame.
type Alignment int

const (
	AlignTopLeft Alignment = iota
	AlignCenter
)

func ParseAlignment(s string) Alignment {
	if s == "center" {
		return AlignCenter
	}
	return AlignTopLeft
}

// ShowInput displays a text-art frame. A document either inlines the frame
// content directly or names an image file; in the latter case compilation
// renders the image to text and clears File.
type ShowInput struct {
	Frame    string
	File     *PathReference
	Scale    int
	Invert   bool
	Align    Alignment
	Duration *int64
}

// DefaultShowScale is the image sampling scale when none is given.
const DefaultShowScale = 2

// Branch executes Then when every condition holds, Otherwise (if present)
// when any fails.
type Branch struct {
	Conditions []Conditional
	Then       *Node
	Otherwise  *Node
}
