/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"time"
	"unicode/utf8"
)

// StyledText is a piece of text plus the style the sink should render it in.
type StyledText struct {
	Text  string
	Style Style
}

// Sink is the presentation boundary. The engine treats every call as
// infallible; pacing (typewriter reveal, title holds) happens on the
// engine's goroutine, never the sink's. GetLine blocks until the user
// supplies a line — Input nodes are the only suspension point on external
// input.
type Sink interface {
	Clear()
	Append(t StyledText)
	Typewrite(t StyledText, seconds float64)
	SetFrame(content string)
	ClearFrame()
	AlignFrame(a Alignment)
	ShowTitle(text string, waitSeconds int64)
	GetLine() string
	ReportError(title, message string)
}

// labelSeconds paces the speaker label before a dialog line.
const labelSeconds = 0.2

// Engine replays a compiled tree against a sink. Init is read-only from
// here on; State is owned by the engine's goroutine.
type Engine struct {
	Init  *InitData
	State *RuntimeState
	Out   Sink
}

func NewEngine(init *InitData, sink Sink) *Engine {
	return &Engine{Init: init, State: NewRuntimeState(), Out: sink}
}

// Run executes the tree rooted at entry. The only errors are fatal ones: a
// failed Let mutation or a broken post-compile invariant; everything else
// fails soft inside the nodes.
func (e *Engine) Run(entry *Node) error {
	return e.exec(entry)
}

func (e *Engine) exec(n *Node) error {
	switch n.Kind {
	case KindSequence:
		for i := range n.Children {
			if err := e.exec(&n.Children[i]); err != nil {
				return err
			}
		}
	case KindDialog:
		e.speak(n.Block, true)
	case KindText:
		e.speak(n.Block, false)
	case KindTitle:
		e.Out.ShowTitle(n.Title.Text, n.Title.Wait)
	case KindWait:
		e.sleep(n.Seconds)
	case KindShow:
		e.Out.AlignFrame(n.Show.Align)
		e.Out.SetFrame(n.Show.Frame)
		if n.Show.Duration != nil {
			e.sleep(*n.Show.Duration)
			e.Out.ClearFrame()
		}
	case KindResolvedRefer:
		sub, ok := e.Init.Store[n.Resolved]
		if !ok {
			return &CompileError{Kind: ErrUnresolvedReference, Path: n.Resolved}
		}
		return e.exec(sub)
	case KindInput:
		e.State.UpdateInput(e.Out.GetLine())
		return execSwitcher(e, n.Input)
	case KindSwitch:
		return execSwitcher(e, n.Switch)
	case KindBranch:
		return e.execBranch(n.Branch)
	case KindPrint:
		e.Out.Append(StyledText{Text: e.State.ExpandString(n.Source)})
	case KindLet:
		return e.State.VarExpr(n.Source)
	case KindClear:
		e.Out.Clear()
	case KindRefer, KindCharacterDef, KindPending, KindInvalid:
		// Consumed at compile time.
	}
	return nil
}

func (e *Engine) execBranch(b *Branch) error {
	for _, c := range b.Conditions {
		if !c.Holds(e.State) {
			if b.Otherwise != nil {
				return e.exec(b.Otherwise)
			}
			return nil
		}
	}
	return e.exec(b.Then)
}

// execSwitcher runs at most one case body: the first whose guards all hold.
func execSwitcher[C Cond](e *Engine, s *Switcher[C]) error {
	for i := range s.Cases {
		if guardsHold(e.State, s.Cases[i].Guards) {
			return e.exec(&s.Cases[i].Body)
		}
	}
	if s.Default != nil {
		return e.exec(s.Default)
	}
	return nil
}

func guardsHold[C Cond](st *RuntimeState, guards []C) bool {
	for _, g := range guards {
		if !g.Holds(st) {
			return false
		}
	}
	return true
}

func (e *Engine) speak(b *TextBlock, withLabel bool) {
	for _, line := range b.Lines {
		c := e.character(line.Speaker)
		if withLabel {
			label := StyledText{
				Text:  line.Speaker + ":",
				Style: c.Style.WithEffect(EffectUnderline),
			}
			e.Out.Typewrite(label, labelSeconds)
		}
		speed := c.Duration
		if b.Duration != nil {
			speed = *b.Duration
		}
		e.Out.Typewrite(
			StyledText{Text: line.Text, Style: c.Style},
			paceSeconds(line.Text, speed),
		)
	}
}

// paceSeconds converts a typewriter speed (runes per second) into the
// duration the sink should spread the reveal over.
func paceSeconds(text string, speed int64) float64 {
	if speed <= 0 {
		return 0
	}
	return float64(utf8.RuneCountInString(text)) / float64(speed)
}

func (e *Engine) character(name string) Character {
	if c, ok := e.Init.Characters[name]; ok {
		return c
	}
	return e.Init.Default
}

func (e *Engine) sleep(seconds int64) {
	if seconds > 0 {
		time.Sleep(time.Duration(seconds) * time.Second)
	}
}
