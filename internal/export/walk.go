/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a compiled project as a draft screenplay, in plain
// text or PDF. The export walks every reachable arm of the tree (all branch
// and switch bodies), so it shows the whole authored script rather than one
// play-through.
package export

import "gonovel/internal/script"

// EventKind classifies screenplay lines produced by the walk.
type EventKind int

const (
	EventTitle EventKind = iota
	EventDialog
	EventNarration
	EventPrint
	EventChoice // a case or default arm begins
)

// Event is one screenplay line.
type Event struct {
	Kind    EventKind
	Speaker string
	Text    string
}

// Walk traverses the compiled tree depth-first and emits screenplay events.
// Resolved references are followed through the store at most once each, so
// cyclic scripts terminate.
func Walk(p *script.Project, emit func(Event)) {
	w := &walker{store: p.Init.Store, visited: make(map[string]bool), emit: emit}
	w.node(p.Entry)
}

type walker struct {
	store   map[string]*script.Node
	visited map[string]bool
	emit    func(Event)
}

func (w *walker) node(n *script.Node) {
	switch n.Kind {
	case script.KindSequence:
		for i := range n.Children {
			w.node(&n.Children[i])
		}
	case script.KindDialog:
		for _, line := range n.Block.Lines {
			w.emit(Event{Kind: EventDialog, Speaker: line.Speaker, Text: line.Text})
		}
	case script.KindText:
		for _, line := range n.Block.Lines {
			w.emit(Event{Kind: EventNarration, Text: line.Text})
		}
	case script.KindTitle:
		w.emit(Event{Kind: EventTitle, Text: n.Title.Text})
	case script.KindPrint:
		w.emit(Event{Kind: EventPrint, Text: n.Source})
	case script.KindResolvedRefer:
		if w.visited[n.Resolved] {
			return
		}
		w.visited[n.Resolved] = true
		if sub, ok := w.store[n.Resolved]; ok {
			w.node(sub)
		}
	case script.KindInput:
		walkSwitcher(w, n.Input)
	case script.KindSwitch:
		walkSwitcher(w, n.Switch)
	case script.KindBranch:
		w.emit(Event{Kind: EventChoice, Text: "if"})
		w.node(n.Branch.Then)
		if n.Branch.Otherwise != nil {
			w.emit(Event{Kind: EventChoice, Text: "else"})
			w.node(n.Branch.Otherwise)
		}
	case script.KindShow, script.KindWait, script.KindLet, script.KindClear,
		script.KindRefer, script.KindCharacterDef, script.KindPending, script.KindInvalid:
		// nothing visible to export
	}
}

func walkSwitcher[C script.Cond](w *walker, s *script.Switcher[C]) {
	for i := range s.Cases {
		w.emit(Event{Kind: EventChoice, Text: "case"})
		w.node(&s.Cases[i].Body)
	}
	if s.Default != nil {
		w.emit(Event{Kind: EventChoice, Text: "default"})
		w.node(s.Default)
	}
}
