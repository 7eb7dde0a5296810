/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"log/slog"
	"path/filepath"

	"gonovel/internal/frame"
	applog "gonovel/internal/log"
)

// EntryName is the file stem of a project's entry document.
const EntryName = "init"

// InitData is the compilation context and, after compilation, the read-only
// initialization data handed to the execution engine: the path-keyed store
// of compiled subtrees and the character roster.
type InitData struct {
	Format     Format
	Store      map[string]*Node
	Characters map[string]Character
	Default    Character
}

func NewInitData(f Format) *InitData {
	return &InitData{
		Format:     f,
		Store:      make(map[string]*Node),
		Characters: make(map[string]Character),
		Default:    DefaultCharacter(),
	}
}

// Project is a fully compiled script tree plus its shared store. Once built
// it is immutable for the remainder of the run.
type Project struct {
	Root  string
	Init  *InitData
	Entry *Node
}

// CompileProject loads <root>/init.<ext> and compiles it and everything it
// transitively references. Compilation is strictly sequential and must
// complete before execution begins; the first failure anywhere in the tree
// aborts the whole project.
func CompileProject(root string, f Format) (*Project, error) {
	l := applog.WithComponent("script")

	base, err := filepath.Abs(root)
	if err != nil {
		return nil, &CompileError{Kind: ErrInvalidPath, Path: root, Err: err}
	}
	entryPath := filepath.Join(base, EntryName+"."+f.Ext())
	doc, err := LoadDocument(entryPath, f)
	if err != nil {
		return nil, err
	}

	init := NewInitData(f)
	registerCharacters(init, doc)
	if doc.DefaultCharacter != nil {
		init.Default = *doc.DefaultCharacter
	}
	if err := compileNode(&doc.Entry, init, base); err != nil {
		return nil, err
	}
	l.Debug("project compiled",
		slog.String("entry", entryPath),
		slog.Int("refs", len(init.Store)),
		slog.Int("characters", len(init.Characters)))
	return &Project{Root: base, Init: init, Entry: &doc.Entry}, nil
}

func registerCharacters(init *InitData, doc *Document) {
	for _, c := range doc.Characters {
		init.Characters[c.Name] = c
	}
}

// compileNode walks the tree depth-first, mutating in place. Containers
// recurse and fail fast on the first child error; leaves need no work.
func compileNode(n *Node, init *InitData, base string) error {
	switch n.Kind {
	case KindCharacterDef:
		init.Characters[n.Character.Name] = *n.Character
		return nil
	case KindRefer:
		return compileRefer(n, init, base)
	case KindShow:
		return compileShow(n.Show, base)
	case KindSequence:
		for i := range n.Children {
			if err := compileNode(&n.Children[i], init, base); err != nil {
				return err
			}
		}
		return nil
	case KindInput:
		return compileSwitcher(n.Input, init, base)
	case KindSwitch:
		return compileSwitcher(n.Switch, init, base)
	case KindBranch:
		if err := compileNode(n.Branch.Then, init, base); err != nil {
			return err
		}
		if n.Branch.Otherwise != nil {
			return compileNode(n.Branch.Otherwise, init, base)
		}
		return nil
	case KindDialog, KindText, KindTitle, KindWait, KindPrint, KindLet, KindClear,
		KindResolvedRefer, KindPending, KindInvalid:
		return nil
	}
	return nil
}

func compileSwitcher[C Cond](s *Switcher[C], init *InitData, base string) error {
	for i := range s.Cases {
		if err := compileNode(&s.Cases[i].Body, init, base); err != nil {
			return err
		}
	}
	if s.Default != nil {
		return compileNode(s.Default, init, base)
	}
	return nil
}

// compileRefer resolves a reference node into the shared store and rewrites
// it in place to ResolvedRefer. The Pending sentinel goes in before the
// recursive compile so a self- or mutually-referential chain that revisits
// the path terminates instead of recursing forever; the revisit resolves to
// the same key and executes whatever the first visit finalizes.
func compileRefer(n *Node, init *InitData, base string) error {
	ref := n.Ref.WithExt(init.Format.Ext())
	canonical, err := ref.Resolve(base)
	if err != nil {
		return err
	}
	if existing, ok := init.Store[canonical]; ok {
		if existing.Kind == KindPending {
			// Authoring cycle; kept as a no-op for compatibility.
			applog.WithComponent("script").Debug("cyclic reference",
				slog.String("path", canonical))
		}
	} else {
		init.Store[canonical] = &Node{Kind: KindPending}
		doc, err := LoadDocument(canonical, init.Format)
		if err != nil {
			return err
		}
		registerCharacters(init, doc)
		if err := compileNode(&doc.Entry, init, filepath.Dir(canonical)); err != nil {
			return err
		}
		*init.Store[canonical] = doc.Entry
	}
	n.Kind = KindResolvedRefer
	n.Resolved = canonical
	n.Ref = nil
	return nil
}

// compileShow pre-renders a file-backed frame into its text-art content.
// Image decoding is an external collaborator operation; its failure is
// surfaced through the regular compile error channel.
func compileShow(s *ShowInput, base string) error {
	if s.File == nil {
		return nil
	}
	path, err := s.File.Resolve(base)
	if err != nil {
		return err
	}
	art, err := frame.Render(path, s.Scale, s.Invert)
	if err != nil {
		return &CompileError{Kind: ErrImageDecode, Path: path, Err: err}
	}
	s.Frame = art
	s.File = nil
	return nil
}
