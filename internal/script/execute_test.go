/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"errors"
	"testing"
)

// sinkEvent records one call into the fake sink.
type sinkEvent struct {
	op   string
	text string
}

type fakeSink struct {
	events []sinkEvent
	inputs []string
}

func (f *fakeSink) Clear()                   { f.events = append(f.events, sinkEvent{op: "clear"}) }
func (f *fakeSink) Append(t StyledText)      { f.events = append(f.events, sinkEvent{op: "append", text: t.Text}) }
func (f *fakeSink) SetFrame(content string)  { f.events = append(f.events, sinkEvent{op: "frame", text: content}) }
func (f *fakeSink) ClearFrame()              { f.events = append(f.events, sinkEvent{op: "clearFrame"}) }
func (f *fakeSink) AlignFrame(a Alignment)   { f.events = append(f.events, sinkEvent{op: "align"}) }
func (f *fakeSink) ReportError(t, m string)  { f.events = append(f.events, sinkEvent{op: "error", text: t}) }

func (f *fakeSink) Typewrite(t StyledText, seconds float64) {
	f.events = append(f.events, sinkEvent{op: "type", text: t.Text})
}

func (f *fakeSink) ShowTitle(text string, waitSeconds int64) {
	f.events = append(f.events, sinkEvent{op: "title", text: text})
}

func (f *fakeSink) GetLine() string {
	if len(f.inputs) == 0 {
		return ""
	}
	line := f.inputs[0]
	f.inputs = f.inputs[1:]
	return line
}

func (f *fakeSink) ops(op string) []sinkEvent {
	var out []sinkEvent
	for _, ev := range f.events {
		if ev.op == op {
			out = append(out, ev)
		}
	}
	return out
}

func newTestEngine(sink Sink) *Engine {
	return NewEngine(NewInitData(FormatYAML), sink)
}

func TestRunPrintAppendsExactlyOnce(t *testing.T) {
	sink := &fakeSink{}
	e := newTestEngine(sink)
	if err := e.State.VarExpr(`who = "Ada"`); err != nil {
		t.Fatalf("let: %v", err)
	}

	n := &Node{Kind: KindPrint, Source: "$who waves"}
	if err := e.Run(n); err != nil {
		t.Fatalf("run: %v", err)
	}
	appends := sink.ops("append")
	if len(appends) != 1 {
		t.Fatalf("want exactly one append, got %d", len(appends))
	}
	if appends[0].text != "Ada waves" {
		t.Fatalf("append text = %q", appends[0].text)
	}
}

func TestRunDialogLabelsAndPaces(t *testing.T) {
	sink := &fakeSink{}
	e := newTestEngine(sink)
	e.Init.Characters["Ada"] = Character{Name: "Ada", Duration: 40}

	n := &Node{Kind: KindDialog, Block: &TextBlock{
		Lines: []DialogLine{{Speaker: "Ada", Text: "Hello"}},
	}}
	if err := e.Run(n); err != nil {
		t.Fatalf("run: %v", err)
	}
	types := sink.ops("type")
	if len(types) != 2 {
		t.Fatalf("want label + line, got %d typewrites", len(types))
	}
	if types[0].text != "Ada:" || types[1].text != "Hello" {
		t.Fatalf("unexpected typewrites: %+v", types)
	}
}

func TestRunTextOmitsSpeakerLabel(t *testing.T) {
	sink := &fakeSink{}
	e := newTestEngine(sink)

	n := &Node{Kind: KindText, Block: &TextBlock{
		Lines: []DialogLine{{Speaker: "Narrator", Text: "It was dark."}},
	}}
	if err := e.Run(n); err != nil {
		t.Fatalf("run: %v", err)
	}
	types := sink.ops("type")
	if len(types) != 1 || types[0].text != "It was dark." {
		t.Fatalf("unexpected typewrites: %+v", types)
	}
}

func TestRunUnknownSpeakerUsesDefaultCharacter(t *testing.T) {
	sink := &fakeSink{}
	e := newTestEngine(sink)

	n := &Node{Kind: KindDialog, Block: &TextBlock{
		Lines: []DialogLine{{Speaker: "Stranger", Text: "..."}},
	}}
	if err := e.Run(n); err != nil {
		t.Fatalf("run: %v", err)
	}
	// The line still renders, styled by the fallback character.
	if len(sink.ops("type")) != 2 {
		t.Fatalf("events: %+v", sink.events)
	}
}

func TestRunSwitchFirstMatchWins(t *testing.T) {
	sink := &fakeSink{}
	e := newTestEngine(sink)
	if err := e.State.VarExpr("n = 10"); err != nil {
		t.Fatalf("let: %v", err)
	}

	n := &Node{Kind: KindSwitch, Switch: &Switcher[Conditional]{
		Cases: []Case[Conditional]{
			{Guards: []Conditional{{Expression: "n > 100"}}, Body: Node{Kind: KindPrint, Source: "big"}},
			{Guards: []Conditional{{Expression: "n > 5"}}, Body: Node{Kind: KindPrint, Source: "medium"}},
			{Guards: []Conditional{{Expression: "n > 1"}}, Body: Node{Kind: KindPrint, Source: "small"}},
		},
		Default: &Node{Kind: KindPrint, Source: "tiny"},
	}}
	if err := e.Run(n); err != nil {
		t.Fatalf("run: %v", err)
	}
	appends := sink.ops("append")
	if len(appends) != 1 || appends[0].text != "medium" {
		t.Fatalf("unexpected appends: %+v", appends)
	}
}

func TestRunSwitchDefaultWhenNothingMatches(t *testing.T) {
	sink := &fakeSink{}
	e := newTestEngine(sink)

	n := &Node{Kind: KindSwitch, Switch: &Switcher[Conditional]{
		Cases: []Case[Conditional]{
			{Guards: []Conditional{{Expression: "false"}}, Body: Node{Kind: KindPrint, Source: "never"}},
		},
		Default: &Node{Kind: KindPrint, Source: "fallback"},
	}}
	if err := e.Run(n); err != nil {
		t.Fatalf("run: %v", err)
	}
	appends := sink.ops("append")
	if len(appends) != 1 || appends[0].text != "fallback" {
		t.Fatalf("unexpected appends: %+v", appends)
	}
}

func TestRunInputDispatchesOnCapture(t *testing.T) {
	sink := &fakeSink{inputs: []string{"yes please"}}
	e := newTestEngine(sink)

	n := &Node{Kind: KindInput, Input: &Switcher[Capture]{
		Cases: []Case[Capture]{
			{Guards: []Capture{{Literals: []string{"no"}}}, Body: Node{Kind: KindPrint, Source: "declined"}},
			{Guards: []Capture{{Literals: []string{"yes", "yeah"}}}, Body: Node{Kind: KindPrint, Source: "accepted"}},
		},
	}}
	if err := e.Run(n); err != nil {
		t.Fatalf("run: %v", err)
	}
	appends := sink.ops("append")
	if len(appends) != 1 || appends[0].text != "accepted" {
		t.Fatalf("unexpected appends: %+v", appends)
	}
	if e.State.LastInput != "yes please" {
		t.Fatalf("LastInput = %q", e.State.LastInput)
	}
}

func TestRunInputNoMatchNoDefaultIsSilent(t *testing.T) {
	sink := &fakeSink{inputs: []string{"maybe"}}
	e := newTestEngine(sink)

	n := &Node{Kind: KindInput, Input: &Switcher[Capture]{
		Cases: []Case[Capture]{
			{Guards: []Capture{{Literals: []string{"yes"}}}, Body: Node{Kind: KindPrint, Source: "hit"}},
		},
	}}
	if err := e.Run(n); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sink.ops("append")) != 0 {
		t.Fatalf("nothing should run: %+v", sink.events)
	}
}

func TestRunBranch(t *testing.T) {
	sink := &fakeSink{}
	e := newTestEngine(sink)
	if err := e.State.VarExpr("seen = true; armed = false"); err != nil {
		t.Fatalf("let: %v", err)
	}

	n := &Node{Kind: KindBranch, Branch: &Branch{
		Conditions: []Conditional{{Expression: "seen"}, {Expression: "armed"}},
		Then:       &Node{Kind: KindPrint, Source: "then"},
		Otherwise:  &Node{Kind: KindPrint, Source: "else"},
	}}
	if err := e.Run(n); err != nil {
		t.Fatalf("run: %v", err)
	}
	appends := sink.ops("append")
	if len(appends) != 1 || appends[0].text != "else" {
		t.Fatalf("unexpected appends: %+v", appends)
	}
}

func TestRunResolvedReferFollowsStore(t *testing.T) {
	sink := &fakeSink{}
	e := newTestEngine(sink)
	e.Init.Store["/x/part.yaml"] = &Node{Kind: KindPrint, Source: "from store"}

	n := &Node{Kind: KindResolvedRefer, Resolved: "/x/part.yaml"}
	if err := e.Run(n); err != nil {
		t.Fatalf("run: %v", err)
	}
	appends := sink.ops("append")
	if len(appends) != 1 || appends[0].text != "from store" {
		t.Fatalf("unexpected appends: %+v", appends)
	}
}

func TestRunResolvedReferMissingFromStore(t *testing.T) {
	sink := &fakeSink{}
	e := newTestEngine(sink)

	err := e.Run(&Node{Kind: KindResolvedRefer, Resolved: "/gone.yaml"})
	var ce *CompileError
	if !errors.As(err, &ce) || ce.Kind != ErrUnresolvedReference {
		t.Fatalf("want UnresolvedReference, got %v", err)
	}
}

func TestRunPendingIsNoOp(t *testing.T) {
	sink := &fakeSink{}
	e := newTestEngine(sink)
	if err := e.Run(&Node{Kind: KindPending}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sink.events) != 0 {
		t.Fatalf("pending produced output: %+v", sink.events)
	}
}

func TestRunLetFailureAbortsSequence(t *testing.T) {
	sink := &fakeSink{}
	e := newTestEngine(sink)

	n := &Node{Kind: KindSequence, Children: []Node{
		{Kind: KindPrint, Source: "before"},
		{Kind: KindLet, Source: "broken = ("},
		{Kind: KindPrint, Source: "after"},
	}}
	if err := e.Run(n); err == nil {
		t.Fatal("want error from failed let")
	}
	appends := sink.ops("append")
	if len(appends) != 1 || appends[0].text != "before" {
		t.Fatalf("run should stop at the failed let: %+v", appends)
	}
}

func TestRunShowAndClear(t *testing.T) {
	sink := &fakeSink{}
	e := newTestEngine(sink)

	n := &Node{Kind: KindSequence, Children: []Node{
		{Kind: KindShow, Show: &ShowInput{Frame: "##", Align: AlignCenter}},
		{Kind: KindClear},
	}}
	if err := e.Run(n); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(sink.ops("frame")) != 1 || sink.ops("frame")[0].text != "##" {
		t.Fatalf("frame not shown: %+v", sink.events)
	}
	if len(sink.ops("align")) != 1 {
		t.Fatal("frame alignment not forwarded")
	}
	if len(sink.ops("clear")) != 1 {
		t.Fatal("clear not forwarded")
	}
}

func TestRunTitle(t *testing.T) {
	sink := &fakeSink{}
	e := newTestEngine(sink)

	n := &Node{Kind: KindTitle, Title: &TitleInput{Text: "Act One", Wait: 0}}
	if err := e.Run(n); err != nil {
		t.Fatalf("run: %v", err)
	}
	titles := sink.ops("title")
	if len(titles) != 1 || titles[0].text != "Act One" {
		t.Fatalf("unexpected titles: %+v", titles)
	}
}

func TestPaceSeconds(t *testing.T) {
	if got := paceSeconds("abcd", 20); got != 0.2 {
		t.Fatalf("paceSeconds = %v", got)
	}
	if got := paceSeconds("abcd", 0); got != 0 {
		t.Fatalf("zero speed must not pace, got %v", got)
	}
}
