/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "testing"

func TestExpandString(t *testing.T) {
	st := NewRuntimeState()
	if err := st.VarExpr(`name = "Ada"`); err != nil {
		t.Fatalf("let: %v", err)
	}

	cases := []struct {
		template string
		want     string
	}{
		{"$name is here", "Ada is here"},
		{"${1+1} apples", "2 apples"},
		{"no tokens at all", "no tokens at all"},
		{"hi $name, bye $name", "hi Ada, bye Ada"},
		{"${name .. \"!\"}", "Ada!"},
	}
	for _, c := range cases {
		if got := st.ExpandString(c.template); got != c.want {
			t.Fatalf("ExpandString(%q) = %q, want %q", c.template, got, c.want)
		}
	}
}

func TestExpandStringFailedTokenPassesThrough(t *testing.T) {
	st := NewRuntimeState()
	// Unset variables evaluate to nil; the raw body replaces the token.
	if got := st.ExpandString("$ghost walks"); got != "ghost walks" {
		t.Fatalf("got %q", got)
	}
	if got := st.ExpandString("${broken (}"); got != "broken (" {
		t.Fatalf("got %q", got)
	}
}

func TestExpandStringSingleSweep(t *testing.T) {
	st := NewRuntimeState()
	if err := st.VarExpr(`a = "$b"; b = "never"`); err != nil {
		t.Fatalf("let: %v", err)
	}
	// Substituted text is not re-scanned for further tokens.
	if got := st.ExpandString("$a"); got != "$b" {
		t.Fatalf("got %q, want literal $b", got)
	}
}

func TestValueString(t *testing.T) {
	if got := ValueString(2.0); got != "2" {
		t.Fatalf("ValueString(2.0) = %q", got)
	}
	if got := ValueString(2.5); got != "2.5" {
		t.Fatalf("ValueString(2.5) = %q", got)
	}
	if got := ValueString(true); got != "true" {
		t.Fatalf("ValueString(true) = %q", got)
	}
	if got := ValueString("x"); got != "x" {
		t.Fatalf("ValueString(x) = %q", got)
	}
}

func TestVarCondition(t *testing.T) {
	st := NewRuntimeState()
	if err := st.VarExpr("count = 3"); err != nil {
		t.Fatalf("let: %v", err)
	}
	if !st.VarCondition("count > 1") {
		t.Fatal("count > 1 should hold")
	}
	if st.VarCondition("count > 5") {
		t.Fatal("count > 5 should not hold")
	}
	// Non-boolean results never satisfy a condition.
	if st.VarCondition("1 + 1") {
		t.Fatal("numeric result treated as true")
	}
	if st.VarCondition("not valid lua (") {
		t.Fatal("parse failure treated as true")
	}
	if st.VarCondition("missing_var") {
		t.Fatal("nil result treated as true")
	}
}

func TestVarExprFailureIsFatal(t *testing.T) {
	st := NewRuntimeState()
	if err := st.VarExpr("x = ("); err == nil {
		t.Fatal("want error for malformed assignment")
	}
}

func TestUpdateInputBindsReservedVariable(t *testing.T) {
	st := NewRuntimeState()
	st.UpdateInput("go north")
	if st.LastInput != "go north" {
		t.Fatalf("LastInput = %q", st.LastInput)
	}
	if !st.VarCondition(`last_in == "go north"`) {
		t.Fatal("last_in not rebound")
	}
	st.UpdateInput("look")
	if !st.VarCondition(`last_in == "look"`) {
		t.Fatal("last_in not updated on second input")
	}
}

func TestCaptureMatches(t *testing.T) {
	c := Capture{Literals: []string{"yes", "yeah"}}
	if !c.Matches("well yeah ok") {
		t.Fatal("substring should match")
	}
	if c.Matches("no way") {
		t.Fatal("no literal present, should not match")
	}
	if c.Matches("YES") {
		t.Fatal("matching must be case-sensitive")
	}
	if (Capture{}).Matches("anything") {
		t.Fatal("empty literal list must never match")
	}
}

func TestConditionalHolds(t *testing.T) {
	st := NewRuntimeState()
	st.UpdateInput("take the lamp")

	all := Conditional{LastIn: []Capture{
		{Literals: []string{"take"}},
		{Literals: []string{"lamp"}},
	}}
	if !all.Holds(st) {
		t.Fatal("all captures present, should hold")
	}

	miss := Conditional{LastIn: []Capture{
		{Literals: []string{"take"}},
		{Literals: []string{"sword"}},
	}}
	if miss.Holds(st) {
		t.Fatal("one capture absent, should not hold")
	}

	// No expression and no captures is vacuously true.
	if !(Conditional{}).Holds(st) {
		t.Fatal("empty conditional should hold")
	}
}
