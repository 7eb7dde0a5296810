/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "strings"

// Cond is a pure predicate over runtime state. Implementations must not
// mutate the state.
type Cond interface {
	Holds(st *RuntimeState) bool
}

// Capture matches when the input contains any of its literal substrings.
// Containment is case-sensitive; an empty literal list never matches.
type Capture struct {
	Literals []string
}

// Matches reports whether any literal is a substring of input.
func (c Capture) Matches(input string) bool {
	for _, lit := range c.Literals {
		if strings.Contains(input, lit) {
			return true
		}
	}
	return false
}

// Holds matches against the last captured input line.
func (c Capture) Holds(st *RuntimeState) bool {
	return c.Matches(st.LastInput)
}

// Conditional is either an expression evaluated against the variable
// context or a set of captures over the last input line. Expression
// evaluation fails closed: a malformed or non-boolean expression is false.
type Conditional struct {
	Expression string
	LastIn     []Capture
}

func (c Conditional) Holds(st *RuntimeState) bool {
	if c.Expression != "" {
		return st.VarCondition(c.Expression)
	}
	for _, cap := range c.LastIn {
		if !cap.Matches(st.LastInput) {
			return false
		}
	}
	return true
}

// Switcher is an ordered first-match dispatch: the first case whose guards
// all hold runs, later cases are never evaluated. With no match the default
// body runs, if present.
type Switcher[C Cond] struct {
	Cases   []Case[C]
	Default *Node
}

// Case pairs guard conditions with the body executed when they all hold.
type Case[C Cond] struct {
	Guards []C
	Body   Node
}
