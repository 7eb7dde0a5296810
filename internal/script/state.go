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
	"regexp"
	"strconv"
	"strings"

	lua "github.com/Shopify/go-lua"
)

// LastInputVar is the reserved variable rebound to the captured line on
// every input, so expressions can reference it.
const LastInputVar = "last_in"

// interpPattern matches one interpolation token: $ followed by a braced
// expression or a bare identifier run.
var interpPattern = regexp.MustCompile(`\$(?:\{(.+?)}|(.+?)\b)`)

// RuntimeState is the mutable state carried through execution: the last
// captured input line and a variable-binding context backed by a Lua state.
// It is owned exclusively by the execution worker; nothing else touches it.
type RuntimeState struct {
	LastInput string

	l *lua.State
}

func NewRuntimeState() *RuntimeState {
	l := lua.NewState()
	lua.OpenLibraries(l)
	return &RuntimeState{l: l}
}

// UpdateInput stores the captured line and rebinds the reserved variable.
func (st *RuntimeState) UpdateInput(line string) {
	st.LastInput = line
	st.l.PushString(line)
	st.l.SetGlobal(LastInputVar)
}

// evalValue evaluates expr for a single value. ok is false when the chunk
// does not parse, errors at runtime, or yields nil — nil counts as failure
// so tokens naming unset variables pass through interpolation untouched.
func (st *RuntimeState) evalValue(expr string) (any, bool) {
	top := st.l.Top()
	defer st.l.SetTop(top)
	if err := lua.LoadString(st.l, "return ("+expr+")"); err != nil {
		return nil, false
	}
	if err := st.l.ProtectedCall(0, 1, 0); err != nil {
		return nil, false
	}
	switch st.l.TypeOf(-1) {
	case lua.TypeBoolean:
		return st.l.ToBoolean(-1), true
	case lua.TypeNumber:
		v, _ := st.l.ToNumber(-1)
		return v, true
	case lua.TypeString:
		s, _ := st.l.ToString(-1)
		return s, true
	default:
		return nil, false
	}
}

// Expand evaluates expr against the context; on failure the literal source
// is returned unchanged.
func (st *RuntimeState) Expand(expr string) any {
	if v, ok := st.evalValue(expr); ok {
		return v
	}
	return expr
}

// ValueString renders an expansion result: strings verbatim, everything
// else in its canonical textual form.
func ValueString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// ExpandString substitutes every interpolation token in template with the
// string form of its evaluated body. One left-to-right pass; substituted
// text is never re-scanned. A token that fails to evaluate is replaced by
// its raw body with the delimiters stripped.
func (st *RuntimeState) ExpandString(template string) string {
	matches := interpPattern.FindAllStringSubmatchIndex(template, -1)
	if matches == nil {
		return template
	}
	var b strings.Builder
	b.Grow(len(template))
	last := 0
	for _, m := range matches {
		b.WriteString(template[last:m[0]])
		var body string
		if m[2] >= 0 {
			body = template[m[2]:m[3]]
		} else {
			body = template[m[4]:m[5]]
		}
		if v, ok := st.evalValue(body); ok {
			b.WriteString(ValueString(v))
		} else {
			b.WriteString(body)
		}
		last = m[1]
	}
	b.WriteString(template[last:])
	return b.String()
}

// VarExpr runs expr for its mutating side effect on the context. Failure
// here is fatal to the run: losing an assignment silently would corrupt
// every later condition, so the error is returned for the engine to abort
// with.
func (st *RuntimeState) VarExpr(expr string) error {
	top := st.l.Top()
	defer st.l.SetTop(top)
	if err := lua.DoString(st.l, expr); err != nil {
		return fmt.Errorf("let %q: %w", expr, err)
	}
	return nil
}

// VarCondition evaluates expr as a boolean; anything but a clean boolean
// result is false.
func (st *RuntimeState) VarCondition(expr string) bool {
	v, ok := st.evalValue(expr)
	if !ok {
		return false
	}
	b, isBool := v.(bool)
	return isBool && b
}
