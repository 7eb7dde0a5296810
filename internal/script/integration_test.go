/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "testing"

// Compiles a small two-document project and replays it against a fake sink,
// covering reference resolution, variable mutation, input dispatch, and
// interpolation in one pass.
func TestCompileAndRunProject(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "init.yaml", `
characters:
  - name: Guide
    color: cyan
entry:
  seq:
    - title: The Crossing
    - let: "crossings = 0"
    - in:
        cases:
          - cap:
              - lit: "cross"
            sec:
              seq:
                - let: "crossings = crossings + 1"
                - ref: bridge
        def:
          text:
            Guide: "You stay put."
    - print: "Crossed $crossings time(s)."
`)
	writeDoc(t, dir, "bridge.yaml", `
entry:
  dialog:
    Guide: "Watch your step."
`)

	p, err := CompileProject(dir, FormatYAML)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	sink := &fakeSink{inputs: []string{"cross the bridge"}}
	e := NewEngine(p.Init, sink)
	if err := e.Run(p.Entry); err != nil {
		t.Fatalf("run: %v", err)
	}

	titles := sink.ops("title")
	if len(titles) != 1 || titles[0].text != "The Crossing" {
		t.Fatalf("titles: %+v", titles)
	}

	types := sink.ops("type")
	if len(types) != 2 || types[0].text != "Guide:" || types[1].text != "Watch your step." {
		t.Fatalf("referenced dialog not replayed: %+v", types)
	}

	appends := sink.ops("append")
	if len(appends) != 1 || appends[0].text != "Crossed 1 time(s)." {
		t.Fatalf("appends: %+v", appends)
	}
}

func TestCompileAndRunDefaultArm(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "init.yaml", `
entry:
  in:
    cases:
      - cap:
          - lit: "cross"
        sec: clear
    def:
      print: "nothing happened"
`)

	p, err := CompileProject(dir, FormatYAML)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	sink := &fakeSink{inputs: []string{"wait here"}}
	e := NewEngine(p.Init, sink)
	if err := e.Run(p.Entry); err != nil {
		t.Fatalf("run: %v", err)
	}
	appends := sink.ops("append")
	if len(appends) != 1 || appends[0].text != "nothing happened" {
		t.Fatalf("appends: %+v", appends)
	}
	if len(sink.ops("clear")) != 0 {
		t.Fatal("matched arm should not have run")
	}
}
