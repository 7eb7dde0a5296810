/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "fmt"

// ErrorKind classifies compile-phase failures. The first failure anywhere
// in the recursive walk aborts compilation of the whole project.
type ErrorKind int

const (
	ErrIO ErrorKind = iota
	ErrFormat
	ErrInvalidPath
	ErrUnresolvedReference
	ErrImageDecode
)

func (k ErrorKind) String() string {
	switch k {
	case ErrIO:
		return "IO"
	case ErrFormat:
		return "Format"
	case ErrInvalidPath:
		return "InvalidPath"
	case ErrUnresolvedReference:
		return "UnresolvedReference"
	case ErrImageDecode:
		return "ImageDecode"
	default:
		return "Unknown"
	}
}

// CompileError carries the failure kind, the file it concerns (when known),
// and the notation name for format errors.
type CompileError struct {
	Kind     ErrorKind
	Path     string
	Notation string
	Err      error
}

func (e *CompileError) Error() string {
	msg := e.Kind.String()
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CompileError) Unwrap() error { return e.Err }

// Title is the banner heading shown by the presentation sink for this
// error, e.g. "yaml - FormatError".
func (e *CompileError) Title() string {
	if e.Kind == ErrFormat && e.Notation != "" {
		return fmt.Sprintf("%s - %sError", e.Notation, e.Kind)
	}
	return fmt.Sprintf("%sError", e.Kind)
}
