/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"os"
	"path/filepath"
	"strings"
)

// PathReference is a file reference from a script document, either relative
// to the referring document's directory or absolute. Relative references are
// never resolved against the process working directory.
type PathReference struct {
	Raw string
}

// WithExt returns a copy whose extension is forced to ext, replacing any
// existing one.
func (r PathReference) WithExt(ext string) PathReference {
	raw := strings.TrimSuffix(r.Raw, filepath.Ext(r.Raw))
	return PathReference{Raw: raw + "." + ext}
}

// Resolve normalizes the reference against base into a canonical absolute
// path of an existing file. The logical path (joined to base, or the
// absolute reference as-is) is tried first, then the raw reference as a
// plain absolute path. When neither exists the result is an InvalidPath
// compile error.
func (r PathReference) Resolve(base string) (string, error) {
	logical := r.Raw
	if !filepath.IsAbs(logical) {
		logical = filepath.Join(base, logical)
	}
	if fileExists(logical) {
		return canonicalPath(logical)
	}
	if fileExists(r.Raw) {
		return canonicalPath(r.Raw)
	}
	return "", &CompileError{Kind: ErrInvalidPath, Path: logical}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &CompileError{Kind: ErrInvalidPath, Path: path, Err: err}
	}
	return filepath.Clean(abs), nil
}
