/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Format selects one of the two interchangeable structured-text notations.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatYAML, fmt.Errorf("unknown notation %q (want yaml or json)", s)
	}
}

func (f Format) Name() string {
	if f == FormatJSON {
		return "json"
	}
	return "yaml"
}

// Ext is the file extension of documents in this notation, without the dot.
func (f Format) Ext() string { return f.Name() }

// Document is the top-level schema of every script file: a character roster,
// an optional default character, and the root of the executable tree.
type Document struct {
	Characters       []Character `yaml:"characters" json:"characters"`
	DefaultCharacter *Character  `yaml:"defaultCharacter" json:"defaultCharacter"`
	Entry            Node        `yaml:"entry" json:"entry"`
}

// documentSchema is the structural contract checked before JSON decoding so
// format errors name the offending field instead of surfacing as decode
// panics deep in the union dispatch.
const documentSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["entry"],
	"properties": {
		"characters": {
			"type": "array",
			"items": {"type": "object", "required": ["name"]}
		},
		"defaultCharacter": {"type": "object"},
		"entry": {}
	}
}`

// DecodeDocument deserializes a script document from data in the given
// notation.
func DecodeDocument(data []byte, f Format) (*Document, error) {
	var doc Document
	switch f {
	case FormatJSON:
		if err := validateJSONDocument(data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	}
	if doc.Entry.Kind == KindInvalid {
		return nil, fmt.Errorf("document has no entry node")
	}
	return &doc, nil
}

func validateJSONDocument(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(documentSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}
	parts := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		parts = append(parts, desc.String())
	}
	return fmt.Errorf("document schema: %s", strings.Join(parts, "; "))
}

// LoadDocument reads path and deserializes it, wrapping failures into the
// compile error taxonomy (IO for read failures, Format with the notation
// name for malformed content).
func LoadDocument(path string, f Format) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CompileError{Kind: ErrIO, Path: path, Err: err}
	}
	doc, err := DecodeDocument(data, f)
	if err != nil {
		return nil, &CompileError{Kind: ErrFormat, Path: path, Notation: f.Name(), Err: err}
	}
	return doc, nil
}
