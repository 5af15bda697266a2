// Copyright (C) 2024 Wooyang2018
// Licensed under the GNU General Public License v3.0

package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

var ErrUnknownEntryPoint = errors.New("unknown entry point")

// Arg is one typed deploy argument in the wire form {name, type, value}.
type Arg struct {
	Name  string      `json:"name"`
	Type  CLType      `json:"type"`
	Value interface{} `json:"value"`
}

// ArgSpec declares one argument of an entry-point schema together
// with its default literal.
type ArgSpec struct {
	Name    string `json:"name"`
	Type    CLType `json:"type"`
	Default string `json:"value"`
}

// Schema is the ordered argument list of one entry point.
type Schema []ArgSpec

var schemas map[string]Schema

// Register adds a schema under an entry-point name, replacing any
// earlier registration of the same name.
func Register(name string, schema Schema) {
	if schemas == nil {
		schemas = make(map[string]Schema)
	}
	schemas[name] = schema
}

// EntryPoints lists the registered entry-point names sorted.
func EntryPoints() []string {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the schema registered under name.
func Describe(name string) (Schema, error) {
	schema, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntryPoint, name)
	}
	return schema, nil
}

// Build produces the typed argument sequence for an entry point,
// with overrides replacing default literals by argument name.
func Build(entryPoint string, overrides map[string]string) ([]Arg, error) {
	schema, ok := schemas[entryPoint]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntryPoint, entryPoint)
	}
	known := make(map[string]bool, len(schema))
	for _, spec := range schema {
		known[spec.Name] = true
	}
	for name := range overrides {
		if !known[name] {
			return nil, fmt.Errorf("entry point %s has no argument %s", entryPoint, name)
		}
	}
	args := make([]Arg, 0, len(schema))
	for _, spec := range schema {
		raw := spec.Default
		if v, ok := overrides[spec.Name]; ok {
			raw = v
		}
		value, err := spec.Type.coerce(raw)
		if err != nil {
			return nil, fmt.Errorf("argument %s: %w", spec.Name, err)
		}
		args = append(args, Arg{Name: spec.Name, Type: spec.Type, Value: value})
	}
	return args, nil
}

// Load merges schemas from a json file over the registered ones. The
// file maps entry-point names to argument spec arrays, turning the
// argument table into external data.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read schema file, %w", err)
	}
	var loaded map[string]Schema
	if err := json.Unmarshal(b, &loaded); err != nil {
		return fmt.Errorf("cannot parse schema file, %w", err)
	}
	for name, schema := range loaded {
		Register(name, schema)
	}
	return nil
}
