// Package schema describes typed command-line schemas: named fields with
// explicit type descriptors, requiredness, defaults and documentation.
// A Schema is compiled into a parser by the typedargs package.
package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Field describes one named schema field.
type Field struct {
	// Name identifies the field and must be unique within its schema. The
	// parsed value is matched to the output struct by this name (or by an
	// `arg` struct tag).
	Name string

	// Alias is the external CLI name. It defaults to Name with underscores
	// mapped to hyphens.
	Alias string

	// Type is the field's declared type descriptor.
	Type *Type

	// Required marks the field as mandatory on the command line. Required
	// fields cannot carry a default.
	Required bool

	// Default is the declared default value. Supplied(v) sets a concrete
	// default, Absent() defaults the field to "no value". Optional fields
	// must set exactly one of Default and DefaultFunc.
	Default Value

	// DefaultFunc produces the default at parse time.
	DefaultFunc func() any

	// Description is the help text shown for the argument.
	Description string
}

// DefaultValue resolves the declared default. ok is false when the field is
// required and therefore has none.
func (f *Field) DefaultValue() (v any, ok bool) {
	switch {
	case f.DefaultFunc != nil:
		return f.DefaultFunc(), true
	case f.Default.IsSupplied():
		return f.Default.Get(), true
	case f.Default.IsAbsent():
		return nil, true
	default:
		return nil, false
	}
}

// Schema is an ordered set of fields compiled into one parser.
type Schema struct {
	Name        string
	Description string
	Fields      []*Field
}

// New builds a schema and fails fast on authoring errors: missing or invalid
// types, duplicate names or aliases, and fields that violate the rule that
// exactly one of requiredness and a default must be declared.
func New(name string, fields ...*Field) (*Schema, error) {
	if name == "" {
		return nil, errors.New("schema: name is required")
	}
	names := make(map[string]struct{}, len(fields))
	aliases := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f == nil {
			return nil, fmt.Errorf("schema %q: nil field", name)
		}
		if f.Name == "" {
			return nil, fmt.Errorf("schema %q: field name is required", name)
		}
		if f.Alias == "" {
			f.Alias = strings.ReplaceAll(f.Name, "_", "-")
		}
		if f.Type == nil {
			return nil, fmt.Errorf("schema %q: field %q: type is required", name, f.Name)
		}
		if err := f.Type.check(); err != nil {
			return nil, fmt.Errorf("schema %q: field %q: %w", name, f.Name, err)
		}
		hasDefault := !f.Default.IsUnset() || f.DefaultFunc != nil
		if f.Required && hasDefault {
			return nil, fmt.Errorf("schema %q: field %q: required field cannot carry a default", name, f.Name)
		}
		if !f.Required && !hasDefault {
			return nil, fmt.Errorf("schema %q: field %q: optional field needs a default or a default factory", name, f.Name)
		}
		if !f.Default.IsUnset() && f.DefaultFunc != nil {
			return nil, fmt.Errorf("schema %q: field %q: default and default factory are mutually exclusive", name, f.Name)
		}
		if _, dup := names[f.Name]; dup {
			return nil, fmt.Errorf("schema %q: field %q declared twice", name, f.Name)
		}
		if _, dup := aliases[f.Alias]; dup {
			return nil, fmt.Errorf("schema %q: alias %q declared twice", name, f.Alias)
		}
		names[f.Name] = struct{}{}
		aliases[f.Alias] = struct{}{}
	}
	return &Schema{Name: name, Fields: fields}, nil
}

// MustNew is New that panics on error, for package-level declarations.
func MustNew(name string, fields ...*Field) *Schema {
	s, err := New(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Field returns the field with the given name.
func (s *Schema) Field(name string) (*Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}
