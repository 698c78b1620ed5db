package schema

import (
	"errors"
	"fmt"
)

// Kind discriminates type descriptors.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNone
	KindBool
	KindString
	KindInt
	KindFloat
	KindDuration
	KindSecret
	KindLiteral
	KindEnum
	KindList
	KindMap
	KindModel
	KindUnion
)

var kindNames = map[Kind]string{
	KindInvalid:  "invalid",
	KindNone:     "none",
	KindBool:     "bool",
	KindString:   "string",
	KindInt:      "int",
	KindFloat:    "float",
	KindDuration: "duration",
	KindSecret:   "secret",
	KindLiteral:  "literal",
	KindEnum:     "enum",
	KindList:     "list",
	KindMap:      "map",
	KindModel:    "model",
	KindUnion:    "union",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Member is one named enumeration member.
type Member struct {
	Name  string
	Value any
}

// Type describes a field's declared type. Build values with the package
// constructors; the zero Type is invalid.
type Type struct {
	Kind     Kind
	Elem     *Type    // list element type
	Choices  []any    // literal values
	Members  []Member // enum members
	Model    *Schema  // nested schema
	Branches []*Type  // union branches
}

// Bool declares a boolean type.
func Bool() *Type { return &Type{Kind: KindBool} }

// String declares a string type.
func String() *Type { return &Type{Kind: KindString} }

// Int declares an integer type.
func Int() *Type { return &Type{Kind: KindInt} }

// Float declares a floating-point type.
func Float() *Type { return &Type{Kind: KindFloat} }

// Duration declares a time.Duration type parsed from strings like "1h30m".
func Duration() *Type { return &Type{Kind: KindDuration} }

// Secret declares a redacted string type decoded into SecretString.
func Secret() *Type { return &Type{Kind: KindSecret} }

// Literal declares a closed set of permitted values.
func Literal(choices ...any) *Type { return &Type{Kind: KindLiteral, Choices: choices} }

// Enum declares a closed set of named members, addressed by name on the
// command line.
func Enum(members ...Member) *Type { return &Type{Kind: KindEnum, Members: members} }

// List declares an ordered repeatable sequence of elem values.
func List(elem *Type) *Type { return &Type{Kind: KindList, Elem: elem} }

// Map declares a string-keyed mapping with dynamically typed values.
func Map() *Type { return &Type{Kind: KindMap} }

// Model declares a nested schema, surfaced as a sub-command.
func Model(s *Schema) *Type { return &Type{Kind: KindModel, Model: s} }

// Union declares a type with several branches.
func Union(branches ...*Type) *Type { return &Type{Kind: KindUnion, Branches: branches} }

// None declares the absence branch of a union.
func None() *Type { return &Type{Kind: KindNone} }

// Optional is shorthand for Union(t, None()).
func Optional(t *Type) *Type { return Union(t, None()) }

// Concrete returns the non-absence branches of t, flattening nested unions,
// and whether an absence branch was present anywhere.
func (t *Type) Concrete() ([]*Type, bool) {
	if t == nil {
		return nil, false
	}
	switch t.Kind {
	case KindNone:
		return nil, true
	case KindUnion:
		var branches []*Type
		allows := false
		for _, b := range t.Branches {
			bs, a := b.Concrete()
			branches = append(branches, bs...)
			allows = allows || a
		}
		return branches, allows
	default:
		return []*Type{t}, false
	}
}

func (t *Type) check() error {
	if t == nil {
		return errors.New("type is nil")
	}
	switch t.Kind {
	case KindInvalid:
		return errors.New("type is invalid")
	case KindLiteral:
		if len(t.Choices) == 0 {
			return errors.New("literal type needs at least one choice")
		}
	case KindEnum:
		if len(t.Members) == 0 {
			return errors.New("enum type needs at least one member")
		}
		seen := make(map[string]struct{}, len(t.Members))
		for _, m := range t.Members {
			if m.Name == "" {
				return errors.New("enum member name is empty")
			}
			if _, dup := seen[m.Name]; dup {
				return fmt.Errorf("enum member %q declared twice", m.Name)
			}
			seen[m.Name] = struct{}{}
		}
	case KindList:
		if t.Elem == nil {
			return errors.New("list type needs an element type")
		}
		return t.Elem.check()
	case KindModel:
		if t.Model == nil {
			return errors.New("model type needs a schema")
		}
	case KindUnion:
		if len(t.Branches) == 0 {
			return errors.New("union type needs at least one branch")
		}
		for _, b := range t.Branches {
			if err := b.check(); err != nil {
				return err
			}
		}
	}
	return nil
}
