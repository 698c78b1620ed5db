package typedargs

import (
	"fmt"

	"github.com/typedargs/typedargs/schema"
)

// classification is the CLI shape assigned to a field's declared type.
type classification uint8

const (
	classScalar classification = iota
	classBoolean
	classEnumeration
	classLiteralSet
	classContainer
	classMapping
	classNestedCommand
)

var classNames = map[classification]string{
	classScalar:        "scalar",
	classBoolean:       "boolean",
	classEnumeration:   "enumeration",
	classLiteralSet:    "literal",
	classContainer:     "container",
	classMapping:       "mapping",
	classNestedCommand: "command",
}

func (c classification) String() string {
	return classNames[c]
}

// typeInfo is the classifier's digest of one field: the winning
// classification plus everything synthesis needs from the branches.
type typeInfo struct {
	class        classification
	allowsAbsent bool
	choices      []any           // literal values, declaration order across branches
	members      []schema.Member // first enum branch
	model        *schema.Schema  // first model branch
	elem         *schema.Type    // first container branch's element type
}

// classify unwraps optional/union layers, discards the absence branch, and
// applies the fixed precedence over the remaining branches: nested command,
// literal set, boolean, container, mapping, enumeration, scalar. A field
// whose type has no concrete branch is a schema-authoring error.
func classify(f *schema.Field) (*typeInfo, error) {
	branches, allowsAbsent := f.Type.Concrete()
	if len(branches) == 0 {
		return nil, fmt.Errorf("field %q: type has no concrete branch", f.Name)
	}

	info := &typeInfo{allowsAbsent: allowsAbsent}
	hasBool := false
	hasMap := false
	for _, b := range branches {
		switch b.Kind {
		case schema.KindModel:
			if info.model == nil {
				info.model = b.Model
			}
		case schema.KindLiteral:
			info.choices = append(info.choices, b.Choices...)
		case schema.KindBool:
			hasBool = true
		case schema.KindList:
			if info.elem == nil {
				info.elem = b.Elem
			}
		case schema.KindMap:
			hasMap = true
		case schema.KindEnum:
			if info.members == nil {
				info.members = b.Members
			}
		}
	}

	switch {
	case info.model != nil:
		info.class = classNestedCommand
	case len(info.choices) > 0:
		info.class = classLiteralSet
	case hasBool:
		info.class = classBoolean
	case info.elem != nil:
		info.class = classContainer
	case hasMap:
		info.class = classMapping
	case info.members != nil:
		info.class = classEnumeration
	default:
		info.class = classScalar
	}
	return info, nil
}
