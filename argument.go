package typedargs

import (
	"fmt"
	"strings"

	"github.com/typedargs/typedargs/schema"
)

// argumentSpec is the synthesized CLI surface for one field, or for one half
// of a complementary pair. Pair members share a destination.
type argumentSpec struct {
	field      *schema.Field
	class      classification
	name       string // long flag name without leading dashes
	shorthand  string // single letter, help and version only
	dest       string
	takesValue bool
	constant   string // raw value stored when the bare flag is supplied
	repeatable bool   // one-or-more arity
	metavar    string
	help       string
	required   bool
	secondary  bool // trailing half of a complementary pair
}

// baseSpec fills the parts shared by every classification.
func baseSpec(f *schema.Field, info *typeInfo) *argumentSpec {
	return &argumentSpec{
		field:      f,
		class:      info.class,
		name:       flagName(f.Alias),
		dest:       f.Name,
		takesValue: true,
		metavar:    metavarFor(f, info),
		help:       helpFor(f),
		required:   f.Required,
	}
}

// invertedSpec derives the complementary "no-" half of a pair.
func invertedSpec(spec *argumentSpec) *argumentSpec {
	inv := *spec
	inv.name = "no-" + spec.name
	return &inv
}

// flagName maps an alias to its long flag name, underscores to hyphens.
func flagName(alias string) string {
	return strings.ReplaceAll(alias, "_", "-")
}

// metavarFor renders the value placeholder: the brace-enclosed choice list
// for closed sets, the upper-cased alias otherwise.
func metavarFor(f *schema.Field, info *typeInfo) string {
	switch info.class {
	case classLiteralSet:
		forms := make([]string, len(info.choices))
		for i, c := range info.choices {
			forms[i] = stringForm(c)
		}
		return "{" + strings.Join(forms, ", ") + "}"
	case classEnumeration:
		names := make([]string, len(info.members))
		for i, m := range info.members {
			names[i] = m.Name
		}
		return "{" + strings.Join(names, ", ") + "}"
	case classBoolean:
		return ""
	default:
		return strings.ToUpper(f.Alias)
	}
}

// helpFor joins the description and, for optional fields, the rendered
// default, omitting either part if absent.
func helpFor(f *schema.Field) string {
	parts := make([]string, 0, 2)
	if f.Description != "" {
		parts = append(parts, f.Description)
	}
	if v, ok := f.DefaultValue(); ok {
		parts = append(parts, fmt.Sprintf("(default: %s)", renderDefault(v)))
	}
	return strings.Join(parts, " ")
}

// renderDefault formats a default for help output. Secrets redact themselves
// through their Stringer.
func renderDefault(v any) string {
	if v == nil {
		return "none"
	}
	return fmt.Sprintf("%v", v)
}

// truthy reports whether a default counts as a "present" value for flag
// inversion purposes.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}
