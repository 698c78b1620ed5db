package typedargs

import (
	"fmt"

	"github.com/typedargs/typedargs/schema"
)

// synthesizeLiteral maps a closed value set onto a choice argument. A single
// optional choice degenerates to a flag that stores it; when the type allows
// absence and a present default is declared, a "no-" counterpart stores the
// absence sentinel.
func synthesizeLiteral(f *schema.Field, info *typeInfo) []*argumentSpec {
	spec := baseSpec(f, info)
	if len(info.choices) != 1 || f.Required {
		return []*argumentSpec{spec}
	}
	spec.takesValue = false
	spec.constant = stringForm(info.choices[0])
	specs := []*argumentSpec{spec}
	if info.allowsAbsent && hasPresentDefault(f) {
		inv := invertedSpec(spec)
		inv.constant = ""
		inv.secondary = true
		specs = append(specs, inv)
	}
	return specs
}

// literalCast resolves a token against the string forms of the declared
// choices, one O(1) lookup per token.
func literalCast(choices []any) caster {
	lookup := make(map[string]any, len(choices))
	for _, c := range choices {
		lookup[stringForm(c)] = c
	}
	return func(s string) (any, error) {
		v, ok := lookup[s]
		if !ok {
			return nil, fmt.Errorf("no choice %q", s)
		}
		return v, nil
	}
}

// hasPresentDefault reports whether the field declares a default other than
// the absence sentinel.
func hasPresentDefault(f *schema.Field) bool {
	v, ok := f.DefaultValue()
	return ok && v != nil
}
