package typedargs

import (
	"fmt"

	"github.com/typedargs/typedargs/schema"
)

// synthesizeEnum maps named members onto a choice argument addressed by
// member name. The single-member optional case collapses to a flag, with the
// same "no-" counterpart rule as literals.
func synthesizeEnum(f *schema.Field, info *typeInfo) []*argumentSpec {
	spec := baseSpec(f, info)
	if len(info.members) != 1 || f.Required {
		return []*argumentSpec{spec}
	}
	spec.takesValue = false
	spec.constant = info.members[0].Name
	specs := []*argumentSpec{spec}
	if info.allowsAbsent && hasPresentDefault(f) {
		inv := invertedSpec(spec)
		inv.constant = ""
		inv.secondary = true
		specs = append(specs, inv)
	}
	return specs
}

// enumCast resolves a token against the member names.
func enumCast(members []schema.Member) caster {
	lookup := make(map[string]any, len(members))
	for _, m := range members {
		lookup[m.Name] = m.Value
	}
	return func(s string) (any, error) {
		v, ok := lookup[s]
		if !ok {
			return nil, fmt.Errorf("no member %q", s)
		}
		return v, nil
	}
}
