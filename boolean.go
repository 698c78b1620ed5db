package typedargs

import "github.com/typedargs/typedargs/schema"

// synthesizeBoolean emits flag-only arguments. A required boolean gets the
// complementary pair so either polarity satisfies presence; an optional one
// gets the single flag that flips away from its default.
func synthesizeBoolean(f *schema.Field, info *typeInfo) []*argumentSpec {
	spec := baseSpec(f, info)
	spec.takesValue = false
	if f.Required {
		spec.constant = "true"
		inv := invertedSpec(spec)
		inv.constant = "false"
		inv.secondary = true
		return []*argumentSpec{spec, inv}
	}
	def, _ := f.DefaultValue()
	if truthy(def) {
		spec.name = "no-" + spec.name
		spec.constant = "false"
	} else {
		spec.constant = "true"
	}
	return []*argumentSpec{spec}
}
