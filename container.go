package typedargs

import "github.com/typedargs/typedargs/schema"

// synthesizeContainer emits a repeatable value argument. Elements keep their
// command-line order and stay raw strings; the construction engine converts
// them to the element type in one step.
func synthesizeContainer(f *schema.Field, info *typeInfo) []*argumentSpec {
	spec := baseSpec(f, info)
	spec.repeatable = true
	return []*argumentSpec{spec}
}
