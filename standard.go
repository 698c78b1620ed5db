package typedargs

import "github.com/typedargs/typedargs/schema"

// synthesizeScalar is the fallback: one single-value argument whose token
// reaches the construction engine as-is. Duration and secret conversions
// happen there through decode hooks.
func synthesizeScalar(f *schema.Field, info *typeInfo) []*argumentSpec {
	return []*argumentSpec{baseSpec(f, info)}
}
