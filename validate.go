package typedargs

import "fmt"

// coercer converts one raw value from the token parser or the environment
// into the value handed to the construction engine. The contract: non-string
// inputs pass through untouched (defaults and already-typed values), an
// empty string becomes the absence sentinel (nil), and a failed conversion
// returns the raw token unchanged so schema validation owns the error.
type coercer func(raw any) any

// caster converts a non-empty raw token for one classification.
type caster func(s string) (any, error)

// synthesizeCoercer builds the per-field coercion hook. Fields classified as
// nested commands have none: their values arrive pre-validated from the
// nested parser.
func synthesizeCoercer(info *typeInfo) coercer {
	cast := identityCast
	switch info.class {
	case classLiteralSet:
		cast = literalCast(info.choices)
	case classEnumeration:
		cast = enumCast(info.members)
	case classMapping:
		cast = mappingCast
	}
	return func(raw any) any {
		s, ok := raw.(string)
		if !ok {
			return raw
		}
		if s == "" {
			return nil
		}
		v, err := cast(s)
		if err != nil {
			return s
		}
		return v
	}
}

func identityCast(s string) (any, error) {
	return s, nil
}

// stringForm renders a literal choice the way it must be typed on the
// command line.
func stringForm(v any) string {
	return fmt.Sprintf("%v", v)
}
