package typedargs

import (
	"errors"

	"github.com/goccy/go-yaml"
	"github.com/typedargs/typedargs/schema"
)

// synthesizeMapping emits a single-value argument whose token is a key/value
// literal expression.
func synthesizeMapping(f *schema.Field, info *typeInfo) []*argumentSpec {
	return []*argumentSpec{baseSpec(f, info)}
}

// mappingCast parses one token as a key/value literal. YAML flow mappings
// cover JSON objects and Python-style dict literals alike.
func mappingCast(s string) (any, error) {
	var m map[string]any
	if err := yaml.Unmarshal([]byte(s), &m); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New("not a mapping literal")
	}
	return m, nil
}
