package schema

type valueState uint8

const (
	stateUnset valueState = iota
	stateSupplied
	stateAbsent
)

// Value records how a field value was determined: explicitly supplied,
// explicitly cleared, or left to the field default. The zero Value means
// "use the default".
type Value struct {
	state valueState
	v     any
}

// Supplied wraps an explicit value.
func Supplied(v any) Value { return Value{state: stateSupplied, v: v} }

// Absent marks a value as explicitly cleared. Unlike the zero Value it
// overrides any default with "no value".
func Absent() Value { return Value{state: stateAbsent} }

// IsSupplied reports whether the Value carries an explicit value.
func (v Value) IsSupplied() bool { return v.state == stateSupplied }

// IsAbsent reports whether the Value was explicitly cleared.
func (v Value) IsAbsent() bool { return v.state == stateAbsent }

// IsUnset reports whether no decision was made and the default applies.
func (v Value) IsUnset() bool { return v.state == stateUnset }

// Get returns the wrapped value, nil unless IsSupplied.
func (v Value) Get() any {
	if v.state != stateSupplied {
		return nil
	}
	return v.v
}
