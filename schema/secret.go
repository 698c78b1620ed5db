package schema

import "encoding/json"

// SecretString holds a value that must not leak into help output, logs or
// JSON. Use Value to read the real content.
type SecretString string

// String implements fmt.Stringer and redacts the content. The zero value
// renders as an empty string.
func (s SecretString) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

// Value returns the underlying content.
func (s SecretString) Value() string {
	return string(s)
}

// MarshalJSON writes the redacted form.
func (s SecretString) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON reads the raw content.
func (s *SecretString) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SecretString(raw)
	return nil
}
