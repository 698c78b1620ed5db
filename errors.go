package typedargs

import (
	"errors"
	"fmt"
	"strings"
)

// exitStatusError is the process status used for parse and validation
// failures when exit-on-error is active.
const exitStatusError = 2

// ErrHelp is returned by Parse after printing help when exit-on-error is
// disabled.
var ErrHelp = errors.New("help requested")

// ErrVersion is returned by Parse after printing the version when
// exit-on-error is disabled.
var ErrVersion = errors.New("version requested")

// ArgumentError reports a command-line usage failure: unknown flags, missing
// required arguments, unrecognized trailing tokens, or aggregated field
// errors. It is returned by Parse when exit-on-error is disabled.
type ArgumentError struct {
	Prog string
	Msg  string
	Err  error

	node *parserNode
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: error: %s", e.Prog, e.Msg)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// FieldError is one field's coercion or validation failure. Field holds the
// user-facing argument name, prefixed with the sub-command path when nested.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// FieldErrors aggregates every failing field into a single report. A parse
// never constructs a partial result: either all fields validate or the whole
// set of failures is reported at once.
type FieldErrors []*FieldError

func (e FieldErrors) Error() string {
	noun := "errors"
	if len(e) == 1 {
		noun = "error"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation %s:", len(e), noun)
	for _, fe := range e {
		b.WriteString("\n  ")
		b.WriteString(fe.Error())
	}
	return b.String()
}
