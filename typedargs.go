// Package typedargs compiles a typed schema into a command-line argument
// parser. Each schema field becomes a long-form flag whose CLI shape follows
// its declared type: booleans become flag-only arguments (with a
// complementary --no-x form where the polarity demands one), closed value
// sets become choice arguments, sequences accept one or more tokens,
// mappings accept one flow-mapping literal, and nested schemas become
// sub-commands with their own argument sets. Parsed values are reconciled
// with declared defaults and an optional environment overlay, then decoded
// into a caller-supplied struct.
//
//	sch := schema.MustNew("example",
//		&schema.Field{Name: "name", Type: schema.String(), Required: true,
//			Description: "who to greet"},
//		&schema.Field{Name: "count", Type: schema.Int(),
//			Default: schema.Supplied(1), Description: "how many times"},
//	)
//	p, err := typedargs.New(sch, typedargs.WithProg("greet"))
//	...
//	var args struct {
//		Name  string
//		Count int
//	}
//	err = p.Parse(os.Args[1:], &args)
//
// Fields of the output struct match schema fields by name,
// case-insensitively, or through an `arg:"name"` struct tag.
package typedargs

// ParseTyped parses the argument vector into a freshly allocated T. It is a
// convenience wrapper around Parse for callers that prefer a typed return
// over an out parameter.
func ParseTyped[T any](p *Parser, args []string) (*T, error) {
	out := new(T)
	if err := p.Parse(args, out); err != nil {
		return nil, err
	}
	return out, nil
}
