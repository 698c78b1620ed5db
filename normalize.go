package typedargs

import (
	"strconv"
	"strings"
)

// splitArgs scans the argument vector ahead of the token engine. It expands
// one-or-more arguments into repeated flag/value pairs, cuts the vector at
// the first bare token naming a sub-command, and collects tokens nothing can
// consume. The scan mirrors the engine's own consumption rules so the two
// passes never disagree: a value-taking flag always consumes the next token,
// a flag-only argument consumes none, and a "--name=value" form is
// self-contained.
func (p *parserNode) splitArgs(args []string) (own, leftovers []string, cmd *commandSpec, rest []string) {
	for i := 0; i < len(args); i++ {
		tok := args[i]

		if tok == "--" {
			leftovers = append(leftovers, args[i+1:]...)
			break
		}

		if !isFlagToken(tok) {
			if c := p.findCommand(tok); c != nil {
				return own, leftovers, c, args[i+1:]
			}
			leftovers = append(leftovers, tok)
			continue
		}

		own = append(own, tok)
		name, hasValue := splitFlagToken(tok)
		spec := p.lookupFlag(name)
		if spec == nil || !spec.takesValue || hasValue {
			continue
		}
		if spec.repeatable {
			consumed := 0
			for i+1 < len(args) && !isFlagToken(args[i+1]) && args[i+1] != "--" {
				if consumed > 0 {
					own = append(own, tok)
				}
				own = append(own, args[i+1])
				consumed++
				i++
			}
			continue
		}
		if i+1 < len(args) {
			own = append(own, args[i+1])
			i++
		}
	}
	return own, leftovers, nil, nil
}

// lookupFlag finds the argument registered under a long flag name. Unknown
// names and the built-in help/version flags return nil; neither consumes a
// value.
func (p *parserNode) lookupFlag(name string) *argumentSpec {
	for _, g := range []*argGroup{p.required, p.optional} {
		for _, spec := range g.specs {
			if spec.name == name {
				return spec
			}
		}
	}
	return nil
}

// isFlagToken reports whether a token is an option rather than a value. A
// lone dash is a value by convention, and a token that parses as a number is
// a negative value, not a flag.
func isFlagToken(tok string) bool {
	if tok == "-" || !strings.HasPrefix(tok, "-") {
		return false
	}
	return !isNumeric(tok)
}

func isNumeric(tok string) bool {
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}

func splitFlagToken(tok string) (name string, hasValue bool) {
	trimmed := strings.TrimLeft(tok, "-")
	if eq := strings.IndexByte(trimmed, '='); eq >= 0 {
		return trimmed[:eq], true
	}
	return trimmed, false
}
