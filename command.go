package typedargs

import "github.com/typedargs/typedargs/schema"

// commandSpec binds a nested schema field to its sub-parser. The sub-command
// token on the command line is the field's alias.
type commandSpec struct {
	field *schema.Field
	name  string
	help  string
	node  *parserNode
}

// findCommand resolves a bare token to a registered sub-command.
func (p *parserNode) findCommand(token string) *commandSpec {
	for _, c := range p.commands {
		if c.name == token {
			return c
		}
	}
	return nil
}
