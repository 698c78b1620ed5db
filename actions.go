package typedargs

// namespace accumulates the raw values the token parser produces. Keys are
// field names; values are raw strings, []string for repeatable arguments, or
// a nested map for the invoked sub-command. Defaults never enter the
// namespace, so presence of a key means the user supplied the argument.
type namespace struct {
	values map[string]any
}

func newNamespace() *namespace {
	return &namespace{values: make(map[string]any)}
}

func (n *namespace) set(dest string, v any) {
	n.values[dest] = v
}

func (n *namespace) appendTo(dest, raw string) {
	cur, _ := n.values[dest].([]string)
	n.values[dest] = append(cur, raw)
}

func (n *namespace) get(dest string) (any, bool) {
	v, ok := n.values[dest]
	return v, ok
}

func (n *namespace) has(dest string) bool {
	_, ok := n.values[dest]
	return ok
}

// storeValue is the pflag adapter for single-value and flag-only arguments.
// Every occurrence overwrites the destination, so complementary pairs and
// repeated flags resolve to the last occurrence on the command line. The
// adapter writes through the node so each parse starts from a fresh
// namespace.
type storeValue struct {
	node *parserNode
	dest string
}

func (v *storeValue) Set(raw string) error {
	if raw == absenceToken {
		raw = ""
	}
	v.node.ns.set(v.dest, raw)
	return nil
}

func (v *storeValue) String() string { return "" }

func (v *storeValue) Type() string { return "value" }

// appendValue is the pflag adapter for one-or-more arguments. Occurrences
// accumulate in command-line order.
type appendValue struct {
	node *parserNode
	dest string
}

func (v *appendValue) Set(raw string) error {
	v.node.ns.appendTo(v.dest, raw)
	return nil
}

func (v *appendValue) String() string { return "" }

func (v *appendValue) Type() string { return "values" }
