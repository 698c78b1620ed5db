package typedargs

import "strings"

// helpColWidth is the column where help text starts in two-column rows.
const helpColWidth = 24

// usageLine is the one-line summary printed on every error and at the top of
// the help output. Optional arguments render in brackets, required ones bare,
// and the commands metavar closes the line. Secondary halves of complementary
// pairs are omitted.
func (p *parserNode) usageLine() string {
	var b strings.Builder
	b.WriteString("usage: ")
	b.WriteString(p.prog)
	if p.addHelp {
		b.WriteString(" [-h]")
	}
	if p.version != "" {
		b.WriteString(" [-v]")
	}
	for _, spec := range p.order {
		if spec.secondary {
			continue
		}
		b.WriteString(" ")
		b.WriteString(usageForm(spec))
	}
	if len(p.commands) > 0 {
		b.WriteString(" ")
		b.WriteString(p.commandsMetavar())
		b.WriteString(" ...")
	}
	return b.String()
}

func usageForm(spec *argumentSpec) string {
	form := "--" + spec.name
	if spec.takesValue {
		form += " " + spec.metavar
		if spec.repeatable {
			form += " [" + spec.metavar + " ...]"
		}
	}
	if !spec.required {
		form = "[" + form + "]"
	}
	return form
}

// invocation renders the left column of one help row.
func invocation(spec *argumentSpec) string {
	var b strings.Builder
	if spec.shorthand != "" {
		b.WriteString("-")
		b.WriteString(spec.shorthand)
		b.WriteString(", ")
	}
	b.WriteString("--")
	b.WriteString(spec.name)
	if spec.takesValue {
		b.WriteString(" ")
		b.WriteString(spec.metavar)
		if spec.repeatable {
			b.WriteString(" [")
			b.WriteString(spec.metavar)
			b.WriteString(" ...]")
		}
	}
	return b.String()
}

type helpRow struct {
	invocation string
	help       string
}

// groupRows folds each complementary pair into a single "--x, --no-x" row.
func groupRows(g *argGroup) []helpRow {
	var rows []helpRow
	for i := 0; i < len(g.specs); i++ {
		spec := g.specs[i]
		inv := invocation(spec)
		if i+1 < len(g.specs) && g.specs[i+1].secondary && g.specs[i+1].dest == spec.dest {
			inv += ", --" + g.specs[i+1].name
			i++
		}
		rows = append(rows, helpRow{invocation: inv, help: spec.help})
	}
	return rows
}

// renderHelp produces the full help text: usage line, description, one
// section per group in display order, epilog. The commands group lists the
// metavar row first and each command indented beneath it.
func (p *parserNode) renderHelp() string {
	var b strings.Builder
	b.WriteString(p.usageLine())
	b.WriteString("\n")
	if p.description != "" {
		b.WriteString("\n")
		b.WriteString(p.description)
		b.WriteString("\n")
	}
	for _, g := range p.groupOrder {
		if g == p.commandsGroup {
			b.WriteString("\n")
			b.WriteString(g.title)
			b.WriteString(":\n")
			writeRow(&b, 2, p.commandsMetavar(), "")
			for _, c := range p.commands {
				writeRow(&b, 4, c.name, c.help)
			}
			continue
		}
		if len(g.specs) == 0 {
			continue
		}
		b.WriteString("\n")
		b.WriteString(g.title)
		b.WriteString(":\n")
		for _, row := range groupRows(g) {
			writeRow(&b, 2, row.invocation, row.help)
		}
	}
	if p.epilog != "" {
		b.WriteString("\n")
		b.WriteString(p.epilog)
		b.WriteString("\n")
	}
	return b.String()
}

func writeRow(b *strings.Builder, indent int, left, help string) {
	b.WriteString(strings.Repeat(" ", indent))
	b.WriteString(left)
	if help == "" {
		b.WriteString("\n")
		return
	}
	used := indent + len(left)
	if used+2 > helpColWidth {
		b.WriteString("\n")
		b.WriteString(strings.Repeat(" ", helpColWidth))
	} else {
		b.WriteString(strings.Repeat(" ", helpColWidth-used))
	}
	b.WriteString(help)
	b.WriteString("\n")
}
