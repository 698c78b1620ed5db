package typedargs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/typedargs/typedargs/schema"
)

// nodeState tracks the assembly lifecycle of a parser node.
type nodeState uint8

const (
	nodeUninitialized nodeState = iota
	nodeGroupsCreated
	nodeFieldsRegistered
	nodeFinalized
)

// absenceToken stands in for the empty-string constant of clearing flags,
// because the token engine treats an empty no-value default as "value
// required". The store adapter maps it back before it reaches a namespace.
const absenceToken = "\x00"

// argGroup is one section of the help output.
type argGroup struct {
	title string
	specs []*argumentSpec
}

// parserNode is the compiled parser for one schema. Each nested-schema field
// gets its own node built over the same pipeline.
type parserNode struct {
	prog        string
	description string
	epilog      string
	sch         *schema.Schema
	flags       *pflag.FlagSet
	addHelp     bool
	version     string
	logger      *log.Logger
	out         io.Writer

	required      *argGroup
	optional      *argGroup
	helpGroup     *argGroup
	commandsGroup *argGroup
	groupOrder    []*argGroup
	order         []*argumentSpec

	commands  []*commandSpec
	coercers  map[string]coercer
	infos     map[string]*typeInfo
	usedFlags map[string]string

	state nodeState

	// per-parse results
	ns           *namespace
	active       *commandSpec
	preSatisfied map[string]bool
}

type nodeConfig struct {
	prog        string
	description string
	epilog      string
	addHelp     bool
	version     string
	logger      *log.Logger
	out         io.Writer
}

// buildNode compiles one schema into a parser node: groups first, then one
// registration pass over the fields, then finalization.
func buildNode(sch *schema.Schema, cfg nodeConfig) (*parserNode, error) {
	p := &parserNode{
		prog:        cfg.prog,
		description: cfg.description,
		epilog:      cfg.epilog,
		sch:         sch,
		addHelp:     cfg.addHelp,
		version:     cfg.version,
		logger:      cfg.logger,
		out:         cfg.out,
		coercers:    make(map[string]coercer),
		infos:       make(map[string]*typeInfo),
		usedFlags:   make(map[string]string),
	}
	p.createGroups()
	for _, f := range sch.Fields {
		if err := p.registerField(f); err != nil {
			return nil, err
		}
	}
	p.state = nodeFieldsRegistered
	p.finalize()
	return p, nil
}

func (p *parserNode) createGroups() {
	fs := pflag.NewFlagSet(p.prog, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false
	p.flags = fs

	p.required = &argGroup{title: "required arguments"}
	p.optional = &argGroup{title: "optional arguments"}
	p.helpGroup = &argGroup{title: "help"}
	p.groupOrder = []*argGroup{p.required, p.optional, p.helpGroup}

	if p.addHelp {
		fs.BoolP("help", "h", false, "")
		p.usedFlags["help"] = "built-in help flag"
		p.helpGroup.specs = append(p.helpGroup.specs, &argumentSpec{
			name:      "help",
			shorthand: "h",
			help:      "show this help message and exit",
		})
	}
	if p.version != "" {
		fs.BoolP("version", "v", false, "")
		p.usedFlags["version"] = "built-in version flag"
		p.helpGroup.specs = append(p.helpGroup.specs, &argumentSpec{
			name:      "version",
			shorthand: "v",
			help:      "show program's version number and exit",
		})
	}
	p.state = nodeGroupsCreated
}

func (p *parserNode) registerField(f *schema.Field) error {
	if p.state != nodeGroupsCreated {
		return fmt.Errorf("parser %q: field %q registered out of order", p.prog, f.Name)
	}
	info, err := classify(f)
	if err != nil {
		return fmt.Errorf("schema %q: %w", p.sch.Name, err)
	}
	p.infos[f.Name] = info

	if info.class == classNestedCommand {
		return p.addCommand(f, info)
	}

	var specs []*argumentSpec
	switch info.class {
	case classBoolean:
		specs = synthesizeBoolean(f, info)
	case classLiteralSet:
		specs = synthesizeLiteral(f, info)
	case classEnumeration:
		specs = synthesizeEnum(f, info)
	case classContainer:
		specs = synthesizeContainer(f, info)
	case classMapping:
		specs = synthesizeMapping(f, info)
	default:
		specs = synthesizeScalar(f, info)
	}
	for _, spec := range specs {
		if err := p.addArgument(spec); err != nil {
			return err
		}
	}
	p.coercers[f.Name] = synthesizeCoercer(info)
	p.logger.Debug("registered argument", "prog", p.prog, "field", f.Name, "class", info.class.String())
	return nil
}

func (p *parserNode) addArgument(spec *argumentSpec) error {
	if owner, taken := p.usedFlags[spec.name]; taken {
		return fmt.Errorf("schema %q: field %q: flag --%s conflicts with %s",
			p.sch.Name, spec.field.Name, spec.name, owner)
	}
	p.usedFlags[spec.name] = fmt.Sprintf("field %q", spec.field.Name)

	var value pflag.Value
	if spec.repeatable {
		value = &appendValue{node: p, dest: spec.dest}
	} else {
		value = &storeValue{node: p, dest: spec.dest}
	}
	fl := p.flags.VarPF(value, spec.name, "", spec.help)
	if !spec.takesValue {
		if spec.constant == "" {
			fl.NoOptDefVal = absenceToken
		} else {
			fl.NoOptDefVal = spec.constant
		}
	}

	group := p.optional
	if spec.required {
		group = p.required
	}
	group.specs = append(group.specs, spec)
	p.order = append(p.order, spec)
	return nil
}

func (p *parserNode) addCommand(f *schema.Field, info *typeInfo) error {
	p.ensureCommandsGroup()
	if existing := p.findCommand(f.Alias); existing != nil {
		return fmt.Errorf("schema %q: command %q declared twice", p.sch.Name, f.Alias)
	}
	description := f.Description
	if description == "" {
		description = info.model.Description
	}
	sub, err := buildNode(info.model, nodeConfig{
		prog:        p.prog + " " + f.Alias,
		description: description,
		addHelp:     p.addHelp,
		logger:      p.logger,
		out:         p.out,
	})
	if err != nil {
		return err
	}
	p.commands = append(p.commands, &commandSpec{field: f, name: f.Alias, help: description, node: sub})
	p.logger.Debug("registered command", "prog", p.prog, "command", f.Alias)
	return nil
}

// ensureCommandsGroup lazily creates the commands group and moves it to the
// front of the help output. Idempotent: later calls return the existing
// group.
func (p *parserNode) ensureCommandsGroup() {
	if p.commandsGroup != nil {
		return
	}
	p.commandsGroup = &argGroup{title: "commands"}
	p.groupOrder = append([]*argGroup{p.commandsGroup}, p.groupOrder...)
}

func (p *parserNode) finalize() {
	p.state = nodeFinalized
}

// parse runs the token engine over this node's slice of the argument vector
// and recurses into the invoked sub-command. It fills p.ns and p.active; the
// reconciler reads them afterwards.
func (p *parserNode) parse(args []string) error {
	if p.state != nodeFinalized {
		return p.usageError("parser is not finalized")
	}
	p.ns = newNamespace()
	p.active = nil
	p.flags.VisitAll(func(fl *pflag.Flag) { fl.Changed = false })

	own, leftovers, cmd, rest := p.splitArgs(args)
	if err := p.flags.Parse(own); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			// help flag disabled, so -h/--help is just an unknown flag
			return p.usageError("unrecognized arguments: --help")
		}
		return &ArgumentError{Prog: p.prog, Msg: err.Error(), Err: err, node: p}
	}
	if p.addHelp && p.flags.Changed("help") {
		fmt.Fprint(p.out, p.renderHelp())
		return ErrHelp
	}
	if p.version != "" && p.flags.Changed("version") {
		fmt.Fprintln(p.out, p.version)
		return ErrVersion
	}
	if len(leftovers) > 0 {
		return p.usageError("unrecognized arguments: %s", strings.Join(leftovers, " "))
	}
	if missing := p.missingRequired(cmd != nil); len(missing) > 0 {
		return p.usageError("the following arguments are required: %s", strings.Join(missing, ", "))
	}
	if cmd != nil {
		p.active = cmd
		p.logger.Debug("dispatching command", "prog", p.prog, "command", cmd.name)
		return cmd.node.parse(rest)
	}
	return nil
}

func (p *parserNode) usageError(format string, a ...any) *ArgumentError {
	return &ArgumentError{Prog: p.prog, Msg: fmt.Sprintf(format, a...), node: p}
}

// missingRequired lists the required arguments absent from the namespace.
// Complementary pairs report once, joined the way the help shows them, and a
// missing sub-command reports as the commands metavar.
func (p *parserNode) missingRequired(commandGiven bool) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, spec := range p.required.specs {
		if p.ns.has(spec.dest) || p.preSatisfied[spec.dest] || seen[spec.dest] {
			continue
		}
		seen[spec.dest] = true
		names := []string{"--" + spec.name}
		for _, other := range p.required.specs {
			if other != spec && other.dest == spec.dest {
				names = append(names, "--"+other.name)
			}
		}
		missing = append(missing, strings.Join(names, "/"))
	}
	if len(p.commands) > 0 && !commandGiven {
		missing = append(missing, p.commandsMetavar())
	}
	return missing
}

func (p *parserNode) commandsMetavar() string {
	names := make([]string, len(p.commands))
	for i, c := range p.commands {
		names[i] = c.name
	}
	return "{" + strings.Join(names, ",") + "}"
}

// Parser converts argument vectors into typed values according to a schema.
// It is built once and is not safe for concurrent use: one Parse call at a
// time.
type Parser struct {
	sch      *schema.Schema
	opts     options
	node     *parserNode
	validate *validator.Validate
	envKeys  map[string]string
	envLayer map[string]schema.Value
}

// New compiles the schema into a parser graph. All schema-authoring errors
// surface here, never at parse time.
func New(sch *schema.Schema, opts ...Option) (*Parser, error) {
	if sch == nil {
		return nil, errors.New("typedargs: schema is nil")
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.prog == "" {
		o.prog = filepath.Base(os.Args[0])
	}
	description := o.description
	if description == "" {
		description = sch.Description
	}
	node, err := buildNode(sch, nodeConfig{
		prog:        o.prog,
		description: description,
		epilog:      o.epilog,
		addHelp:     o.addHelp,
		version:     o.version,
		logger:      o.logger,
		out:         o.out,
	})
	if err != nil {
		return nil, err
	}
	p := &Parser{sch: sch, opts: o, node: node, validate: validator.New()}
	if o.envEnabled {
		p.envKeys = make(map[string]string)
		for _, f := range sch.Fields {
			if node.infos[f.Name].class == classNestedCommand {
				continue
			}
			name := o.envPrefix + strings.ToUpper(f.Name)
			p.envKeys[name] = f.Name
			p.envKeys[strings.ToUpper(f.Name)] = f.Name
		}
	}
	return p, nil
}

// Parse reads the argument vector (os.Args[1:] when args is nil) and fills
// out, which must be a pointer to a struct. Fields match by name,
// case-insensitively, or by `arg:"name"` tag. On failure the configured exit
// behavior applies: print usage plus the error and exit with status 2, or
// return the error.
func (p *Parser) Parse(args []string, out any) error {
	if out == nil {
		return errors.New("typedargs: out is nil")
	}
	if args == nil {
		args = os.Args[1:]
	}
	p.opts.logger.Debug("parsing command line", "prog", p.opts.prog, "argc", len(args))

	if p.opts.envFile != "" {
		if err := godotenv.Load(p.opts.envFile); err != nil && !os.IsNotExist(err) {
			return p.fail(&ArgumentError{
				Prog: p.opts.prog,
				Msg:  fmt.Sprintf("cannot read env file %s: %v", p.opts.envFile, err),
				Err:  err,
				node: p.node,
			})
		}
	}

	envLayer, err := p.scanEnv()
	if err != nil {
		return p.fail(err)
	}
	p.envLayer = envLayer
	p.node.preSatisfied = make(map[string]bool, len(envLayer))
	for name := range envLayer {
		p.node.preSatisfied[name] = true
	}

	if err := p.node.parse(args); err != nil {
		if errors.Is(err, ErrHelp) || errors.Is(err, ErrVersion) {
			if p.opts.exitOnError {
				os.Exit(0)
			}
			return err
		}
		return p.fail(err)
	}
	if err := p.reconcile(out); err != nil {
		return p.fail(err)
	}
	p.opts.logger.Debug("parse complete", "prog", p.opts.prog)
	return nil
}

// fail routes every failure through the one reporting path: the failing
// node's usage line on the error writer, then either the error line and a
// status-2 exit or a structured return.
func (p *Parser) fail(err error) error {
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		argErr = &ArgumentError{Prog: p.node.prog, Msg: err.Error(), Err: err, node: p.node}
	}
	node := argErr.node
	if node == nil {
		node = p.node
	}
	fmt.Fprintln(p.opts.errOut, node.usageLine())
	if p.opts.exitOnError {
		fmt.Fprintln(p.opts.errOut, argErr.Error())
		os.Exit(exitStatusError)
	}
	return argErr
}
