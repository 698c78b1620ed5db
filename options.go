package typedargs

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

type options struct {
	prog        string
	description string
	epilog      string
	version     string
	addHelp     bool
	exitOnError bool
	envEnabled  bool
	envPrefix   string
	envFile     string
	out         io.Writer
	errOut      io.Writer
	logger      *log.Logger
}

func defaultOptions() options {
	return options{
		addHelp:     true,
		exitOnError: true,
		out:         os.Stdout,
		errOut:      os.Stderr,
		logger:      log.New(io.Discard),
	}
}

// Option configures a Parser.
type Option func(*options)

// WithProg sets the program name shown in usage and error output. It
// defaults to the executable name.
func WithProg(prog string) Option {
	return func(o *options) { o.prog = prog }
}

// WithDescription sets the text shown between the usage line and the
// argument listing. It defaults to the schema description.
func WithDescription(description string) Option {
	return func(o *options) { o.description = description }
}

// WithEpilog sets the text shown after the argument listing.
func WithEpilog(epilog string) Option {
	return func(o *options) { o.epilog = epilog }
}

// WithVersion enables the -v/--version flag printing the given string.
func WithVersion(version string) Option {
	return func(o *options) { o.version = version }
}

// WithAddHelp toggles the -h/--help flag. Enabled by default.
func WithAddHelp(enabled bool) Option {
	return func(o *options) { o.addHelp = enabled }
}

// WithExitOnError toggles process termination on failure. When enabled (the
// default), a parse or validation failure prints usage plus an error line
// and exits with status 2, and help/version exit with status 0. When
// disabled the same conditions return errors instead.
func WithExitOnError(enabled bool) Option {
	return func(o *options) { o.exitOnError = enabled }
}

// WithEnvPrefix enables the environment overlay: each top-level field may be
// supplied through the variable prefix + upper-cased field name, applied
// between defaults and command-line values. An empty value clears the field
// to its absence sentinel. The prefix may be empty.
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envEnabled = true
		o.envPrefix = prefix
	}
}

// WithEnvFile loads a dotenv file into the process environment at parse
// time. Variables already set keep their values. Implies nothing unless the
// environment overlay is enabled.
func WithEnvFile(path string) Option {
	return func(o *options) { o.envFile = path }
}

// WithLogger sets the debug logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithOutput sets the writer for help and version text. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.out = w
		}
	}
}

// WithErrOutput sets the writer for usage and error text. Defaults to
// stderr.
func WithErrOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.errOut = w
		}
	}
}
