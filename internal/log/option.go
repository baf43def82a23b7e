package log

type options struct {
	verbose bool
	console bool
	goos    string
}

// Option is a functional option for Logger.
type Option func(*options)

// WithVerbose sets verbose mode.
func WithVerbose(verbose bool) Option {
	return func(o *options) {
		o.verbose = verbose
	}
}

// WithConsole switches from JSON lines to the human-readable console encoding.
func WithConsole() Option {
	return func(o *options) {
		o.console = true
	}
}

// WithOS sets the os field attached to every entry. Defaults to the host OS.
func WithOS(goos string) Option {
	return func(o *options) {
		o.goos = goos
	}
}
