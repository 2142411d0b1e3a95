package cpu

// Options controls optional behavior of the processor.
type Options struct {
	// StrictOpcodes makes unknown opcodes stop the run with an IllegalOpcodeError
	// instead of logging them and continuing at the next byte.
	StrictOpcodes bool

	// Trace logs every executed instruction at debug level.
	Trace bool
}

// Option configures the processor.
type Option func(*Options)

// WithStrictOpcodes enables failing on unknown opcodes.
func WithStrictOpcodes() Option {
	return func(o *Options) {
		o.StrictOpcodes = true
	}
}

// WithTrace enables instruction tracing.
func WithTrace() Option {
	return func(o *Options) {
		o.Trace = true
	}
}

// WithOptions applies a complete options set.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		*o = opts
	}
}
