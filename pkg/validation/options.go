package validation

// DefaultSoftVariableLimit is the variable count above which an advisory is
// raised when any variable is ungrouped. Extraction backends enforce a
// per-call field ceiling, so a large ungrouped codebook is an operational
// risk rather than a cosmetic one.
const DefaultSoftVariableLimit = 20

// Option configures a validation pass.
type Option func(*options)

type options struct {
	softVariableLimit int
}

func defaultOptions() options {
	return options{softVariableLimit: DefaultSoftVariableLimit}
}

// WithSoftVariableLimit overrides the soft variable ceiling. Values below one
// are ignored.
func WithSoftVariableLimit(limit int) Option {
	return func(opts *options) {
		if limit > 0 {
			opts.softVariableLimit = limit
		}
	}
}
