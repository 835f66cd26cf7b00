package dataset

import "log/slog"

type options struct {
	logger *slog.Logger
}

// Option configures a Dataset.
type Option func(*options)

// WithLogger configures the logger used for load and derivation events.
// If nil is passed, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func applyOptions(optFns []Option) options {
	o := options{}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}
