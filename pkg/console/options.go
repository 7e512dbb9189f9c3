package console

import (
	"log/slog"

	"github.com/aretw0/zconv/internal/logging"
	"github.com/aretw0/zconv/pkg/ports"
)

type options struct {
	logger     *slog.Logger
	observer   ports.Observer
	staleGuard bool
}

// Option configures a component.
type Option func(*options)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithObserver receives discarded-response counts.
func WithObserver(obs ports.Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithStaleGuard toggles discarding of out-of-order responses (default: enabled).
// Disabling it lets whichever response resolves last win.
func WithStaleGuard(enabled bool) Option {
	return func(o *options) {
		o.staleGuard = enabled
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:     logging.NewNop(),
		observer:   ports.NopObserver{},
		staleGuard: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
