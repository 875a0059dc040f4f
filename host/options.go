package host

import (
	"log/slog"

	"github.com/edgekv-dev/edgekv/domain/ports"
	"github.com/edgekv-dev/edgekv/hostfuncs"
)

// Option defines a functional option for configuring the Executor.
type Option func(*Executor)

// WithBackend shares an existing store registry with this executor's
// session. All sessions over the same backend observe the same stores.
func WithBackend(backend ports.ObjectBackend) Option {
	return func(e *Executor) {
		e.backend = backend
	}
}

// WithHostcalls overrides the default hostcall registry.
func WithHostcalls(registry *hostfuncs.HandlerRegistry) Option {
	return func(e *Executor) {
		e.hostcall = registry
	}
}

// WithLogger sets the structured logger for hostcall logging.
func WithLogger(log *slog.Logger) Option {
	return func(e *Executor) {
		e.log = log
	}
}
