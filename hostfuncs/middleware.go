package hostfuncs

import (
	"context"
	"log/slog"
)

// Middleware wraps a ByteHandler to add cross-cutting behavior. Middleware
// executes in FIFO order: the first registered wraps outermost.
type Middleware func(next ByteHandler) ByteHandler

// RegistryOption is a functional option for configuring a HandlerRegistry.
type RegistryOption func(*registryBuilder)

// PanicRecoveryMiddleware catches panics in hostcall handlers and converts
// them to an internal_error reply instead of crashing the host. Note that
// a panic inside the store registry has already poisoned it by the time
// recovery runs here; later registry calls keep failing.
func PanicRecoveryMiddleware() Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) (resp []byte, err error) {
			defer func() {
				if r := recover(); r != nil {
					resp = NewPanicError(r).ToJSON()
					err = nil
				}
			}()
			return next(ctx, payload)
		}
	}
}

// LoggingMiddleware logs each hostcall invocation through the given
// structured logger.
func LoggingMiddleware(log *slog.Logger) Middleware {
	return func(next ByteHandler) ByteHandler {
		return func(ctx context.Context, payload []byte) ([]byte, error) {
			name := "unknown"
			if hc, ok := ctx.(HostContext); ok {
				name = hc.Operation()
			}
			resp, err := next(ctx, payload)
			if err != nil {
				log.Error("hostcall failed", "op", name, "error", err)
			} else {
				log.Debug("hostcall completed", "op", name, "request_bytes", len(payload), "response_bytes", len(resp))
			}
			return resp, err
		}
	}
}
