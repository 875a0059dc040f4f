package hostfuncs

import (
	"context"
	"fmt"
	"sort"
)

// HandlerRegistry is an immutable collection of named hostcalls. Once
// built via NewRegistry, handlers cannot be added or removed, so dispatch
// is lock-free.
type HandlerRegistry struct {
	handlers   map[string]ByteHandler
	names      []string // sorted for consistent iteration
	middleware []Middleware
}

// registryBuilder accumulates configuration during registry construction.
type registryBuilder struct {
	handlers   map[string]ByteHandler
	middleware []Middleware
	errors     []error
}

// NewRegistry builds an immutable HandlerRegistry. Registering two
// handlers under the same operation name is an error.
//
//	registry, err := hostfuncs.NewRegistry(
//	    hostfuncs.WithMiddleware(hostfuncs.PanicRecoveryMiddleware()),
//	    hostfuncs.WithBundle(hostfuncs.KvBundle(kv)),
//	)
func NewRegistry(opts ...RegistryOption) (*HandlerRegistry, error) {
	b := &registryBuilder{handlers: make(map[string]ByteHandler)}
	for _, opt := range opts {
		opt(b)
	}
	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	names := make([]string, 0, len(b.handlers))
	for name := range b.handlers {
		names = append(names, name)
	}
	sort.Strings(names)

	// Middleware wraps in FIFO order: the first registered runs outermost.
	wrapped := make(map[string]ByteHandler, len(b.handlers))
	for name, handler := range b.handlers {
		h := handler
		for i := len(b.middleware) - 1; i >= 0; i-- {
			h = b.middleware[i](h)
		}
		wrapped[name] = h
	}

	return &HandlerRegistry{
		handlers:   wrapped,
		names:      names,
		middleware: b.middleware,
	}, nil
}

// Invoke dispatches a hostcall by operation name. An unknown name renders
// an ErrorResponse reply rather than a Go error, so guests always receive
// a decodable status.
func (r *HandlerRegistry) Invoke(ctx context.Context, name string, payload []byte) ([]byte, error) {
	handler, ok := r.handlers[name]
	if !ok {
		return NewUnknownOperationError(name).ToJSON(), nil
	}
	return handler(HostContextFrom(ctx, name), payload)
}

// Has reports whether an operation with the given name is registered.
func (r *HandlerRegistry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Names returns a sorted list of all registered operation names.
func (r *HandlerRegistry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

func (b *registryBuilder) addHandler(name string, handler ByteHandler) error {
	if name == "" {
		return fmt.Errorf("hostcall name cannot be empty")
	}
	if _, exists := b.handlers[name]; exists {
		return fmt.Errorf("duplicate hostcall name: %q", name)
	}
	b.handlers[name] = handler
	return nil
}

// WithByteHandler registers a raw ByteHandler under the given name.
func WithByteHandler(name string, handler ByteHandler) RegistryOption {
	return func(b *registryBuilder) {
		if err := b.addHandler(name, handler); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithHandler registers a typed hostcall with automatic JSON framing.
func WithHandler[Req any, Resp any](name string, fn HostFunc[Req, Resp]) RegistryOption {
	return WithByteHandler(name, NewJSONHandler(fn))
}

// WithMiddleware appends middleware to the chain applied to every handler.
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}

// HostFuncBundle groups the handlers of one hostcall namespace.
type HostFuncBundle interface {
	// Handlers returns operation names mapped to their implementations.
	Handlers() map[string]ByteHandler
}

// WithBundle registers every handler of a bundle.
func WithBundle(bundle HostFuncBundle) RegistryOption {
	return func(b *registryBuilder) {
		for name, handler := range bundle.Handlers() {
			if err := b.addHandler(name, handler); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}
