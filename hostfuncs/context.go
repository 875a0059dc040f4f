package hostfuncs

import (
	"context"
)

// HostContext wraps a context.Context with hostcall-specific accessors,
// giving middleware the invoked operation name without threading extra
// arguments through every handler.
type HostContext interface {
	context.Context

	// Operation returns the name of the hostcall being invoked.
	Operation() string
}

type hostContext struct {
	context.Context
	op string
}

// NewHostContext wraps ctx with the operation name.
func NewHostContext(ctx context.Context, op string) HostContext {
	return &hostContext{Context: ctx, op: op}
}

func (c *hostContext) Operation() string {
	return c.op
}

// HostContextFrom returns ctx unchanged when it already is a HostContext,
// otherwise wraps it with the operation name.
func HostContextFrom(ctx context.Context, op string) HostContext {
	if hc, ok := ctx.(HostContext); ok {
		return hc
	}
	return NewHostContext(ctx, op)
}
