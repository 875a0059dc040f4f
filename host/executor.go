package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/edgekv-dev/edgekv/adapt"
	"github.com/edgekv-dev/edgekv/domain/ports"
	"github.com/edgekv-dev/edgekv/hostfuncs"
	"github.com/edgekv-dev/edgekv/session"
	"github.com/edgekv-dev/edgekv/store"
)

// HostModule is the import namespace guests bind KV hostcalls under.
const HostModule = "edgekv_host"

// Executor manages the lifecycle of one guest session: a wazero runtime
// with WASI, the session's hostcall surface, and the shared store registry
// behind it.
type Executor struct {
	runtime  wazero.Runtime
	backend  ports.ObjectBackend
	sess     *session.Session
	hostcall *hostfuncs.HandlerRegistry
	log      *slog.Logger
}

// NewExecutor creates an executor with the given options. When no backend
// is supplied, a fresh in-memory registry is created; tests sharing stores
// across sessions pass the same backend to every executor.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}

	if e.backend == nil {
		e.backend = store.NewRegistry()
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	e.sess = session.New(e.backend)

	if e.hostcall == nil {
		kv := hostfuncs.NewKv(e.sess)
		reg, err := hostfuncs.NewRegistry(
			hostfuncs.WithMiddleware(
				hostfuncs.PanicRecoveryMiddleware(),
				hostfuncs.LoggingMiddleware(e.log.With("session", e.sess.ID())),
			),
			hostfuncs.WithBundle(hostfuncs.KvBundle(kv)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to build hostcall registry: %w", err)
		}
		e.hostcall = reg
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	if err := e.registerHostModule(ctx); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host module: %w", err)
	}

	return e, nil
}

// Session returns the executor's guest session.
func (e *Executor) Session() *session.Session {
	return e.sess
}

// Backend returns the store registry behind this executor.
func (e *Executor) Backend() ports.ObjectBackend {
	return e.backend
}

// Close releases the runtime and everything instantiated in it. The
// session's handle tables die with the executor; pending handles a guest
// abandoned without waiting are reclaimed here.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// GuestInstance is an instantiated guest module.
type GuestInstance struct {
	module api.Module
}

// LoadModule instantiates a guest module. Component artifacts are not
// directly executable here; callers hold the core module and run the
// adaptation step separately when packaging for the platform.
func (e *Executor) LoadModule(ctx context.Context, wasmBytes []byte) (*GuestInstance, error) {
	if adapt.IsComponent(wasmBytes) {
		return nil, fmt.Errorf("component artifacts cannot be instantiated; load the core module")
	}

	mod, err := e.runtime.Instantiate(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(ctx); err != nil {
			return nil, fmt.Errorf("failed to call _initialize: %w", err)
		}
	}

	return &GuestInstance{module: mod}, nil
}
