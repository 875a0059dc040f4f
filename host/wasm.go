package host

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"github.com/edgekv-dev/edgekv/internal/abi"
)

// registerHostModule exposes every hostcall of the registry as an exported
// function of the edgekv host module. The guest ABI packs a pointer and
// length into one uint64: request bytes in guest memory travel in, JSON
// reply bytes are allocated in the guest and the packed location returned.
func (e *Executor) registerHostModule(ctx context.Context) error {
	builder := e.runtime.NewHostModuleBuilder(HostModule)

	for _, name := range e.hostcall.Names() {
		op := name
		builder.NewFunctionBuilder().
			WithFunc(func(ctx context.Context, m api.Module, packed uint64) uint64 {
				ptr, length := abi.Unpack(packed)
				payload, ok := m.Memory().Read(ptr, length)
				if !ok {
					return 0
				}
				resp, err := e.hostcall.Invoke(ctx, op, payload)
				if err != nil || len(resp) == 0 {
					return 0
				}

				allocate := m.ExportedFunction("allocate")
				if allocate == nil {
					return 0
				}
				results, err := allocate.Call(ctx, uint64(len(resp)))
				if err != nil || len(results) == 0 {
					return 0
				}
				respPtr := uint32(results[0])
				if !m.Memory().Write(respPtr, resp) {
					return 0
				}
				return abi.Pack(respPtr, uint32(len(resp)))
			}).
			Export(op)
	}

	// Guests log through a fire-and-forget export rather than a hostcall.
	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, packed uint64) {
			ptr, length := abi.Unpack(packed)
			payload, ok := m.Memory().Read(ptr, length)
			if !ok {
				return
			}
			e.log.Info("guest log", "session", e.sess.ID(), "msg", string(payload))
		}).
		Export("log_message")

	_, err := builder.Instantiate(ctx)
	return err
}

// Invoke calls an exported guest function with the packed ptr/len ABI and
// returns the reply bytes, if any.
func (g *GuestInstance) Invoke(ctx context.Context, export string, input []byte) ([]byte, error) {
	f := g.module.ExportedFunction(export)
	if f == nil {
		return nil, fmt.Errorf("export %q not found", export)
	}

	var results []uint64
	var err error
	if len(input) == 0 {
		results, err = f.Call(ctx)
	} else {
		allocate := g.module.ExportedFunction("allocate")
		if allocate == nil {
			return nil, fmt.Errorf("guest does not export 'allocate'")
		}
		allocRes, allocErr := allocate.Call(ctx, uint64(len(input)))
		if allocErr != nil {
			return nil, fmt.Errorf("failed to allocate in guest: %w", allocErr)
		}
		if len(allocRes) == 0 {
			return nil, fmt.Errorf("allocate returned no results")
		}
		ptr := uint32(allocRes[0])
		if !g.module.Memory().Write(ptr, input) {
			return nil, fmt.Errorf("failed to write input to guest memory")
		}
		results, err = f.Call(ctx, uint64(ptr), uint64(len(input)))
	}
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	packed := results[0]
	if abi.IsEmpty(packed) {
		return nil, nil
	}
	ptr, length := abi.Unpack(packed)
	data, ok := g.module.Memory().Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("failed to read reply from guest memory")
	}
	out := make([]byte, length)
	copy(out, data)
	return out, nil
}
