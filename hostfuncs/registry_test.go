package hostfuncs

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgekv-dev/edgekv/domain/entities"
)

func TestNewRegistry_Empty(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	require.NotNil(t, reg)
	assert.Empty(t, reg.Names())
}

func TestNewRegistry_WithByteHandler(t *testing.T) {
	echoHandler := func(ctx context.Context, payload []byte) ([]byte, error) {
		return payload, nil
	}

	reg, err := NewRegistry(
		WithByteHandler("echo", echoHandler),
	)
	require.NoError(t, err)

	assert.True(t, reg.Has("echo"))
	assert.False(t, reg.Has("nonexistent"))
	assert.Equal(t, []string{"echo"}, reg.Names())
}

func TestNewRegistry_DuplicateHandler(t *testing.T) {
	handler := func(ctx context.Context, payload []byte) ([]byte, error) {
		return nil, nil
	}

	_, err := NewRegistry(
		WithByteHandler("test", handler),
		WithByteHandler("test", handler), // duplicate
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate hostcall name")
}

func TestNewRegistry_EmptyName(t *testing.T) {
	handler := func(ctx context.Context, payload []byte) ([]byte, error) {
		return nil, nil
	}

	_, err := NewRegistry(
		WithByteHandler("", handler),
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestHandlerRegistry_Invoke(t *testing.T) {
	echoHandler := func(ctx context.Context, payload []byte) ([]byte, error) {
		return append([]byte("echo:"), payload...), nil
	}

	reg, err := NewRegistry(
		WithByteHandler("echo", echoHandler),
	)
	require.NoError(t, err)

	t.Run("found handler", func(t *testing.T) {
		resp, err := reg.Invoke(context.Background(), "echo", []byte("hello"))
		require.NoError(t, err)
		assert.Equal(t, "echo:hello", string(resp))
	})

	t.Run("unknown operation replies with status", func(t *testing.T) {
		resp, err := reg.Invoke(context.Background(), "unknown", []byte("test"))
		require.NoError(t, err)

		var errResp ErrorResponse
		require.NoError(t, json.Unmarshal(resp, &errResp))
		assert.Equal(t, entities.KvStatusBadRequest, errResp.Status)
		assert.Contains(t, errResp.Message, "unknown")
	})
}

func TestHandlerRegistry_MiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next ByteHandler) ByteHandler {
			return func(ctx context.Context, payload []byte) ([]byte, error) {
				order = append(order, name)
				return next(ctx, payload)
			}
		}
	}

	reg, err := NewRegistry(
		WithMiddleware(tag("first"), tag("second")),
		WithByteHandler("noop", func(ctx context.Context, payload []byte) ([]byte, error) {
			order = append(order, "handler")
			return nil, nil
		}),
	)
	require.NoError(t, err)

	_, err = reg.Invoke(context.Background(), "noop", nil)
	require.NoError(t, err)

	// FIFO: the first registered middleware runs outermost.
	assert.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestPanicRecoveryMiddleware(t *testing.T) {
	reg, err := NewRegistry(
		WithMiddleware(PanicRecoveryMiddleware()),
		WithByteHandler("boom", func(ctx context.Context, payload []byte) ([]byte, error) {
			panic("handler exploded")
		}),
	)
	require.NoError(t, err)

	resp, err := reg.Invoke(context.Background(), "boom", nil)
	require.NoError(t, err)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(resp, &errResp))
	assert.Equal(t, entities.KvStatusInternalError, errResp.Status)
	assert.Contains(t, errResp.Message, "handler exploded")
}

func TestNewJSONHandler_MalformedRequest(t *testing.T) {
	type req struct {
		N int `json:"n"`
	}
	handler := NewJSONHandler(func(ctx context.Context, r req) StatusResponse {
		return StatusResponse{Status: entities.KvStatusOk}
	})

	resp, err := handler(context.Background(), []byte("{not json"))
	require.NoError(t, err)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(resp, &errResp))
	assert.Equal(t, entities.KvStatusBadRequest, errResp.Status)
	assert.Contains(t, errResp.Message, "malformed request")
}

func TestHostContext(t *testing.T) {
	ctx := NewHostContext(context.Background(), "lookup")
	assert.Equal(t, "lookup", ctx.Operation())

	// Re-wrapping preserves the original operation.
	again := HostContextFrom(ctx, "other")
	assert.Equal(t, "lookup", again.Operation())
}
