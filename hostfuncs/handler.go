package hostfuncs

import (
	"context"
	"encoding/json"
	"fmt"
)

// HostFunc is a typed hostcall implementation: it accepts a decoded request
// and returns a response carrying its own guest status. Failures are
// rendered into the response status, never surfaced as Go errors, so a
// guest always receives a decodable reply.
type HostFunc[Req any, Resp any] func(context.Context, Req) Resp

// ByteHandler is the raw form of a hostcall: JSON request bytes in, JSON
// response bytes out. This is the interface WASM runtimes dispatch through.
type ByteHandler func(context.Context, []byte) ([]byte, error)

// NewJSONHandler wraps a typed HostFunc into a ByteHandler, handling the
// JSON decode of the request and encode of the response. An undecodable
// request renders a bad_request status rather than a Go error.
func NewJSONHandler[Req any, Resp any](fn HostFunc[Req, Resp]) ByteHandler {
	return func(ctx context.Context, payload []byte) ([]byte, error) {
		var req Req
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &req); err != nil {
				return NewBadRequestError(fmt.Sprintf("malformed request: %v", err)).ToJSON(), nil
			}
		}

		resp := fn(ctx, req)

		respBytes, err := json.Marshal(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}
		return respBytes, nil
	}
}
