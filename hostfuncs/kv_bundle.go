package hostfuncs

import (
	"context"

	"github.com/edgekv-dev/edgekv/domain/entities"
	"github.com/edgekv-dev/edgekv/domain/ports"
	"github.com/edgekv-dev/edgekv/handles"
	"github.com/edgekv-dev/edgekv/task"
)

// Operation names of the KV hostcall surface. Stable for ABI
// compatibility; guests bind to these names.
const (
	OpOpen             = "open"
	OpLookup           = "lookup"
	OpLookupWait       = "lookup_wait"
	OpLookupPoll       = "lookup_poll"
	OpInsert           = "insert"
	OpInsertWait       = "insert_wait"
	OpInsertPoll       = "insert_poll"
	OpDelete           = "delete"
	OpDeleteWait       = "delete_wait"
	OpDeletePoll       = "delete_poll"
	OpList             = "list"
	OpListWait         = "list_wait"
	OpListPoll         = "list_poll"
	OpResultBody       = "result.body"
	OpResultMetadata   = "result.metadata"
	OpResultGeneration = "result.generation"
	OpResultClose      = "result.close"
	OpBodyRead         = "body.read"
	OpBodyClose        = "body.close"
)

type staticBundle struct {
	handlers map[string]ByteHandler
}

func (b *staticBundle) Handlers() map[string]ByteHandler {
	return b.handlers
}

// KvBundle exposes a Kv façade as named JSON hostcalls. Errors never cross
// the bundle boundary as Go errors: every outcome is rendered into the
// response status.
func KvBundle(kv *Kv) HostFuncBundle {
	return &staticBundle{handlers: map[string]ByteHandler{
		OpOpen: NewJSONHandler(func(_ context.Context, req OpenRequest) OpenResponse {
			h, err := kv.Open(req.Store)
			if err != nil {
				return OpenResponse{Status: statusOf(err), Message: err.Error()}
			}
			return OpenResponse{Status: entities.KvStatusOk, Handle: uint32(h)}
		}),

		OpLookup: NewJSONHandler(func(_ context.Context, req LookupRequest) PendingResponse {
			h, err := kv.Lookup(handles.Handle(req.Store), req.Key)
			return pendingResponse(h, err)
		}),
		OpLookupWait: NewJSONHandler(func(ctx context.Context, req PendingRequest) LookupWaitResponse {
			res, status, err := kv.LookupWait(ctx, handles.Handle(req.Pending))
			if err != nil {
				return LookupWaitResponse{Status: statusOf(err), Message: err.Error()}
			}
			return LookupWaitResponse{Status: status, Result: uint32(res)}
		}),
		OpLookupPoll: NewJSONHandler(func(_ context.Context, req PendingRequest) PollResponse {
			return pollResponse(kv.LookupPoll(handles.Handle(req.Pending)))
		}),

		OpInsert: NewJSONHandler(func(_ context.Context, req InsertRequest) PendingResponse {
			h, err := kv.Insert(handles.Handle(req.Store), req.Key, req.Body, ports.InsertOptions{
				Mode:               req.Mode,
				ExpectedGeneration: req.IfGenerationMatch,
				Metadata:           req.Metadata,
			})
			return pendingResponse(h, err)
		}),
		OpInsertWait: NewJSONHandler(func(ctx context.Context, req PendingRequest) StatusResponse {
			status, err := kv.InsertWait(ctx, handles.Handle(req.Pending))
			return statusResponse(status, err)
		}),
		OpInsertPoll: NewJSONHandler(func(_ context.Context, req PendingRequest) PollResponse {
			return pollResponse(kv.InsertPoll(handles.Handle(req.Pending)))
		}),

		OpDelete: NewJSONHandler(func(_ context.Context, req DeleteRequest) PendingResponse {
			h, err := kv.Delete(handles.Handle(req.Store), req.Key)
			return pendingResponse(h, err)
		}),
		OpDeleteWait: NewJSONHandler(func(ctx context.Context, req PendingRequest) StatusResponse {
			status, err := kv.DeleteWait(ctx, handles.Handle(req.Pending))
			return statusResponse(status, err)
		}),
		OpDeletePoll: NewJSONHandler(func(_ context.Context, req PendingRequest) PollResponse {
			return pollResponse(kv.DeletePoll(handles.Handle(req.Pending)))
		}),

		OpList: NewJSONHandler(func(_ context.Context, req ListRequest) PendingResponse {
			h, err := kv.List(handles.Handle(req.Store), ports.ListOptions{
				Cursor: req.Cursor,
				Prefix: req.Prefix,
				Limit:  req.Limit,
			})
			return pendingResponse(h, err)
		}),
		OpListWait: NewJSONHandler(func(ctx context.Context, req PendingRequest) ListWaitResponse {
			body, status, err := kv.ListWait(ctx, handles.Handle(req.Pending))
			if err != nil {
				return ListWaitResponse{Status: statusOf(err), Message: err.Error()}
			}
			return ListWaitResponse{Status: status, Body: uint32(body)}
		}),
		OpListPoll: NewJSONHandler(func(_ context.Context, req PendingRequest) PollResponse {
			return pollResponse(kv.ListPoll(handles.Handle(req.Pending)))
		}),

		OpResultBody: NewJSONHandler(func(_ context.Context, req ResultRequest) ResultBodyResponse {
			body, err := kv.ResultBody(handles.Handle(req.Result))
			if err != nil {
				return ResultBodyResponse{Status: statusOf(err), Message: err.Error()}
			}
			return ResultBodyResponse{Status: entities.KvStatusOk, Body: uint32(body)}
		}),
		OpResultMetadata: NewJSONHandler(func(_ context.Context, req MetadataRequest) MetadataResponse {
			md, err := kv.ResultMetadata(handles.Handle(req.Result), req.MaxLen)
			if err != nil {
				return MetadataResponse{Status: statusOf(err), Message: err.Error()}
			}
			return MetadataResponse{Status: entities.KvStatusOk, Present: md != nil, Data: md}
		}),
		OpResultGeneration: NewJSONHandler(func(_ context.Context, req ResultRequest) GenerationResponse {
			gen, err := kv.ResultGeneration(handles.Handle(req.Result))
			if err != nil {
				return GenerationResponse{Status: statusOf(err), Message: err.Error()}
			}
			return GenerationResponse{Status: entities.KvStatusOk, Generation: gen}
		}),
		OpResultClose: NewJSONHandler(func(_ context.Context, req ResultRequest) StatusResponse {
			if err := kv.CloseResult(handles.Handle(req.Result)); err != nil {
				return StatusResponse{Status: statusOf(err), Message: err.Error()}
			}
			return StatusResponse{Status: entities.KvStatusOk}
		}),

		OpBodyRead: NewJSONHandler(func(_ context.Context, req BodyRequest) BodyReadResponse {
			data, err := kv.BodyBytes(handles.Handle(req.Body))
			if err != nil {
				return BodyReadResponse{Status: statusOf(err), Message: err.Error()}
			}
			return BodyReadResponse{Status: entities.KvStatusOk, Data: data}
		}),
		OpBodyClose: NewJSONHandler(func(_ context.Context, req BodyRequest) StatusResponse {
			if err := kv.CloseBody(handles.Handle(req.Body)); err != nil {
				return StatusResponse{Status: statusOf(err), Message: err.Error()}
			}
			return StatusResponse{Status: entities.KvStatusOk}
		}),
	}}
}

func pendingResponse(h handles.Handle, err error) PendingResponse {
	if err != nil {
		return PendingResponse{Status: statusOf(err), Message: err.Error()}
	}
	return PendingResponse{Status: entities.KvStatusOk, Pending: uint32(h)}
}

func statusResponse(status entities.KvStatus, err error) StatusResponse {
	if err != nil {
		// Handle misuse outranks the façade's status so guests see it as
		// their own error rather than a host fault.
		return StatusResponse{Status: statusOf(err), Message: err.Error()}
	}
	return StatusResponse{Status: status}
}

func pollResponse(state task.State, err error) PollResponse {
	if err != nil {
		return PollResponse{Status: statusOf(err), Message: err.Error()}
	}
	s := "pending"
	if state == task.Ready {
		s = "ready"
	}
	return PollResponse{Status: entities.KvStatusOk, State: s}
}
