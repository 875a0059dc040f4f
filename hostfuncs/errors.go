package hostfuncs

import (
	"encoding/json"
	stdErrors "errors"

	"github.com/edgekv-dev/edgekv/domain/entities"
	"github.com/edgekv-dev/edgekv/domain/errors"
	"github.com/edgekv-dev/edgekv/handles"
	"github.com/edgekv-dev/edgekv/task"
)

// ErrorResponse is the structured reply for a hostcall that failed before
// reaching its operation: an unknown operation name, a malformed request,
// or a recovered panic. Guests receive consistent, parseable errors
// instead of WASM traps.
type ErrorResponse struct {
	// Status is the guest status code, drawn from the same fixed set as
	// operation outcomes.
	Status entities.KvStatus `json:"status"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// ToJSON serializes the ErrorResponse to JSON bytes. Returns nil if
// serialization fails, which cannot happen for this type.
func (e ErrorResponse) ToJSON() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	return data
}

// NewBadRequestError builds a reply for malformed requests.
func NewBadRequestError(message string) ErrorResponse {
	return ErrorResponse{Status: entities.KvStatusBadRequest, Message: message}
}

// NewUnknownOperationError builds a reply for unknown operation names.
func NewUnknownOperationError(name string) ErrorResponse {
	return ErrorResponse{
		Status:  entities.KvStatusBadRequest,
		Message: "unknown hostcall: " + name,
	}
}

// NewInternalError builds a reply for unexpected host-side failures.
func NewInternalError(message string) ErrorResponse {
	return ErrorResponse{Status: entities.KvStatusInternalError, Message: message}
}

// NewPanicError builds a reply for recovered panics.
func NewPanicError(panicValue any) ErrorResponse {
	var msg string
	switch v := panicValue.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	default:
		msg = "panic recovered"
	}
	return ErrorResponse{Status: entities.KvStatusInternalError, Message: "panic: " + msg}
}

// statusOf renders any façade error as a guest status code. Handle misuse
// (unknown, released, or double-waited handles) is a client error; the
// rest defers to the domain taxonomy.
func statusOf(err error) entities.KvStatus {
	var unknown *handles.UnknownHandleError
	if stdErrors.As(err, &unknown) {
		return entities.KvStatusBadRequest
	}
	if stdErrors.Is(err, task.ErrConsumed) {
		return entities.KvStatusBadRequest
	}
	return errors.StatusOf(err)
}
