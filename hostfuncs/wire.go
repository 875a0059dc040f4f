package hostfuncs

import (
	"encoding/json"

	"github.com/edgekv-dev/edgekv/domain/entities"
)

// Wire format for the JSON-framed hostcall ABI. Handles travel as plain
// integers; binary payloads as base64 (encoding/json's []byte rendering).

// OpenRequest asks for a store handle by name.
type OpenRequest struct {
	Store string `json:"store"`
}

// OpenResponse carries the open-store handle.
type OpenResponse struct {
	Status  entities.KvStatus `json:"status"`
	Message string            `json:"message,omitempty"`
	Handle  uint32            `json:"handle,omitempty"`
}

// LookupRequest begins a lookup.
type LookupRequest struct {
	Store uint32 `json:"store"`
	Key   string `json:"key"`
}

// DeleteRequest begins a delete.
type DeleteRequest struct {
	Store uint32 `json:"store"`
	Key   string `json:"key"`
}

// InsertRequest begins an insert.
type InsertRequest struct {
	Store uint32 `json:"store"`
	Key   string `json:"key"`
	Body  []byte `json:"body"`

	// Mode defaults to overwrite when absent.
	Mode entities.InsertMode `json:"mode,omitempty"`

	// IfGenerationMatch makes the insert conditional on the stored value's
	// generation stamp.
	IfGenerationMatch *uint32 `json:"if_generation_match,omitempty"`

	// Metadata, when present, is stored alongside the body.
	Metadata []byte `json:"metadata,omitempty"`
}

// ListRequest begins a listing.
type ListRequest struct {
	Store  uint32 `json:"store"`
	Cursor string `json:"cursor,omitempty"`
	Prefix string `json:"prefix,omitempty"`
	Limit  uint32 `json:"limit"`
}

// PendingResponse carries the pending-operation handle of a begin call.
type PendingResponse struct {
	Status  entities.KvStatus `json:"status"`
	Message string            `json:"message,omitempty"`
	Pending uint32            `json:"pending,omitempty"`
}

// PendingRequest names a pending-operation handle for wait or poll.
type PendingRequest struct {
	Pending uint32 `json:"pending"`
}

// PollResponse reports pending vs ready without consuming the handle.
type PollResponse struct {
	Status  entities.KvStatus `json:"status"`
	Message string            `json:"message,omitempty"`
	State   string            `json:"state,omitempty"`
}

// StatusResponse is the reply of waits and closes that produce no handle.
type StatusResponse struct {
	Status  entities.KvStatus `json:"status"`
	Message string            `json:"message,omitempty"`
}

// LookupWaitResponse carries the lookup-result handle. On a soft
// not-found, Status is not_found and Result is absent.
type LookupWaitResponse struct {
	Status  entities.KvStatus `json:"status"`
	Message string            `json:"message,omitempty"`
	Result  uint32            `json:"result,omitempty"`
}

// ListWaitResponse carries the body handle of the serialized listing.
type ListWaitResponse struct {
	Status  entities.KvStatus `json:"status"`
	Message string            `json:"message,omitempty"`
	Body    uint32            `json:"body,omitempty"`
}

// ResultRequest names a lookup-result handle.
type ResultRequest struct {
	Result uint32 `json:"result"`
}

// ResultBodyResponse carries the re-readable body handle of a result.
type ResultBodyResponse struct {
	Status  entities.KvStatus `json:"status"`
	Message string            `json:"message,omitempty"`
	Body    uint32            `json:"body,omitempty"`
}

// MetadataRequest asks for a result's metadata, declaring the caller's
// buffer capacity.
type MetadataRequest struct {
	Result uint32 `json:"result"`
	MaxLen int    `json:"max_len"`
}

// MetadataResponse moves the metadata out. Present distinguishes "no
// metadata (or already read)" from an empty payload.
type MetadataResponse struct {
	Status  entities.KvStatus `json:"status"`
	Message string            `json:"message,omitempty"`
	Present bool              `json:"present"`
	Data    []byte            `json:"data,omitempty"`
}

// GenerationResponse carries a result's generation stamp.
type GenerationResponse struct {
	Status     entities.KvStatus `json:"status"`
	Message    string            `json:"message,omitempty"`
	Generation uint32            `json:"generation"`
}

// BodyRequest names a body handle.
type BodyRequest struct {
	Body uint32 `json:"body"`
}

// BodyReadResponse carries body contents.
type BodyReadResponse struct {
	Status  entities.KvStatus `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    []byte            `json:"data,omitempty"`
}

// marshalListing renders the listing document in its external JSON shape.
func marshalListing(doc entities.ListingDocument) ([]byte, error) {
	return json.Marshal(doc)
}
