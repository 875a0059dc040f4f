// Package errors provides the layered error taxonomy for the KV store
// emulation. Errors cross three boundaries - key validation, the store
// registry, and the guest-facing hostcall surface - and every conversion
// between layers is total, so no error kind is silently dropped on the way
// to a guest status code.
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/edgekv-dev/edgekv/domain/entities"
)

// Store registry layer errors.
var (
	// ErrMissingObject reports that a key was absent from a store. The
	// hostcall surface downgrades this to a soft not-found status for
	// lookup and list, but it stays a hard error for delete.
	ErrMissingObject = stdErrors.New("the object was not in the store")

	// ErrPoisonedLock reports that a failure corrupted the registry lock.
	// Poisoning is permanent for the process: every registry access after
	// the first poisoning event fails with this error.
	ErrPoisonedLock = stdErrors.New("the store registry lock was poisoned")
)

// UnknownStoreError reports an open against a store name that does not exist.
type UnknownStoreError struct {
	Name string
}

func (e *UnknownStoreError) Error() string {
	return fmt.Sprintf("unknown store: %s", e.Name)
}

// KvError is the store engine's error kind, one variant per guest-visible
// failure class. It implements error so engine operations can return
// variants directly.
type KvError int

const (
	// KvUninitialized is the sentinel meaning "no error has ever been set".
	// It must never be surfaced to a guest as a real outcome.
	KvUninitialized KvError = iota
	// KvOk - there was no error.
	KvOk
	// KvBadRequest - the store cannot or will not process the request due to
	// something perceived to be a client error.
	KvBadRequest
	// KvNotFound - the store cannot find the requested resource.
	KvNotFound
	// KvPreconditionFailed - the store cannot fulfill the request as defined
	// by the client's prerequisites (if-generation-match, add mode).
	KvPreconditionFailed
	// KvPayloadTooLarge - the size limit for a store value was exceeded.
	KvPayloadTooLarge
	// KvInternalError - the system encountered an unexpected internal error.
	KvInternalError
	// KvTooManyRequests - too many requests have been made to the store.
	KvTooManyRequests
)

func (e KvError) Error() string {
	switch e {
	case KvUninitialized:
		return "the error was not set"
	case KvOk:
		return "there was no error"
	case KvBadRequest:
		return "kv store cannot or will not process the request due to a client error"
	case KvNotFound:
		return "kv store cannot find the requested resource"
	case KvPreconditionFailed:
		return "kv store cannot fulfill the request, as defined by the client's prerequisites"
	case KvPayloadTooLarge:
		return "the size limit for a kv store value was exceeded"
	case KvInternalError:
		return "the system encountered an unexpected internal error"
	case KvTooManyRequests:
		return "too many requests have been made to the kv store"
	default:
		return fmt.Sprintf("kv error %d", int(e))
	}
}

// Status maps a KvError onto the fixed guest status code set. The mapping
// is total. KvUninitialized indicates a host bug rather than a guest
// outcome; it renders as an internal error rather than leaking the sentinel.
func (e KvError) Status() entities.KvStatus {
	switch e {
	case KvOk:
		return entities.KvStatusOk
	case KvBadRequest:
		return entities.KvStatusBadRequest
	case KvNotFound:
		return entities.KvStatusNotFound
	case KvPreconditionFailed:
		return entities.KvStatusPreconditionFailed
	case KvPayloadTooLarge:
		return entities.KvStatusPayloadTooLarge
	case KvTooManyRequests:
		return entities.KvStatusTooManyRequests
	case KvUninitialized, KvInternalError:
		return entities.KvStatusInternalError
	default:
		return entities.KvStatusInternalError
	}
}

// StoreError converts a KvError back to a store registry layer error.
// Only KvNotFound has a real counterpart; everything else collapses to an
// unknown-store error, mirroring what the production service reports.
func (e KvError) StoreError() error {
	if e == KvNotFound {
		return ErrMissingObject
	}
	return &UnknownStoreError{}
}

// StatusOf maps any error from the validation, store, or engine layers onto
// a guest status code. The mapping is total: unrecognized errors render as
// internal errors rather than being dropped.
func StatusOf(err error) entities.KvStatus {
	if err == nil {
		return entities.KvStatusOk
	}

	var kv KvError
	if stdErrors.As(err, &kv) {
		return kv.Status()
	}

	var keyErr *entities.KeyValidationError
	if stdErrors.As(err, &keyErr) {
		return entities.KvStatusBadRequest
	}

	var unknown *UnknownStoreError
	if stdErrors.As(err, &unknown) {
		return entities.KvStatusBadRequest
	}

	var buf *BufferLengthError
	if stdErrors.As(err, &buf) {
		return entities.KvStatusBadRequest
	}

	switch {
	case stdErrors.Is(err, ErrMissingObject):
		return entities.KvStatusNotFound
	case stdErrors.Is(err, ErrPoisonedLock):
		return entities.KvStatusInternalError
	}

	return entities.KvStatusInternalError
}

// BufferLengthError reports a caller-declared buffer capacity smaller than
// the payload it was meant to receive. Needed carries the actual length so
// the caller can retry with a large enough buffer.
type BufferLengthError struct {
	Needed int
}

func (e *BufferLengthError) Error() string {
	return fmt.Sprintf("buffer too small, %d bytes needed", e.Needed)
}
