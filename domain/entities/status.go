package entities

import "fmt"

// KvStatus is the fixed set of status codes rendered to a guest. Every
// host-side error kind maps onto exactly one of these; the mapping lives in
// domain/errors and must stay total.
type KvStatus int

const (
	// KvStatusOk - the operation succeeded.
	KvStatusOk KvStatus = iota
	// KvStatusBadRequest - the request was malformed (invalid key, bad cursor).
	KvStatusBadRequest
	// KvStatusNotFound - the store or key was absent.
	KvStatusNotFound
	// KvStatusPreconditionFailed - a generation check or add-mode conflict failed.
	KvStatusPreconditionFailed
	// KvStatusPayloadTooLarge - the value exceeded a size limit.
	KvStatusPayloadTooLarge
	// KvStatusTooManyRequests - the backing store applied rate limiting.
	KvStatusTooManyRequests
	// KvStatusInternalError - an unexpected host-side failure.
	KvStatusInternalError
)

func (s KvStatus) String() string {
	switch s {
	case KvStatusOk:
		return "ok"
	case KvStatusBadRequest:
		return "bad_request"
	case KvStatusNotFound:
		return "not_found"
	case KvStatusPreconditionFailed:
		return "precondition_failed"
	case KvStatusPayloadTooLarge:
		return "payload_too_large"
	case KvStatusTooManyRequests:
		return "too_many_requests"
	case KvStatusInternalError:
		return "internal_error"
	default:
		return fmt.Sprintf("KvStatus(%d)", int(s))
	}
}

// MarshalText implements encoding.TextMarshaler for the JSON wire format.
func (s KvStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *KvStatus) UnmarshalText(text []byte) error {
	for _, c := range []KvStatus{
		KvStatusOk, KvStatusBadRequest, KvStatusNotFound,
		KvStatusPreconditionFailed, KvStatusPayloadTooLarge,
		KvStatusTooManyRequests, KvStatusInternalError,
	} {
		if c.String() == string(text) {
			*s = c
			return nil
		}
	}
	return fmt.Errorf("unknown kv status %q", string(text))
}
