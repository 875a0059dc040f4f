package entities

// ObjectValue is one stored value. Values are immutable once written; an
// insert against an existing key replaces the whole record.
type ObjectValue struct {
	// Body holds the raw stored bytes.
	Body []byte

	// Metadata holds the optional metadata payload. MetadataLen records the
	// declared length separately so an absent payload (nil, 0) is
	// distinguishable from an empty one.
	Metadata    []byte
	MetadataLen int

	// Generation is an opaque version stamp assigned at write time, used for
	// optimistic-concurrency checks (if-generation-match).
	Generation uint32
}

// Clone returns a deep copy so callers can hold a value outside the
// registry lock without aliasing stored bytes.
func (v ObjectValue) Clone() ObjectValue {
	out := ObjectValue{
		MetadataLen: v.MetadataLen,
		Generation:  v.Generation,
	}
	if v.Body != nil {
		out.Body = append([]byte(nil), v.Body...)
	}
	if v.Metadata != nil {
		out.Metadata = append([]byte(nil), v.Metadata...)
	}
	return out
}
