package entities

// ListingDocument is the structured result of a list operation. Its field
// names and shape are part of the externally observable contract: guests
// receive it serialized as JSON.
type ListingDocument struct {
	// Data holds the page of keys in ascending lexicographic order.
	Data []string `json:"data"`

	// Meta echoes the request parameters and carries the resume cursor.
	Meta ListingMeta `json:"meta"`
}

// ListingMeta is the meta block of a ListingDocument.
type ListingMeta struct {
	Limit uint32 `json:"limit"`

	// Prefix echoes the requested key prefix, if one was supplied.
	Prefix string `json:"prefix,omitempty"`

	// NextCursor is present only when the page was truncated. It is an
	// opaque base64 token wrapping the last key emitted in this page;
	// passing it to a subsequent list resumes strictly after that key.
	NextCursor string `json:"next_cursor,omitempty"`
}

// Truncated reports whether a further page may exist.
func (d ListingDocument) Truncated() bool {
	return d.Meta.NextCursor != ""
}
