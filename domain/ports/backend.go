package ports

import (
	"github.com/edgekv-dev/edgekv/domain/entities"
)

// InsertOptions carries the optional parameters of an insert.
type InsertOptions struct {
	// Mode selects the conflict policy. The zero value is InsertOverwrite.
	Mode entities.InsertMode

	// ExpectedGeneration, when non-nil, makes the insert conditional: if an
	// existing value's generation differs, the insert fails with a
	// precondition error before any mode logic runs.
	ExpectedGeneration *uint32

	// Metadata replaces the stored metadata when non-nil. When nil, the new
	// value is written with its metadata cleared.
	Metadata []byte
}

// ListOptions carries the optional parameters of a list.
type ListOptions struct {
	// Cursor is an opaque resume token from a previous page's next_cursor.
	// Empty means start from the beginning.
	Cursor string

	// Prefix filters the listing to keys with this prefix. Empty matches
	// every key.
	Prefix string

	// Limit caps the number of keys in the page.
	Limit uint32
}

// ObjectBackend is the pluggable backing store behind the hostcall surface.
//
// All implementations must be safe for concurrent use: any number of
// lookups and listings may proceed together, while a mutation excludes all
// other access for its duration. Implementations report failures using the
// domain/errors taxonomy so the hostcall surface can render guest status
// codes without knowing the backend.
type ObjectBackend interface {
	// StoreExists reports whether a store with the given name exists.
	StoreExists(name string) (bool, error)

	// CreateStore creates an empty store. Creation is idempotent: creating
	// an existing store is a no-op, never an error.
	CreateStore(store entities.StoreKey) error

	// Lookup returns the value stored under key, or ErrMissingObject.
	Lookup(store entities.StoreKey, key entities.ObjectKey) (entities.ObjectValue, error)

	// Insert writes body under key subject to opts.
	Insert(store entities.StoreKey, key entities.ObjectKey, body []byte, opts InsertOptions) error

	// Delete removes key from the store, or fails with KvNotFound.
	Delete(store entities.StoreKey, key entities.ObjectKey) error

	// List returns one page of keys in ascending lexicographic order.
	List(store entities.StoreKey, opts ListOptions) (entities.ListingDocument, error)
}
