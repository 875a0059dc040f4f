package session

import (
	"github.com/google/uuid"

	"github.com/edgekv-dev/edgekv/domain/entities"
	"github.com/edgekv-dev/edgekv/domain/ports"
	"github.com/edgekv-dev/edgekv/handles"
	"github.com/edgekv-dev/edgekv/task"
)

// Body is a readable result payload (a looked-up value's body, or a
// serialized listing document). Unlike metadata, a body can be read any
// number of times through its handle.
type Body struct {
	bytes []byte
}

// NewBody wraps raw bytes as a body resource.
func NewBody(b []byte) *Body {
	return &Body{bytes: b}
}

// Bytes returns the body contents.
func (b *Body) Bytes() []byte {
	return b.bytes
}

// Len returns the body length in bytes.
func (b *Body) Len() int {
	return len(b.bytes)
}

// LookupResult is the guest-visible resource produced by a successful
// lookup wait. The body is re-readable through its own handle; metadata is
// moved out on first read.
type LookupResult struct {
	Body        handles.Handle
	Metadata    []byte
	MetadataLen int
	Generation  uint32
}

// Session is the per-guest owner of handle tables and pending tasks.
// A session is driven by the guest's single thread of execution and is not
// safe for concurrent use; the shared backend provides its own locking.
type Session struct {
	id      string
	backend ports.ObjectBackend

	stores         *handles.Table[entities.StoreKey]
	pendingLookups *handles.Table[*task.PeekableTask[entities.ObjectValue]]
	pendingInserts *handles.Table[*task.PeekableTask[struct{}]]
	pendingDeletes *handles.Table[*task.PeekableTask[struct{}]]
	pendingLists   *handles.Table[*task.PeekableTask[entities.ListingDocument]]
	lookupResults  *handles.Table[LookupResult]
	bodies         *handles.Table[*Body]
}

// New creates a session over the shared backing store.
func New(backend ports.ObjectBackend) *Session {
	return &Session{
		id:             uuid.NewString(),
		backend:        backend,
		stores:         handles.NewTable[entities.StoreKey](),
		pendingLookups: handles.NewTable[*task.PeekableTask[entities.ObjectValue]](),
		pendingInserts: handles.NewTable[*task.PeekableTask[struct{}]](),
		pendingDeletes: handles.NewTable[*task.PeekableTask[struct{}]](),
		pendingLists:   handles.NewTable[*task.PeekableTask[entities.ListingDocument]](),
		lookupResults:  handles.NewTable[LookupResult](),
		bodies:         handles.NewTable[*Body](),
	}
}

// ID returns the session's unique identifier, used for log correlation.
func (s *Session) ID() string {
	return s.id
}

// Backend returns the shared backing store.
func (s *Session) Backend() ports.ObjectBackend {
	return s.backend
}

// OpenStore registers an open-store handle for the named store.
func (s *Session) OpenStore(store entities.StoreKey) handles.Handle {
	return s.stores.Insert(store)
}

// StoreKey resolves an open-store handle back to its store name.
func (s *Session) StoreKey(h handles.Handle) (entities.StoreKey, error) {
	key, err := s.stores.Get(h)
	if err != nil {
		return "", err
	}
	return *key, nil
}

// InsertPendingLookup registers a spawned lookup task.
func (s *Session) InsertPendingLookup(t *task.PeekableTask[entities.ObjectValue]) handles.Handle {
	return s.pendingLookups.Insert(t)
}

// TakePendingLookup consumes a pending lookup handle.
func (s *Session) TakePendingLookup(h handles.Handle) (*task.PeekableTask[entities.ObjectValue], error) {
	return s.pendingLookups.Take(h)
}

// PendingLookup returns a pending lookup task without consuming its handle.
func (s *Session) PendingLookup(h handles.Handle) (*task.PeekableTask[entities.ObjectValue], error) {
	t, err := s.pendingLookups.Get(h)
	if err != nil {
		return nil, err
	}
	return *t, nil
}

// InsertPendingInsert registers a spawned insert task.
func (s *Session) InsertPendingInsert(t *task.PeekableTask[struct{}]) handles.Handle {
	return s.pendingInserts.Insert(t)
}

// TakePendingInsert consumes a pending insert handle.
func (s *Session) TakePendingInsert(h handles.Handle) (*task.PeekableTask[struct{}], error) {
	return s.pendingInserts.Take(h)
}

// PendingInsert returns a pending insert task without consuming its handle.
func (s *Session) PendingInsert(h handles.Handle) (*task.PeekableTask[struct{}], error) {
	t, err := s.pendingInserts.Get(h)
	if err != nil {
		return nil, err
	}
	return *t, nil
}

// InsertPendingDelete registers a spawned delete task.
func (s *Session) InsertPendingDelete(t *task.PeekableTask[struct{}]) handles.Handle {
	return s.pendingDeletes.Insert(t)
}

// TakePendingDelete consumes a pending delete handle.
func (s *Session) TakePendingDelete(h handles.Handle) (*task.PeekableTask[struct{}], error) {
	return s.pendingDeletes.Take(h)
}

// PendingDelete returns a pending delete task without consuming its handle.
func (s *Session) PendingDelete(h handles.Handle) (*task.PeekableTask[struct{}], error) {
	t, err := s.pendingDeletes.Get(h)
	if err != nil {
		return nil, err
	}
	return *t, nil
}

// InsertPendingList registers a spawned list task.
func (s *Session) InsertPendingList(t *task.PeekableTask[entities.ListingDocument]) handles.Handle {
	return s.pendingLists.Insert(t)
}

// TakePendingList consumes a pending list handle.
func (s *Session) TakePendingList(h handles.Handle) (*task.PeekableTask[entities.ListingDocument], error) {
	return s.pendingLists.Take(h)
}

// PendingList returns a pending list task without consuming its handle.
func (s *Session) PendingList(h handles.Handle) (*task.PeekableTask[entities.ListingDocument], error) {
	t, err := s.pendingLists.Get(h)
	if err != nil {
		return nil, err
	}
	return *t, nil
}

// InsertLookupResult registers a lookup result resource.
func (s *Session) InsertLookupResult(res LookupResult) handles.Handle {
	return s.lookupResults.Insert(res)
}

// LookupResult returns a pointer to the resource so accessors can move
// metadata out in place.
func (s *Session) LookupResult(h handles.Handle) (*LookupResult, error) {
	return s.lookupResults.Get(h)
}

// DropLookupResult releases a lookup result handle.
func (s *Session) DropLookupResult(h handles.Handle) error {
	_, err := s.lookupResults.Take(h)
	return err
}

// InsertBody registers a body resource.
func (s *Session) InsertBody(b *Body) handles.Handle {
	return s.bodies.Insert(b)
}

// Body resolves a body handle.
func (s *Session) Body(h handles.Handle) (*Body, error) {
	b, err := s.bodies.Get(h)
	if err != nil {
		return nil, err
	}
	return *b, nil
}

// DropBody releases a body handle.
func (s *Session) DropBody(h handles.Handle) error {
	_, err := s.bodies.Take(h)
	return err
}
