package handles

import "fmt"

// Handle is an opaque integer naming one live resource instance within one
// table. Handle 0 is never issued, so the zero value always reads as
// "no handle".
type Handle uint32

// UnknownHandleError reports an access through a handle that was never
// issued or has already been released.
type UnknownHandleError struct {
	Handle Handle
}

func (e *UnknownHandleError) Error() string {
	return fmt.Sprintf("unknown or released handle %d", uint32(e.Handle))
}

type slot[T any] struct {
	value T
	live  bool
}

// Table is an append-only arena of resources of one type. Insert always
// succeeds; handles are sequential and never reused after release within
// the same table instance.
//
// A table is owned by a single session and is not safe for concurrent use.
type Table[T any] struct {
	slots []slot[T]
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{}
}

// Insert registers value and returns its handle.
func (t *Table[T]) Insert(value T) Handle {
	t.slots = append(t.slots, slot[T]{value: value, live: true})
	return Handle(len(t.slots))
}

// Get returns a pointer to the resource behind handle. Callers may mutate
// the resource in place; ownership stays with the table.
func (t *Table[T]) Get(handle Handle) (*T, error) {
	s, err := t.slot(handle)
	if err != nil {
		return nil, err
	}
	return &s.value, nil
}

// Take removes the resource and returns ownership to the caller. The
// handle is dead afterwards.
func (t *Table[T]) Take(handle Handle) (T, error) {
	s, err := t.slot(handle)
	if err != nil {
		var zero T
		return zero, err
	}
	value := s.value
	var zero T
	s.value = zero
	s.live = false
	return value, nil
}

// Has reports whether handle names a live resource.
func (t *Table[T]) Has(handle Handle) bool {
	_, err := t.slot(handle)
	return err == nil
}

// Len returns the number of live resources.
func (t *Table[T]) Len() int {
	n := 0
	for i := range t.slots {
		if t.slots[i].live {
			n++
		}
	}
	return n
}

func (t *Table[T]) slot(handle Handle) (*slot[T], error) {
	idx := int(handle) - 1
	if idx < 0 || idx >= len(t.slots) || !t.slots[idx].live {
		return nil, &UnknownHandleError{Handle: handle}
	}
	return &t.slots[idx], nil
}
