package store

import (
	"sync"
	"sync/atomic"

	"github.com/edgekv-dev/edgekv/domain/entities"
	"github.com/edgekv-dev/edgekv/domain/errors"
	"github.com/edgekv-dev/edgekv/domain/ports"
)

// Registry owns all named stores and their contents. It is shared by
// reference across every session in the process; a single reader/writer
// lock serializes mutations against all other registry access.
//
// Registry implements ports.ObjectBackend.
type Registry struct {
	mu       sync.RWMutex
	poisoned atomic.Bool
	stores   map[entities.StoreKey]map[string]entities.ObjectValue
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		stores: make(map[entities.StoreKey]map[string]entities.ObjectValue),
	}
}

// read runs fn under the read lock. A panic inside fn poisons the registry
// before propagating; once poisoned, every later call fails with
// ErrPoisonedLock.
func (r *Registry) read(fn func() error) error {
	if r.poisoned.Load() {
		return errors.ErrPoisonedLock
	}
	r.mu.RLock()
	defer func() {
		r.mu.RUnlock()
		if p := recover(); p != nil {
			r.poisoned.Store(true)
			panic(p)
		}
	}()
	return fn()
}

// write runs fn under the write lock, with the same poisoning discipline
// as read.
func (r *Registry) write(fn func() error) error {
	if r.poisoned.Load() {
		return errors.ErrPoisonedLock
	}
	r.mu.Lock()
	defer func() {
		r.mu.Unlock()
		if p := recover(); p != nil {
			r.poisoned.Store(true)
			panic(p)
		}
	}()
	return fn()
}

// StoreExists reports whether a store with the given name exists.
func (r *Registry) StoreExists(name string) (bool, error) {
	var exists bool
	err := r.read(func() error {
		_, exists = r.stores[entities.StoreKey(name)]
		return nil
	})
	return exists, err
}

// CreateStore creates an empty store. Creating an existing store is a
// no-op: existing contents are left untouched.
func (r *Registry) CreateStore(store entities.StoreKey) error {
	return r.write(func() error {
		if _, ok := r.stores[store]; !ok {
			r.stores[store] = make(map[string]entities.ObjectValue)
		}
		return nil
	})
}

// Lookup returns a copy of the value stored under key. A missing store and
// a missing key both report ErrMissingObject.
func (r *Registry) Lookup(store entities.StoreKey, key entities.ObjectKey) (entities.ObjectValue, error) {
	var out entities.ObjectValue
	err := r.read(func() error {
		objects, ok := r.stores[store]
		if !ok {
			return errors.ErrMissingObject
		}
		val, ok := objects[key.String()]
		if !ok {
			return errors.ErrMissingObject
		}
		out = val.Clone()
		return nil
	})
	return out, err
}

// Insert writes body under key subject to opts. The generation precondition
// is checked first and overrides mode-specific logic; on success the new
// value carries a fresh generation stamp, and metadata is replaced only if
// opts supplies a new payload, otherwise the stored metadata is cleared.
func (r *Registry) Insert(store entities.StoreKey, key entities.ObjectKey, body []byte, opts ports.InsertOptions) error {
	existing, lookupErr := r.Lookup(store, key)
	switch lookupErr {
	case nil, errors.ErrMissingObject:
	default:
		return errors.KvInternalError
	}
	found := lookupErr == nil

	if opts.ExpectedGeneration != nil && found && existing.Generation != *opts.ExpectedGeneration {
		return errors.KvPreconditionFailed
	}

	var outBody []byte
	switch opts.Mode {
	case entities.InsertOverwrite:
		outBody = append([]byte(nil), body...)
	case entities.InsertAdd:
		if found {
			return errors.KvPreconditionFailed
		}
		outBody = append([]byte(nil), body...)
	case entities.InsertAppend:
		if !found {
			outBody = append([]byte(nil), body...)
		} else {
			// Existing body first, new bytes after.
			outBody = append(append([]byte(nil), existing.Body...), body...)
		}
	case entities.InsertPrepend:
		if !found {
			outBody = append([]byte(nil), body...)
		} else {
			// New bytes first, existing body after.
			outBody = append(append([]byte(nil), body...), existing.Body...)
		}
	default:
		return errors.KvBadRequest
	}

	val := entities.ObjectValue{
		Body:       outBody,
		Generation: newGeneration(),
	}
	if opts.Metadata != nil {
		val.Metadata = append([]byte(nil), opts.Metadata...)
		val.MetadataLen = len(opts.Metadata)
	}

	return r.write(func() error {
		objects, ok := r.stores[store]
		if !ok {
			objects = make(map[string]entities.ObjectValue)
			r.stores[store] = objects
		}
		objects[key.String()] = val
		return nil
	})
}

// Delete removes key from the store. A missing key fails with KvNotFound
// and leaves the store untouched.
func (r *Registry) Delete(store entities.StoreKey, key entities.ObjectKey) error {
	return r.write(func() error {
		objects, ok := r.stores[store]
		if !ok {
			return nil
		}
		if _, ok := objects[key.String()]; !ok {
			return errors.KvNotFound
		}
		delete(objects, key.String())
		return nil
	})
}

var _ ports.ObjectBackend = (*Registry)(nil)
