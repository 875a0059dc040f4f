package hostfuncs

import (
	"context"

	"github.com/edgekv-dev/edgekv/domain/entities"
	"github.com/edgekv-dev/edgekv/domain/errors"
	"github.com/edgekv-dev/edgekv/domain/ports"
	"github.com/edgekv-dev/edgekv/handles"
	"github.com/edgekv-dev/edgekv/session"
	"github.com/edgekv-dev/edgekv/task"
)

// Kv is the guest-facing KV hostcall surface for one session. Each
// operation follows the two-phase pattern: the begin call validates its
// arguments synchronously, runs the backing operation as an
// already-completed task, and returns a pending-operation handle; the
// matching wait call consumes that handle and returns the result.
//
// Key-validation and unknown-store errors are raised at begin, before any
// task exists. All other backing-store errors are delivered through wait.
type Kv struct {
	sess *session.Session
}

// NewKv creates the hostcall surface over a session.
func NewKv(sess *session.Session) *Kv {
	return &Kv{sess: sess}
}

// Session returns the owning session.
func (kv *Kv) Session() *session.Session {
	return kv.sess
}

// Open resolves a store name to an open-store handle. Opening a store that
// does not exist is a synchronous error.
func (kv *Kv) Open(name string) (handles.Handle, error) {
	exists, err := kv.sess.Backend().StoreExists(name)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, &errors.UnknownStoreError{Name: name}
	}
	return kv.sess.OpenStore(entities.StoreKey(name)), nil
}

// Lookup begins a lookup and returns a pending-lookup handle.
func (kv *Kv) Lookup(store handles.Handle, key string) (handles.Handle, error) {
	storeKey, err := kv.sess.StoreKey(store)
	if err != nil {
		return 0, err
	}
	objKey, err := entities.NewObjectKey(key)
	if err != nil {
		return 0, err
	}
	// The in-memory registry answers synchronously, so the task is complete
	// by construction; the pending handle preserves the async contract.
	t := task.Complete(kv.sess.Backend().Lookup(storeKey, objKey))
	return kv.sess.InsertPendingLookup(t), nil
}

// LookupWait consumes a pending-lookup handle. A missing object is a soft
// outcome: the status is not-found and no result handle is produced. Every
// other backing error propagates.
func (kv *Kv) LookupWait(ctx context.Context, pending handles.Handle) (handles.Handle, entities.KvStatus, error) {
	t, err := kv.sess.TakePendingLookup(pending)
	if err != nil {
		return 0, entities.KvStatusInternalError, err
	}
	val, err := t.Wait(ctx)
	if err == errors.ErrMissingObject {
		return 0, entities.KvStatusNotFound, nil
	}
	if err != nil {
		return 0, errors.StatusOf(err), err
	}

	body := kv.sess.InsertBody(session.NewBody(val.Body))
	res := kv.sess.InsertLookupResult(session.LookupResult{
		Body:        body,
		Metadata:    val.Metadata,
		MetadataLen: val.MetadataLen,
		Generation:  val.Generation,
	})
	return res, entities.KvStatusOk, nil
}

// LookupPoll reports whether a pending lookup is ready, without consuming.
func (kv *Kv) LookupPoll(pending handles.Handle) (task.State, error) {
	t, err := kv.sess.PendingLookup(pending)
	if err != nil {
		return 0, err
	}
	return t.Poll()
}

// Insert begins an insert and returns a pending-insert handle.
func (kv *Kv) Insert(store handles.Handle, key string, body []byte, opts ports.InsertOptions) (handles.Handle, error) {
	storeKey, err := kv.sess.StoreKey(store)
	if err != nil {
		return 0, err
	}
	objKey, err := entities.NewObjectKey(key)
	if err != nil {
		return 0, err
	}
	t := task.Complete(struct{}{}, kv.sess.Backend().Insert(storeKey, objKey, body, opts))
	return kv.sess.InsertPendingInsert(t), nil
}

// InsertWait consumes a pending-insert handle and reports the outcome as a
// status alongside the propagated error, if any.
func (kv *Kv) InsertWait(ctx context.Context, pending handles.Handle) (entities.KvStatus, error) {
	t, err := kv.sess.TakePendingInsert(pending)
	if err != nil {
		return entities.KvStatusInternalError, err
	}
	if _, err := t.Wait(ctx); err != nil {
		return errors.StatusOf(err), err
	}
	return entities.KvStatusOk, nil
}

// InsertPoll reports whether a pending insert is ready, without consuming.
func (kv *Kv) InsertPoll(pending handles.Handle) (task.State, error) {
	t, err := kv.sess.PendingInsert(pending)
	if err != nil {
		return 0, err
	}
	return t.Poll()
}

// Delete begins a delete and returns a pending-delete handle.
func (kv *Kv) Delete(store handles.Handle, key string) (handles.Handle, error) {
	storeKey, err := kv.sess.StoreKey(store)
	if err != nil {
		return 0, err
	}
	objKey, err := entities.NewObjectKey(key)
	if err != nil {
		return 0, err
	}
	t := task.Complete(struct{}{}, kv.sess.Backend().Delete(storeKey, objKey))
	return kv.sess.InsertPendingDelete(t), nil
}

// DeleteWait consumes a pending-delete handle. Unlike lookup, a missing
// key is a hard error here; callers distinguish the two call sites.
func (kv *Kv) DeleteWait(ctx context.Context, pending handles.Handle) (entities.KvStatus, error) {
	t, err := kv.sess.TakePendingDelete(pending)
	if err != nil {
		return entities.KvStatusInternalError, err
	}
	if _, err := t.Wait(ctx); err != nil {
		return errors.StatusOf(err), err
	}
	return entities.KvStatusOk, nil
}

// DeletePoll reports whether a pending delete is ready, without consuming.
func (kv *Kv) DeletePoll(pending handles.Handle) (task.State, error) {
	t, err := kv.sess.PendingDelete(pending)
	if err != nil {
		return 0, err
	}
	return t.Poll()
}

// List begins a listing and returns a pending-list handle.
func (kv *Kv) List(store handles.Handle, opts ports.ListOptions) (handles.Handle, error) {
	storeKey, err := kv.sess.StoreKey(store)
	if err != nil {
		return 0, err
	}
	t := task.Complete(kv.sess.Backend().List(storeKey, opts))
	return kv.sess.InsertPendingList(t), nil
}

// ListWait consumes a pending-list handle and renders the listing document
// as a JSON body readable through the returned body handle.
func (kv *Kv) ListWait(ctx context.Context, pending handles.Handle) (handles.Handle, entities.KvStatus, error) {
	t, err := kv.sess.TakePendingList(pending)
	if err != nil {
		return 0, entities.KvStatusInternalError, err
	}
	doc, err := t.Wait(ctx)
	if err != nil {
		return 0, errors.StatusOf(err), err
	}
	raw, err := marshalListing(doc)
	if err != nil {
		return 0, entities.KvStatusInternalError, errors.KvInternalError
	}
	return kv.sess.InsertBody(session.NewBody(raw)), entities.KvStatusOk, nil
}

// ListPoll reports whether a pending list is ready, without consuming.
func (kv *Kv) ListPoll(pending handles.Handle) (task.State, error) {
	t, err := kv.sess.PendingList(pending)
	if err != nil {
		return 0, err
	}
	return t.Poll()
}

// ResultBody returns the body handle of a lookup result. The body stays
// owned by the session and can be read any number of times.
func (kv *Kv) ResultBody(result handles.Handle) (handles.Handle, error) {
	res, err := kv.sess.LookupResult(result)
	if err != nil {
		return 0, err
	}
	return res.Body, nil
}

// ResultMetadata moves the metadata out of a lookup result. The first read
// returns the payload; later reads return nil. A caller-declared capacity
// smaller than the metadata's length is a buffer-length error, never a
// silent truncation.
func (kv *Kv) ResultMetadata(result handles.Handle, maxLen int) ([]byte, error) {
	res, err := kv.sess.LookupResult(result)
	if err != nil {
		return nil, err
	}
	if res.Metadata == nil {
		return nil, nil
	}
	if len(res.Metadata) > maxLen {
		return nil, &errors.BufferLengthError{Needed: len(res.Metadata)}
	}
	md := res.Metadata
	res.Metadata = nil
	return md, nil
}

// ResultGeneration returns the generation stamp of a lookup result.
func (kv *Kv) ResultGeneration(result handles.Handle) (uint32, error) {
	res, err := kv.sess.LookupResult(result)
	if err != nil {
		return 0, err
	}
	return res.Generation, nil
}

// CloseResult releases a lookup result handle. The body handle it produced
// remains valid until closed on its own.
func (kv *Kv) CloseResult(result handles.Handle) error {
	return kv.sess.DropLookupResult(result)
}

// BodyBytes reads the contents behind a body handle.
func (kv *Kv) BodyBytes(body handles.Handle) ([]byte, error) {
	b, err := kv.sess.Body(body)
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

// CloseBody releases a body handle.
func (kv *Kv) CloseBody(body handles.Handle) error {
	return kv.sess.DropBody(body)
}
