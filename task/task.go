package task

import (
	"context"
	"errors"
)

// ErrConsumed reports a second wait on a task whose result was already
// taken. Wait-style consumption is single-use.
var ErrConsumed = errors.New("task result already consumed")

// State is the answer of a non-blocking poll.
type State int

const (
	// Pending - the task has been spawned but has not completed.
	Pending State = iota
	// Ready - the result is available and has not been consumed.
	Ready
)

// PeekableTask wraps one in-flight unit of backing work. State transitions
// are one-directional and terminal: Spawned, then Completed. The result
// slot is filled exactly once by the task goroutine and drained exactly
// once by Wait.
//
// A task belongs to the session that spawned it and is driven from that
// session's single goroutine; it is not safe for concurrent use.
type PeekableTask[T any] struct {
	done     chan struct{}
	value    T
	err      error
	consumed bool
}

// Spawn starts fn on its own goroutine and returns immediately with the
// pending task. Once spawned, fn runs to completion; there is no
// host-initiated cancellation at this layer.
func Spawn[T any](fn func() (T, error)) *PeekableTask[T] {
	t := &PeekableTask[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.value, t.err = fn()
	}()
	return t
}

// Complete returns an already-finished task carrying the given result.
// Hostcalls over the synchronous in-memory registry use this shortcut to
// preserve the asynchronous contract without adding latency.
func Complete[T any](value T, err error) *PeekableTask[T] {
	t := &PeekableTask[T]{done: make(chan struct{})}
	t.value, t.err = value, err
	close(t.done)
	return t
}

// Poll reports whether the result is available, without consuming it.
// Polling a consumed task is an error.
func (t *PeekableTask[T]) Poll() (State, error) {
	if t.consumed {
		var zero State
		return zero, ErrConsumed
	}
	select {
	case <-t.done:
		return Ready, nil
	default:
		return Pending, nil
	}
}

// Wait blocks until the task completes, consumes it, and returns the
// wrapped result. A second Wait fails with ErrConsumed. ctx aborts the
// wait but not the work: the task still runs to completion.
func (t *PeekableTask[T]) Wait(ctx context.Context) (T, error) {
	if t.consumed {
		var zero T
		return zero, ErrConsumed
	}
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-t.done:
	}
	t.consumed = true
	return t.value, t.err
}
