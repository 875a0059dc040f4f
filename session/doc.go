// Package session holds the per-guest state of one sandbox instance: the
// handle tables for open stores, pending operations, lookup results, and
// bodies. The backing store registry is shared across sessions; everything
// in this package is exclusively owned by one session and torn down with it.
package session
