// Package ports defines interfaces for backing store implementations.
// The hostcall surface depends on these abstractions so the in-memory
// registry can later be swapped for a network-backed store without touching
// guest-visible behavior.
package ports
