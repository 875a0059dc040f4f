// Package store implements the in-memory store registry: the process-wide
// owner of all named stores and their key/value contents.
//
// The registry is shared mutable state guarded by one reader/writer lock,
// registry-wide rather than per-store. A failure while the lock is held
// poisons the registry permanently; every subsequent access reports an
// internal error instead of silently recovering.
package store
