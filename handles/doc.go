// Package handles implements the per-session registry mapping opaque
// integer handles to live resource instances.
//
// Tables are arenas keyed by a monotonically increasing index with explicit
// liveness tracking: a released slot is never reclaimed, so a stale handle
// can never be confused with a later resource.
package handles
