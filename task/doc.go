// Package task implements the two-phase asynchronous operation pattern:
// work is spawned eagerly at the "begin" hostcall and consumed exactly once
// by the matching "wait" hostcall, with a non-blocking peek in between.
//
// The in-memory registry completes work by construction, but tasks still
// run on their own goroutine so the same contract holds for backing stores
// that are genuinely asynchronous.
package task
