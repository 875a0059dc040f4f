// Package adapt implements the one-time guest module transformation: a
// core wasm module's imports are rebound under the fixed compatibility
// adapter namespace, and the result is re-encoded together with the
// embedded adapter binary into a single component artifact.
//
// The transform is consumed once, before any store is touched. It is a
// pure binary-to-binary step: apart from the import section, every module
// section is copied through unchanged.
package adapt
