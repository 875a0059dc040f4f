// Package host provides the runtime environment for executing guest test
// modules against the emulated KV store.
//
// It abstracts the underlying WASM engine (wazero), manages guest
// lifecycle, and handles the low-level ABI interactions (memory
// allocation, pointer/length packing). The KV hostcall surface is exposed
// to guests as a host module dispatching through hostfuncs.
package host
