// Package hostfuncs implements the guest-facing hostcall surface of the KV
// store emulation: the typed façade (Kv) and the JSON-framed dispatch
// registry that exposes it to sandboxed modules. The façade has no WASM
// runtime dependencies; the host package binds it to wazero.
package hostfuncs
