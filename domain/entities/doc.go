// Package entities provides core domain types for the KV store emulation.
// These types serve dual purpose: domain entities AND JSON wire format DTOs
// for the guest-facing hostcall surface.
package entities
