// Package abi implements the packed pointer/length convention of the
// guest ABI. A location in guest linear memory travels as a single
// uint64: the pointer in the high 32 bits, the length in the low 32.
// Zero means "no payload".
package abi

// Pack combines a guest memory pointer and length into one uint64.
func Pack(ptr, length uint32) uint64 {
	return (uint64(ptr) << 32) | uint64(length)
}

// Unpack splits a packed value back into pointer and length.
func Unpack(packed uint64) (ptr, length uint32) {
	return uint32(packed >> 32), uint32(packed)
}

// IsEmpty reports whether a packed value carries no payload. A null
// pointer or a zero length both read as empty.
func IsEmpty(packed uint64) bool {
	ptr, length := Unpack(packed)
	return ptr == 0 || length == 0
}
