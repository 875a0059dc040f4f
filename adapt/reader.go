package adapt

import (
	"errors"
	"fmt"
)

// reader walks a wasm binary with sticky error handling: after the first
// failure every accessor returns zero values and the error is reported
// once at the end.
type reader struct {
	buf []byte
	off int
	err error
}

var errTruncated = errors.New("unexpected end of input")

func (r *reader) remaining() int {
	return len(r.buf) - r.off
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *reader) byte() byte {
	if r.err != nil || r.off >= len(r.buf) {
		r.fail(errTruncated)
		return 0
	}
	b := r.buf[r.off]
	r.off++
	return b
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil || n < 0 || r.off+n > len(r.buf) {
		r.fail(errTruncated)
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

// uvarint reads an unsigned LEB128 value.
func (r *reader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}
	var v uint64
	var shift uint
	for {
		if r.off >= len(r.buf) {
			r.fail(errTruncated)
			return 0
		}
		b := r.buf[r.off]
		r.off++
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return v
		}
		shift += 7
		if shift >= 64 {
			r.fail(errors.New("leb128 value overflows 64 bits"))
			return 0
		}
	}
}

func (r *reader) name() string {
	n := r.uvarint()
	return string(r.bytes(int(n)))
}

// skipImportDesc advances past one import descriptor, leaving the reader
// positioned at the next import entry.
func (r *reader) skipImportDesc() error {
	kind := r.byte()
	switch kind {
	case 0x00: // func: type index
		r.uvarint()
	case 0x01: // table: reftype + limits
		r.byte()
		r.skipLimits()
	case 0x02: // memory: limits
		r.skipLimits()
	case 0x03: // global: valtype + mutability
		r.byte()
		r.byte()
	case 0x04: // tag: attribute + type index
		r.byte()
		r.uvarint()
	default:
		if r.err == nil {
			return fmt.Errorf("unknown import descriptor kind 0x%02x", kind)
		}
	}
	return r.err
}

func (r *reader) skipLimits() {
	flags := r.byte()
	r.uvarint()
	if flags&0x01 != 0 {
		r.uvarint()
	}
}

// appendUvarint appends v in unsigned LEB128 encoding.
func appendUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}
