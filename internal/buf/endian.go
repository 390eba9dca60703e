// Package buf contains helpers for endian-safe decoding routines.
package buf

import "encoding/binary"

// U32BE reads a big-endian uint32 from b. Returns 0 when b is too short.
func U32BE(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// U64BE reads a big-endian uint64 from b. Returns 0 when b is too short.
func U64BE(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// PutU32BE writes a big-endian uint32 into b at off. No-op when out of bounds.
func PutU32BE(b []byte, off int, v uint32) {
	if off < 0 || off+4 > len(b) {
		return
	}
	binary.BigEndian.PutUint32(b[off:], v)
}

// PutU64BE writes a big-endian uint64 into b at off. No-op when out of bounds.
func PutU64BE(b []byte, off int, v uint64) {
	if off < 0 || off+8 > len(b) {
		return
	}
	binary.BigEndian.PutUint64(b[off:], v)
}
