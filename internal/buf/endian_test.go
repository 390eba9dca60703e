package buf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestU32BE(t *testing.T) {
	require.Equal(t, uint32(0x01020304), U32BE([]byte{1, 2, 3, 4}))
	require.Equal(t, uint32(0), U32BE([]byte{1, 2, 3}))
	require.Equal(t, uint32(0), U32BE(nil))
}

func TestU64BE(t *testing.T) {
	require.Equal(t, uint64(0x0102030405060708), U64BE([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
	require.Equal(t, uint64(0), U64BE([]byte{1, 2, 3, 4, 5, 6, 7}))
}

func TestPutU32BE(t *testing.T) {
	b := make([]byte, 8)
	PutU32BE(b, 4, 0x0A0B0C0D)
	require.Equal(t, []byte{0, 0, 0, 0, 0x0A, 0x0B, 0x0C, 0x0D}, b)

	// out-of-bounds writes are ignored
	PutU32BE(b, 6, 1)
	PutU32BE(b, -1, 1)
	require.Equal(t, []byte{0, 0, 0, 0, 0x0A, 0x0B, 0x0C, 0x0D}, b)
}

func TestPutU64BE(t *testing.T) {
	b := make([]byte, 8)
	PutU64BE(b, 0, 0x0102030405060708)
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, b)

	PutU64BE(b, 1, 0xFF) // would overflow, ignored
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, b)
}
