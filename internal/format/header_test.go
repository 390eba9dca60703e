package format

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

// makeHeader builds a minimal valid header we control entirely.
func makeHeader(mutate func([]byte)) []byte {
	b := make([]byte, HeaderSize)
	binary.BigEndian.PutUint32(b[MagicOffset:], Magic)
	binary.BigEndian.PutUint32(b[TotalSizeOffset:], HeaderSize)
	binary.BigEndian.PutUint32(b[OffDTStructOffset:], HeaderSize)
	binary.BigEndian.PutUint32(b[OffDTStringsOffset:], HeaderSize)
	binary.BigEndian.PutUint32(b[OffMemRsvmapOffset:], HeaderSize)
	binary.BigEndian.PutUint32(b[VersionOffset:], 17)
	binary.BigEndian.PutUint32(b[LastCompVersionOffset:], 16)
	binary.BigEndian.PutUint32(b[BootCPUIDPhysOffset:], 0)
	binary.BigEndian.PutUint32(b[SizeDTStringsOffset:], 0)
	binary.BigEndian.PutUint32(b[SizeDTStructOffset:], 0)
	if mutate != nil {
		mutate(b)
	}
	return b
}

func TestParseHeader_OK(t *testing.T) {
	h, err := ParseHeader(makeHeader(func(b []byte) {
		binary.BigEndian.PutUint32(b[BootCPUIDPhysOffset:], 2)
	}))
	require.NoError(t, err)
	require.Equal(t, uint32(HeaderSize), h.TotalSize)
	require.Equal(t, uint32(17), h.Version)
	require.Equal(t, uint32(16), h.LastCompVersion)
	require.Equal(t, uint32(2), h.BootCPUIDPhys)
}

func TestParseHeader_BadMagic(t *testing.T) {
	_, err := ParseHeader(makeHeader(func(b []byte) {
		binary.BigEndian.PutUint32(b[MagicOffset:], 0xDEADBEEF)
	}))
	require.ErrorIs(t, err, ErrBadMagic)
}

func TestParseHeader_Truncated(t *testing.T) {
	_, err := ParseHeader(make([]byte, HeaderSize-1))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestParseHeader_TotalSizeBeyondBuffer(t *testing.T) {
	_, err := ParseHeader(makeHeader(func(b []byte) {
		binary.BigEndian.PutUint32(b[TotalSizeOffset:], HeaderSize+1)
	}))
	require.ErrorIs(t, err, ErrTruncated)
}

func TestParseHeader_UnsupportedVersion(t *testing.T) {
	_, err := ParseHeader(makeHeader(func(b []byte) {
		binary.BigEndian.PutUint32(b[LastCompVersionOffset:], LastCompatibleVersion+1)
	}))
	require.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = ParseHeader(makeHeader(func(b []byte) {
		binary.BigEndian.PutUint32(b[VersionOffset:], MinCompatibleVersion-1)
	}))
	require.ErrorIs(t, err, ErrUnsupportedVersion)
}
