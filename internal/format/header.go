package format

import (
	"fmt"

	"github.com/joshuapare/fdtkit/internal/buf"
)

// Header captures the fixed FDT header required to traverse a blob. The
// diagram below lists every field; all are big-endian uint32.
//
//	Offset  Size  Description
//	------  ----  ----------------------------------------------------------
//	 0x00    4    Magic 0xd00dfeed
//	 0x04    4    Total size of the blob, header included
//	 0x08    4    Offset of the structure block
//	 0x0C    4    Offset of the strings block
//	 0x10    4    Offset of the memory reservation block
//	 0x14    4    Blob version
//	 0x18    4    Last compatible version
//	 0x1C    4    Physical ID of the boot CPU
//	 0x20    4    Size of the strings block
//	 0x24    4    Size of the structure block (version >= 17)
type Header struct {
	TotalSize       uint32
	OffDTStruct     uint32
	OffDTStrings    uint32
	OffMemRsvmap    uint32
	Version         uint32
	LastCompVersion uint32
	BootCPUIDPhys   uint32
	SizeDTStrings   uint32
	SizeDTStruct    uint32
}

// ParseHeader validates and extracts the fields of an FDT header.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("fdt header: %w", ErrTruncated)
	}
	if buf.U32BE(b[MagicOffset:]) != Magic {
		return Header{}, fmt.Errorf("fdt header: %w", ErrBadMagic)
	}
	h := Header{
		TotalSize:       buf.U32BE(b[TotalSizeOffset:]),
		OffDTStruct:     buf.U32BE(b[OffDTStructOffset:]),
		OffDTStrings:    buf.U32BE(b[OffDTStringsOffset:]),
		OffMemRsvmap:    buf.U32BE(b[OffMemRsvmapOffset:]),
		Version:         buf.U32BE(b[VersionOffset:]),
		LastCompVersion: buf.U32BE(b[LastCompVersionOffset:]),
		BootCPUIDPhys:   buf.U32BE(b[BootCPUIDPhysOffset:]),
		SizeDTStrings:   buf.U32BE(b[SizeDTStringsOffset:]),
		SizeDTStruct:    buf.U32BE(b[SizeDTStructOffset:]),
	}
	if h.LastCompVersion > LastCompatibleVersion || h.Version < MinCompatibleVersion {
		return Header{}, fmt.Errorf("fdt header: version %d (last compatible %d): %w",
			h.Version, h.LastCompVersion, ErrUnsupportedVersion)
	}
	if int(h.TotalSize) > len(b) {
		return Header{}, fmt.Errorf("fdt header: total size %d exceeds buffer %d: %w",
			h.TotalSize, len(b), ErrTruncated)
	}
	if h.TotalSize < HeaderSize {
		return Header{}, fmt.Errorf("fdt header: total size %d below header size: %w",
			h.TotalSize, ErrTruncated)
	}
	return h, nil
}
