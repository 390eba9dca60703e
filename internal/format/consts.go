// Package format houses low-level decoders for the Flattened Device Tree
// (FDT, "devicetree blob") wire format. The goal is to keep the parsing
// focused, allocation-free where possible, and independent from the public
// API so higher-level packages can orchestrate the data in a more ergonomic
// form.
//
// All multi-byte integers in an FDT are stored big-endian.
package format

const (
	// Magic is the four-byte value at the start of every devicetree blob.
	Magic = 0xd00dfeed

	// HeaderSize is the size of the fixed FDT header in bytes.
	HeaderSize = 40

	// Header field offsets, each a big-endian uint32.
	MagicOffset           = 0x00
	TotalSizeOffset       = 0x04
	OffDTStructOffset     = 0x08
	OffDTStringsOffset    = 0x0C
	OffMemRsvmapOffset    = 0x10
	VersionOffset         = 0x14
	LastCompVersionOffset = 0x18
	BootCPUIDPhysOffset   = 0x1C
	SizeDTStringsOffset   = 0x20
	SizeDTStructOffset    = 0x24

	// TokenAlignment is the required alignment of structure-block tokens.
	// Node names and property payloads are zero-padded up to it.
	TokenAlignment = 4

	// MemRsvEntrySize is the size of one memory reservation entry: a
	// big-endian uint64 address followed by a big-endian uint64 size.
	// The block ends with an all-zero entry.
	MemRsvEntrySize = 16

	// PropHeaderSize is the size of the length + name-offset pair that
	// follows a TokenProp in the structure block.
	PropHeaderSize = 8

	// CellSize is the size of one cell: a single big-endian uint32.
	// #address-cells and friends count in this unit.
	CellSize = 4

	// MaxCellCount is the widest integer field the cursor decodes:
	// two cells, a 64-bit value.
	MaxCellCount = 2

	// LastCompatibleVersion is the most recent blob version this package
	// knows how to traverse. Version 17 added SizeDTStruct; version 16 is
	// the oldest layout with a compatible structure block.
	LastCompatibleVersion = 17
	MinCompatibleVersion  = 16
)

// Structure block tokens, each stored as a big-endian uint32 at a
// 4-byte-aligned offset.
const (
	// TokenBeginNode starts a node. It is followed by the node's
	// NUL-terminated name, padded to TokenAlignment.
	TokenBeginNode = 0x01

	// TokenEndNode closes the most recently opened node.
	TokenEndNode = 0x02

	// TokenProp introduces a property: uint32 payload length, uint32
	// offset of the property name in the strings block, then the payload
	// padded to TokenAlignment.
	TokenProp = 0x03

	// TokenNop is skipped wherever it appears. Editors use it to blank
	// out structure without re-packing the blob.
	TokenNop = 0x04

	// TokenEnd terminates the structure block.
	TokenEnd = 0x09
)
