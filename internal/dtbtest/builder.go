// Package dtbtest builds synthetic devicetree blobs for tests.
package dtbtest

import (
	"bytes"
	"encoding/binary"

	"github.com/joshuapare/fdtkit/internal/format"
)

// Builder assembles a blob in wire layout: header, reservation block,
// structure block, strings block. Calls chain; Blob finalizes.
type Builder struct {
	structBuf  bytes.Buffer
	stringsBuf bytes.Buffer
	stringOffs map[string]uint32
	rsv        [][2]uint64
	bootCPU    uint32
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{stringOffs: make(map[string]uint32)}
}

func (b *Builder) u32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.structBuf.Write(tmp[:])
}

func (b *Builder) pad() {
	for b.structBuf.Len()%format.TokenAlignment != 0 {
		b.structBuf.WriteByte(0)
	}
}

// Begin opens a node.
func (b *Builder) Begin(name string) *Builder {
	b.u32(format.TokenBeginNode)
	b.structBuf.WriteString(name)
	b.structBuf.WriteByte(0)
	b.pad()
	return b
}

// End closes the most recently opened node.
func (b *Builder) End() *Builder {
	b.u32(format.TokenEndNode)
	return b
}

// Prop appends a property with a raw payload.
func (b *Builder) Prop(name string, payload []byte) *Builder {
	b.u32(format.TokenProp)
	b.u32(uint32(len(payload)))
	b.u32(b.stringOff(name))
	b.structBuf.Write(payload)
	b.pad()
	return b
}

// PropU32 appends a property of big-endian uint32 cells.
func (b *Builder) PropU32(name string, vals ...uint32) *Builder {
	payload := make([]byte, 0, len(vals)*4)
	var tmp [4]byte
	for _, v := range vals {
		binary.BigEndian.PutUint32(tmp[:], v)
		payload = append(payload, tmp[:]...)
	}
	return b.Prop(name, payload)
}

// PropStr appends a property of NUL-terminated strings.
func (b *Builder) PropStr(name string, ss ...string) *Builder {
	var payload []byte
	for _, s := range ss {
		payload = append(payload, s...)
		payload = append(payload, 0)
	}
	return b.Prop(name, payload)
}

// Reserve adds a memory reservation entry.
func (b *Builder) Reserve(addr, size uint64) *Builder {
	b.rsv = append(b.rsv, [2]uint64{addr, size})
	return b
}

// BootCPU sets the boot CPU ID header field.
func (b *Builder) BootCPU(id uint32) *Builder {
	b.bootCPU = id
	return b
}

func (b *Builder) stringOff(name string) uint32 {
	if off, ok := b.stringOffs[name]; ok {
		return off
	}
	off := uint32(b.stringsBuf.Len())
	b.stringsBuf.WriteString(name)
	b.stringsBuf.WriteByte(0)
	b.stringOffs[name] = off
	return off
}

// Blob terminates the structure block and lays out the file.
func (b *Builder) Blob() []byte {
	b.u32(format.TokenEnd)

	rsvOff := format.HeaderSize
	rsvLen := (len(b.rsv) + 1) * format.MemRsvEntrySize
	structOff := rsvOff + rsvLen
	structLen := b.structBuf.Len()
	stringsOff := structOff + structLen
	stringsLen := b.stringsBuf.Len()
	total := stringsOff + stringsLen

	blob := make([]byte, total)
	put := func(off int, v uint32) { binary.BigEndian.PutUint32(blob[off:], v) }
	put(format.MagicOffset, format.Magic)
	put(format.TotalSizeOffset, uint32(total))
	put(format.OffDTStructOffset, uint32(structOff))
	put(format.OffDTStringsOffset, uint32(stringsOff))
	put(format.OffMemRsvmapOffset, uint32(rsvOff))
	put(format.VersionOffset, 17)
	put(format.LastCompVersionOffset, 16)
	put(format.BootCPUIDPhysOffset, b.bootCPU)
	put(format.SizeDTStringsOffset, uint32(stringsLen))
	put(format.SizeDTStructOffset, uint32(structLen))

	off := rsvOff
	for _, r := range b.rsv {
		binary.BigEndian.PutUint64(blob[off:], r[0])
		binary.BigEndian.PutUint64(blob[off+8:], r[1])
		off += format.MemRsvEntrySize
	}

	copy(blob[structOff:], b.structBuf.Bytes())
	copy(blob[stringsOff:], b.stringsBuf.Bytes())
	return blob
}
