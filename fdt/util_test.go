package fdt

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/fdtkit/internal/format"
)

// treeBuilder assembles a synthetic blob we control entirely, using the
// wire layout the parser expects: header, reservation block, structure
// block, strings block.
type treeBuilder struct {
	structBuf    bytes.Buffer
	stringsBuf   bytes.Buffer
	stringOffs   map[string]uint32
	reservations []MemReservation
	bootCPU      uint32
}

func newTreeBuilder() *treeBuilder {
	return &treeBuilder{stringOffs: make(map[string]uint32)}
}

func (b *treeBuilder) u32(v uint32) {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	b.structBuf.Write(tmp[:])
}

func (b *treeBuilder) pad() {
	for b.structBuf.Len()%format.TokenAlignment != 0 {
		b.structBuf.WriteByte(0)
	}
}

func (b *treeBuilder) begin(name string) *treeBuilder {
	b.u32(format.TokenBeginNode)
	b.structBuf.WriteString(name)
	b.structBuf.WriteByte(0)
	b.pad()
	return b
}

func (b *treeBuilder) end() *treeBuilder {
	b.u32(format.TokenEndNode)
	return b
}

func (b *treeBuilder) nop() *treeBuilder {
	b.u32(format.TokenNop)
	return b
}

func (b *treeBuilder) stringOff(name string) uint32 {
	if off, ok := b.stringOffs[name]; ok {
		return off
	}
	off := uint32(b.stringsBuf.Len())
	b.stringsBuf.WriteString(name)
	b.stringsBuf.WriteByte(0)
	b.stringOffs[name] = off
	return off
}

func (b *treeBuilder) prop(name string, payload []byte) *treeBuilder {
	b.u32(format.TokenProp)
	b.u32(uint32(len(payload)))
	b.u32(b.stringOff(name))
	b.structBuf.Write(payload)
	b.pad()
	return b
}

func (b *treeBuilder) propU32(name string, vals ...uint32) *treeBuilder {
	payload := make([]byte, 0, len(vals)*4)
	var tmp [4]byte
	for _, v := range vals {
		binary.BigEndian.PutUint32(tmp[:], v)
		payload = append(payload, tmp[:]...)
	}
	return b.prop(name, payload)
}

func (b *treeBuilder) propStr(name string, ss ...string) *treeBuilder {
	var payload []byte
	for _, s := range ss {
		payload = append(payload, s...)
		payload = append(payload, 0)
	}
	return b.prop(name, payload)
}

func (b *treeBuilder) reserve(addr, size uint64) *treeBuilder {
	b.reservations = append(b.reservations, MemReservation{Address: addr, Size: size})
	return b
}

// blob finalizes the structure block with TokenEnd and lays out the file.
func (b *treeBuilder) blob(t *testing.T) []byte {
	t.Helper()

	b.u32(format.TokenEnd)

	rsvOff := format.HeaderSize
	rsvLen := (len(b.reservations) + 1) * format.MemRsvEntrySize
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
	for _, r := range b.reservations {
		binary.BigEndian.PutUint64(blob[off:], r.Address)
		binary.BigEndian.PutUint64(blob[off+8:], r.Size)
		off += format.MemRsvEntrySize
	}
	// terminator entry stays zero

	copy(blob[structOff:], b.structBuf.Bytes())
	copy(blob[stringsOff:], b.stringsBuf.Bytes())
	return blob
}

func (b *treeBuilder) open(t *testing.T) *FDT {
	t.Helper()
	f, err := New(b.blob(t))
	require.NoError(t, err)
	return f
}

// findNode walks the full tree for a node by name. Fails the test when the
// node is missing so call sites stay terse.
func findNode(t *testing.T, f *FDT, name string) Node {
	t.Helper()
	it := f.AllNodes()
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		if n.Name() == name {
			return n
		}
	}
	t.Fatalf("node %q not found", name)
	return Node{}
}
