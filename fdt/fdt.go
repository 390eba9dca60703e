package fdt

import (
	"fmt"
	"strings"

	"github.com/joshuapare/fdtkit/internal/buf"
	"github.com/joshuapare/fdtkit/internal/format"
)

// FDT is an opened devicetree blob. It owns the backing bytes (mmap or
// caller-provided slice), the parsed header, and the phandle index every
// cross-tree resolution goes through. The blob is immutable and outlives
// every Node derived from it.
type FDT struct {
	data   []byte
	header format.Header

	// phandles maps each phandle to its node, built once at open time.
	// Nodes are cheap value types, so the index stores them directly.
	phandles map[Phandle]Node

	closer func() error
}

// New wraps an already-resident blob. The slice may be longer than the blob;
// everything past the header's total size is ignored. No copy is made, so
// the caller must keep data alive and unmodified for the lifetime of the
// FDT and everything derived from it.
func New(data []byte) (*FDT, error) {
	header, err := format.ParseHeader(data)
	if err != nil {
		return nil, err
	}
	f := &FDT{
		data:   data[:header.TotalSize],
		header: header,
	}
	if !buf.Has(f.data, int(header.OffDTStruct), 0) || !buf.Has(f.data, int(header.OffDTStrings), 0) {
		return nil, fmt.Errorf("fdt: block offsets beyond blob: %w", format.ErrTruncated)
	}
	f.buildPhandleIndex()
	return f, nil
}

// Close releases the backing mapping when the FDT was opened from a file.
// All Nodes, Properties, and iterators become invalid.
func (f *FDT) Close() error {
	if f.closer != nil {
		err := f.closer()
		f.closer = nil
		return err
	}
	return nil
}

// TotalSize returns the blob size the header declares.
func (f *FDT) TotalSize() uint32 { return f.header.TotalSize }

// Version returns the blob format version.
func (f *FDT) Version() uint32 { return f.header.Version }

// BootCPUID returns the physical ID of the boot CPU.
func (f *FDT) BootCPUID() uint32 { return f.header.BootCPUIDPhys }

// Bytes returns the raw blob, truncated to the declared total size.
func (f *FDT) Bytes() []byte { return f.data }

// structBlock returns the structure block region. Version 17 blobs declare
// its size; older blobs run it to the strings block.
func (f *FDT) structBlock() []byte {
	start := int(f.header.OffDTStruct)
	size := int(f.header.SizeDTStruct)
	if size == 0 {
		size = len(f.data) - start
	}
	b, ok := buf.Slice(f.data, start, size)
	if !ok {
		return nil
	}
	return b
}

// stringAt resolves a property-name offset into the strings block.
func (f *FDT) stringAt(off uint32) (string, error) {
	start := int(f.header.OffDTStrings)
	size := int(f.header.SizeDTStrings)
	block, ok := buf.Slice(f.data, start, size)
	if !ok || int(off) >= len(block) {
		return "", fmt.Errorf("fdt: string offset %#x: %w", off, format.ErrTruncated)
	}
	r := newReader(block)
	r.off = int(off)
	return r.TakeStr()
}

// AllNodes returns an iterator over every node in declaration order
// (pre-order). The iterator threads the inherited metadata context downward
// as an explicit immutable value: each yielded Node already carries its own
// declarations and the pre-merged nearest-ancestor effective values.
func (f *FDT) AllNodes() *NodeIterator {
	return &NodeIterator{fdt: f, reader: newReader(f.structBlock())}
}

// Root returns the root node.
func (f *FDT) Root() (Node, bool) {
	return f.AllNodes().Next()
}

// NodeByPhandle resolves a phandle through the index built at open time.
func (f *FDT) NodeByPhandle(p Phandle) (Node, bool) {
	n, ok := f.phandles[p]
	return n, ok
}

func (f *FDT) buildPhandleIndex() {
	f.phandles = make(map[Phandle]Node)
	it := f.AllNodes()
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		if ph, ok := n.Phandle(); ok {
			f.phandles[ph] = n
		}
	}
}

// FindByPath returns the node at an absolute path such as
// "/soc/serial@10000000". A path segment without a unit address matches a
// node either exactly or by its name before the '@'. "/" returns the root.
func (f *FDT) FindByPath(path string) (Node, bool) {
	var segs []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}

	it := f.AllNodes()
	root, ok := it.Next()
	if !ok {
		return Node{}, false
	}
	if len(segs) == 0 {
		return root, true
	}

	matched := 0 // segments matched so far; frontier is level matched+1
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		if n.Level == 0 {
			// A well-formed blob has exactly one top-level node; a second
			// one means the stream left the root subtree, so nothing past
			// it can sit on the requested path.
			return Node{}, false
		}
		if n.Level > matched+1 {
			continue // inside a subtree that did not match
		}
		if n.Level <= matched {
			matched = n.Level - 1 // left the matched chain
		}
		if segmentMatches(n, segs[matched]) {
			matched++
			if matched == len(segs) {
				return n, true
			}
		}
	}
	return Node{}, false
}

func segmentMatches(n Node, seg string) bool {
	if n.Name() == seg {
		return true
	}
	return !strings.ContainsRune(seg, '@') && n.UnitName() == seg
}

// FindCompatible collects every node whose "compatible" list contains with.
func (f *FDT) FindCompatible(with string) []Node {
	var out []Node
	it := f.AllNodes()
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		if n.IsCompatible(with) {
			out = append(out, n)
		}
	}
	return out
}

// NodeIterator walks the structure block yielding each node once, in
// pre-order. It maintains one effective MetaData per depth so every node's
// metaParents is the nearest-ancestor merged view, never recomputed by the
// node itself.
type NodeIterator struct {
	fdt    *FDT
	reader Reader
	level  int
	stack  []MetaData // effective meta at each depth, stack[i] = depth i
}

// Next returns the next node.
func (it *NodeIterator) Next() (Node, bool) {
	for {
		tok, ok := it.reader.TakeToken()
		if !ok {
			return Node{}, false
		}
		switch tok {
		case TokenBeginNode:
			name, err := it.reader.TakeStr()
			if err != nil {
				return Node{}, false
			}
			it.reader.AlignUp()

			level := it.level
			it.level++

			var parentMeta MetaData
			if level > 0 && level-1 < len(it.stack) {
				parentMeta = it.stack[level-1]
			}

			node := newNode(it.fdt, level, name, it.reader.Clone(), parentMeta, MetaData{})
			node.meta = scanNodeMeta(&node)

			effective := parentMeta.merge(node.meta)
			if level < len(it.stack) {
				it.stack[level] = effective
				it.stack = it.stack[:level+1]
			} else {
				it.stack = append(it.stack, effective)
			}
			return node, true

		case TokenEndNode:
			if it.level > 0 {
				it.level--
			}

		case TokenProp:
			// Properties belong to the node already yielded; skip.
			if !it.reader.SkipProp() {
				return Node{}, false
			}

		case TokenNop:
			// skip

		case TokenEnd:
			return Node{}, false

		default:
			// Unknown token: stop rather than misparse the rest.
			return Node{}, false
		}
	}
}

// scanNodeMeta collects the node's own declarations in one property pass,
// then types the raw "ranges" payload, which needs the cell counts from the
// same pass plus the parent's.
func scanNodeMeta(n *Node) MetaData {
	var m MetaData
	it := n.Properties()
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		switch p.Name {
		case "#address-cells":
			m.AddressCells = u8ptr(p.U32())
		case "#size-cells":
			m.SizeCells = u8ptr(p.U32())
		case "#clock-cells":
			m.ClockCells = u8ptr(p.U32())
		case "#interrupt-cells":
			m.InterruptCells = u8ptr(p.U32())
		case "interrupt-parent":
			ph := Phandle(p.U32())
			m.InterruptParent = &ph
		}
	}
	n.meta = m
	if rs, ok := n.nodeRanges(); ok {
		m.Ranges = rs
		n.meta = m
	}
	return m
}
