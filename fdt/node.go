package fdt

import (
	"errors"
	"fmt"
	"io"
)

// Node is one tree node. It borrows the blob and the FDT root, owns no heap
// memory beyond its cursor position, and is cheap to copy. Level is the
// tree depth; the root node is level 0.
type Node struct {
	Level int

	name string
	fdt  *FDT
	body Reader // positioned just past the node's own name

	// meta holds only what this node declares itself; metaParents holds
	// the nearest-ancestor effective values, pre-merged during tree
	// construction. The effective value for any field is meta's if
	// present, else metaParents'.
	meta        MetaData
	metaParents MetaData
}

// newNode builds a node from a cursor positioned right after its name. The
// caller has already validated the token structure; no extra validation
// happens here.
func newNode(f *FDT, level int, name string, body Reader, metaParents, meta MetaData) Node {
	return Node{
		Level:       level,
		name:        name,
		fdt:         f,
		body:        body,
		meta:        meta,
		metaParents: metaParents,
	}
}

// Name returns the node name, unit address included ("serial@10000000").
func (n Node) Name() string { return n.name }

// Equal reports whether two Nodes denote the same node of the same tree.
// Position in the structure block identifies a node uniquely.
func (n Node) Equal(o Node) bool {
	return n.fdt == o.fdt && n.body.off == o.body.off
}

// UnitName returns the node name with any unit address stripped.
func (n Node) UnitName() string {
	for i := 0; i < len(n.name); i++ {
		if n.name[i] == '@' {
			return n.name[:i]
		}
	}
	return n.name
}

// Meta returns the node's own declared metadata.
func (n Node) Meta() MetaData { return n.meta }

// Properties returns a lazy, restartable iterator over the node's
// properties. Each call starts a fresh cursor clone, so two iterations of
// the same node yield identical sequences and never interfere.
func (n Node) Properties() *PropertyIterator {
	return &PropertyIterator{fdt: n.fdt, reader: n.body.Clone()}
}

// FindProperty returns the first property with the given name. The format
// does not forbid duplicates; only the first occurrence is meaningful.
func (n Node) FindProperty(name string) (Property, bool) {
	it := n.Properties()
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// AddressCells returns the effective #address-cells: the node's own value
// if declared, else the nearest ancestor's. metaParents is already merged,
// so the lookup never walks the tree.
func (n Node) AddressCells() (uint8, bool) {
	if n.meta.AddressCells != nil {
		return *n.meta.AddressCells, true
	}
	if n.metaParents.AddressCells != nil {
		return *n.metaParents.AddressCells, true
	}
	return 0, false
}

// SizeCells returns the effective #size-cells, resolved like AddressCells.
func (n Node) SizeCells() (uint8, bool) {
	if n.meta.SizeCells != nil {
		return *n.meta.SizeCells, true
	}
	if n.metaParents.SizeCells != nil {
		return *n.metaParents.SizeCells, true
	}
	return 0, false
}

// Ranges iterates the node's effective "ranges": its own declaration if it
// has one, otherwise the inherited sequence. The two are never merged.
// Returns an empty iterator when neither exists.
func (n Node) Ranges() *RangeIterator {
	slice := n.meta.Ranges
	if slice == nil {
		slice = n.metaParents.Ranges
	}
	if slice == nil {
		return &RangeIterator{}
	}
	return slice.Iter()
}

// Reg returns an iterator over the node's "reg" entries with addresses
// translated through the effective ranges. Returns false when the node has
// no "reg" property.
//
// Calling Reg on a node whose effective #address-cells or #size-cells
// cannot be resolved is a caller-contract violation and panics: the
// devicetree specification mandates the root declares both, so this is
// unreachable on a well-formed blob.
func (n Node) Reg() (*RegIterator, bool) {
	prop, ok := n.FindProperty("reg")
	if !ok {
		return nil, false
	}
	ac, ok := n.AddressCells()
	if !ok {
		panic(fmt.Sprintf("fdt: #address-cells unresolved decoding reg of %q", n.name))
	}
	sc, ok := n.SizeCells()
	if !ok {
		panic(fmt.Sprintf("fdt: #size-cells unresolved decoding reg of %q", n.name))
	}
	return &RegIterator{
		addressCells: ac,
		sizeCells:    sc,
		prop:         prop,
		node:         n,
	}, true
}

// nodeRanges returns the node's own "ranges" property as a typed slice. The
// three cell widths are independent: this node's #address-cells and
// #size-cells, and the parent's effective #address-cells. Only safe to call
// once the node's metadata resolution is complete; unresolved cell counts
// on a node that declares ranges are a caller-contract violation.
func (n Node) nodeRanges() (*RangeSlice, bool) {
	prop, ok := n.FindProperty("ranges")
	if !ok {
		return nil, false
	}
	if n.meta.AddressCells == nil || n.meta.SizeCells == nil {
		panic(fmt.Sprintf("fdt: %q declares ranges without #address-cells/#size-cells", n.name))
	}
	if n.metaParents.AddressCells == nil {
		panic(fmt.Sprintf("fdt: parent #address-cells unresolved decoding ranges of %q", n.name))
	}
	return newRangeSlice(
		*n.meta.AddressCells,
		*n.metaParents.AddressCells,
		*n.meta.SizeCells,
		prop.Data.Clone(),
	), true
}

// Phandle returns the node's own phandle. Both the modern "phandle" and the
// legacy "linux,phandle" spellings are honored.
func (n Node) Phandle() (Phandle, bool) {
	prop, ok := n.FindProperty("phandle")
	if !ok {
		prop, ok = n.FindProperty("linux,phandle")
	}
	if !ok {
		return 0, false
	}
	return Phandle(prop.U32()), true
}

// nodeInterruptParent returns the raw, unresolved phandle of the node's own
// "interrupt-parent" property. Used only while building metadata.
func (n Node) nodeInterruptParent() (Phandle, bool) {
	prop, ok := n.FindProperty("interrupt-parent")
	if !ok {
		return 0, false
	}
	return Phandle(prop.U32()), true
}

// InterruptParent resolves the effective interrupt parent (own declaration
// if present, else inherited) through the root's phandle index. Returns
// false both when no ancestor declares one and when the phandle is
// dangling: either way there is no controller, which is not an error.
func (n Node) InterruptParent() (InterruptController, bool) {
	ph := n.meta.InterruptParent
	if ph == nil {
		ph = n.metaParents.InterruptParent
	}
	if ph == nil {
		return InterruptController{}, false
	}
	node, ok := n.fdt.NodeByPhandle(*ph)
	if !ok {
		return InterruptController{}, false
	}
	return InterruptController{Node: node}, true
}

// Interrupts returns the node's interrupt specifiers as an opaque
// (cell-size, raw property) pair for an external decoder. Requires both an
// "interrupts" property and a resolvable interrupt parent declaring
// #interrupt-cells; absent either, returns false.
func (n Node) Interrupts() (InterruptInfo, bool) {
	prop, ok := n.FindProperty("interrupts")
	if !ok {
		return InterruptInfo{}, false
	}
	ctrl, ok := n.InterruptParent()
	if !ok {
		return InterruptInfo{}, false
	}
	cells, ok := ctrl.InterruptCells()
	if !ok {
		return InterruptInfo{}, false
	}
	return InterruptInfo{CellSize: cells, Prop: prop}, true
}

// Compatible returns an iterator over the "compatible" strings that
// surfaces decode failures. Clean end-of-data and an empty decoded string
// both terminate the sequence with io.EOF, which tolerates the trailing
// padding some producers emit. Returns false when the property is missing.
func (n Node) Compatible() (*CompatibleIterator, bool) {
	prop, ok := n.FindProperty("compatible")
	if !ok {
		return nil, false
	}
	return &CompatibleIterator{data: prop.Data.Clone()}, true
}

// Compatibles collects the "compatible" strings best-effort: it stops
// silently at the first decode failure or when the property is absent.
// Suited to matching, not diagnostics.
func (n Node) Compatibles() []string {
	it, ok := n.Compatible()
	if !ok {
		return nil
	}
	var out []string
	for {
		s, err := it.Next()
		if err != nil {
			return out
		}
		out = append(out, s)
	}
}

// IsCompatible reports whether any "compatible" string equals with.
func (n Node) IsCompatible(with string) bool {
	for _, c := range n.Compatibles() {
		if c == with {
			return true
		}
	}
	return false
}

// ClockFrequency returns the "clock-frequency" value. Returns false when
// the property is missing.
func (n Node) ClockFrequency() (uint32, bool) {
	prop, ok := n.FindProperty("clock-frequency")
	if !ok {
		return 0, false
	}
	return prop.U32(), true
}

// Clocks iterates the clock references of the node's "clocks" property,
// resolving each provider phandle through the root index. Returns an empty
// iterator when the property is absent.
func (n Node) Clocks() *ClockIterator {
	prop, ok := n.FindProperty("clocks")
	if !ok {
		return &ClockIterator{}
	}
	return &ClockIterator{fdt: n.fdt, data: prop.Data.Clone(), live: true}
}

// PropertyIterator is a lazy walk over one node's properties. A property
// token yields a decoded Property; nop tokens are skipped; any other token
// (child begin, node end, tree end) ends the sequence, since a node's
// properties always precede its first child in the stream.
type PropertyIterator struct {
	fdt    *FDT
	reader Reader
}

// Next returns the next property.
func (it *PropertyIterator) Next() (Property, bool) {
	for {
		tok, ok := it.reader.TakeToken()
		if !ok {
			return Property{}, false
		}
		switch tok {
		case TokenProp:
			return it.reader.TakeProp(it.fdt)
		case TokenNop:
			// skip
		default:
			return Property{}, false
		}
	}
}

// CompatibleIterator yields the strings of a "compatible" property one at a
// time. Next returns io.EOF at clean end of data or on an empty decoded
// string, and a real error for malformed bytes.
type CompatibleIterator struct {
	data Reader
}

// Next returns the next compatible string.
func (it *CompatibleIterator) Next() (string, error) {
	s, err := it.data.TakeStr()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", err
	}
	if s == "" {
		return "", io.EOF
	}
	return s, nil
}
