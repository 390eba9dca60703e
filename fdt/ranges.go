package fdt

import "math/bits"

// Range is one decoded "ranges" entry: addresses in the interval
// [ChildBusAddress, ChildBusAddress+Size) on the child bus map to the
// parent bus starting at ParentBusAddress.
type Range struct {
	ChildBusAddress  uint64
	ParentBusAddress uint64
	Size             uint64
}

// contains reports whether addr falls inside the range. The interval end is
// computed carry-aware so a range reaching the top of the address space
// still matches.
func (r Range) contains(addr uint64) bool {
	if addr < r.ChildBusAddress {
		return false
	}
	end, carry := bits.Add64(r.ChildBusAddress, r.Size, 0)
	return carry != 0 || addr < end
}

// translate maps a child-bus address into the parent's space.
func (r Range) translate(addr uint64) uint64 {
	return addr - r.ChildBusAddress + r.ParentBusAddress
}

// RangeSlice is an untranslated "ranges" property viewed as a typed slice.
// The three cell widths are independent: the declaring node's own
// #address-cells and #size-cells, and the parent's effective #address-cells.
type RangeSlice struct {
	childAddressCells  uint8
	parentAddressCells uint8
	sizeCells          uint8
	data               Reader
}

func newRangeSlice(childAddressCells, parentAddressCells, sizeCells uint8, data Reader) *RangeSlice {
	return &RangeSlice{
		childAddressCells:  childAddressCells,
		parentAddressCells: parentAddressCells,
		sizeCells:          sizeCells,
		data:               data,
	}
}

// Iter returns a fresh iterator over the entries. Each iterator holds its
// own cursor clone; abandoning one mid-way never affects another.
func (s *RangeSlice) Iter() *RangeIterator {
	return &RangeIterator{slice: s, data: s.data.Clone()}
}

// RangeIterator yields decoded Range entries. A zero RangeIterator is an
// empty sequence.
type RangeIterator struct {
	slice *RangeSlice
	data  Reader
}

// Next returns the next entry. The sequence ends when fewer bytes remain
// than one full entry demands.
func (it *RangeIterator) Next() (Range, bool) {
	if it.slice == nil {
		return Range{}, false
	}
	child, ok := it.data.TakeByCellSize(it.slice.childAddressCells)
	if !ok {
		return Range{}, false
	}
	parent, ok := it.data.TakeByCellSize(it.slice.parentAddressCells)
	if !ok {
		return Range{}, false
	}
	size, ok := it.data.TakeByCellSize(it.slice.sizeCells)
	if !ok {
		return Range{}, false
	}
	return Range{ChildBusAddress: child, ParentBusAddress: parent, Size: size}, true
}

// Reg is one decoded "reg" entry. Address is the child-bus address
// translated through the node's effective ranges; ChildBusAddress is the
// raw value as written. Size is only meaningful when HasSize is true: a
// node under a zero-#size-cells bus has entries with no size field at all,
// which is distinct from a zero-valued size.
type Reg struct {
	Address         uint64
	ChildBusAddress uint64
	Size            uint64
	HasSize         bool
}

// RegIterator yields decoded Reg entries from a node's "reg" property.
type RegIterator struct {
	addressCells uint8
	sizeCells    uint8
	prop         Property
	node         Node
}

// Next returns the next entry with its address translated.
//
// Every matching range overwrites the translated address in iteration
// order, so the last matching entry wins on overlap. That tie-break is
// deliberate and load-bearing for malformed-but-observed blobs; do not
// short-circuit the scan. An address matching no range translates to
// itself, the common case for leaf buses with no remapping.
func (it *RegIterator) Next() (Reg, bool) {
	child, ok := it.prop.Data.TakeByCellSize(it.addressCells)
	if !ok {
		return Reg{}, false
	}

	address := child
	ranges := it.node.Ranges()
	for r, ok := ranges.Next(); ok; r, ok = ranges.Next() {
		if r.contains(child) {
			address = r.translate(child)
		}
	}

	reg := Reg{Address: address, ChildBusAddress: child}
	if it.sizeCells > 0 {
		size, ok := it.prop.Data.TakeByCellSize(it.sizeCells)
		if !ok {
			return Reg{}, false
		}
		reg.Size = size
		reg.HasSize = true
	}
	return reg, true
}
