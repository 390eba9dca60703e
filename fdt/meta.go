package fdt

import "fmt"

// Phandle is an opaque 32-bit handle referencing another node anywhere in
// the tree. It is resolved only through the tree root's index, never by
// walking a subtree.
type Phandle uint32

func (p Phandle) String() string {
	return fmt.Sprintf("<%#x>", uint32(p))
}

// MetaData is the per-node inherited traversal context: the cell counts,
// ranges, and interrupt parent a node either declares itself or receives
// from its nearest declaring ancestor. It is computed once at node
// construction, immutable thereafter, and cheap to pass by value.
//
// A nil field means "not declared here". The effective value for any field
// is the node's own if present, else the pre-merged nearest-ancestor value.
type MetaData struct {
	AddressCells    *uint8
	SizeCells       *uint8
	ClockCells      *uint8
	InterruptCells  *uint8
	Ranges          *RangeSlice
	InterruptParent *Phandle
}

// merge returns child layered over parent: every field the child declares
// wins, every other field is inherited. Ranges are taken whole from one
// side or the other, never combined: translation is defined strictly
// between immediate parent and child.
func (parent MetaData) merge(child MetaData) MetaData {
	out := parent
	if child.AddressCells != nil {
		out.AddressCells = child.AddressCells
	}
	if child.SizeCells != nil {
		out.SizeCells = child.SizeCells
	}
	if child.ClockCells != nil {
		out.ClockCells = child.ClockCells
	}
	if child.InterruptCells != nil {
		out.InterruptCells = child.InterruptCells
	}
	if child.Ranges != nil {
		out.Ranges = child.Ranges
	}
	if child.InterruptParent != nil {
		out.InterruptParent = child.InterruptParent
	}
	return out
}

func u8ptr(v uint32) *uint8 {
	c := uint8(v)
	return &c
}
