package fdt

// InterruptController is a node viewed as the interrupt parent of another
// node. It wraps the resolved Node rather than a back-pointer: phandle
// references are graph edges resolved through the root index, so no
// ownership cycle exists.
type InterruptController struct {
	Node Node
}

// InterruptCells returns the controller's declared #interrupt-cells, the
// width of one interrupt specifier. Checks the controller's own declaration
// first (captured in its metadata at construction), then the property
// directly for controllers nested under odd parents.
func (c InterruptController) InterruptCells() (uint8, bool) {
	if c.Node.meta.InterruptCells != nil {
		return *c.Node.meta.InterruptCells, true
	}
	prop, ok := c.Node.FindProperty("#interrupt-cells")
	if !ok {
		return 0, false
	}
	return uint8(prop.U32()), true
}

// InterruptInfo pairs a node's raw "interrupts" property with the specifier
// width its controller declares. Decoding the specifier fields themselves
// (edge/level flags, IRQ numbers) is controller-specific and left to the
// consumer; Specifiers gives them cell-grouped.
type InterruptInfo struct {
	CellSize uint8
	Prop     Property
}

// Specifiers returns the property payload split into CellSize-wide groups
// of 32-bit cells. A trailing partial group is dropped.
func (i InterruptInfo) Specifiers() [][]uint32 {
	if i.CellSize == 0 {
		return nil
	}
	var out [][]uint32
	data := i.Prop.Data.Clone()
	for {
		group := make([]uint32, 0, i.CellSize)
		for c := uint8(0); c < i.CellSize; c++ {
			v, ok := data.TakeU32()
			if !ok {
				return out
			}
			group = append(group, v)
		}
		out = append(out, group)
	}
}
