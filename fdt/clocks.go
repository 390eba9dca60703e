package fdt

// ClockRef is one entry of a "clocks" property: the provider node the
// phandle resolved to, plus the provider-defined specifier cells (the clock
// selector, as many cells as the provider's #clock-cells declares).
// Interpreting the specifier is provider-specific and out of scope here.
type ClockRef struct {
	Provider  Node
	Specifier []uint32
}

// ClockIterator yields ClockRef entries. A zero ClockIterator is an empty
// sequence. The sequence ends at the first entry whose phandle does not
// resolve or whose specifier cells run past the payload.
type ClockIterator struct {
	fdt  *FDT
	data Reader
	live bool
}

// Next returns the next clock reference.
func (it *ClockIterator) Next() (ClockRef, bool) {
	if !it.live {
		return ClockRef{}, false
	}
	ph, ok := it.data.TakeU32()
	if !ok {
		it.live = false
		return ClockRef{}, false
	}
	provider, ok := it.fdt.NodeByPhandle(Phandle(ph))
	if !ok {
		it.live = false
		return ClockRef{}, false
	}

	var cells uint8
	if provider.meta.ClockCells != nil {
		cells = *provider.meta.ClockCells
	}
	spec := make([]uint32, 0, cells)
	for c := uint8(0); c < cells; c++ {
		v, ok := it.data.TakeU32()
		if !ok {
			it.live = false
			return ClockRef{}, false
		}
		spec = append(spec, v)
	}
	return ClockRef{Provider: provider, Specifier: spec}, true
}
