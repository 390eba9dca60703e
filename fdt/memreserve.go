package fdt

// MemReservation is one entry of the memory reservation block: a physical
// address range firmware must not hand to the OS allocator.
type MemReservation struct {
	Address uint64
	Size    uint64
}

// MemoryReservations returns the reservation block entries. The block ends
// at the all-zero sentinel entry; a block that runs off the blob without a
// sentinel yields the entries read up to that point.
func (f *FDT) MemoryReservations() []MemReservation {
	r := newReader(f.data)
	r.off = int(f.header.OffMemRsvmap)
	if r.off > len(f.data) {
		return nil
	}

	var out []MemReservation
	for {
		addr, ok := r.TakeU64()
		if !ok {
			return out
		}
		size, ok := r.TakeU64()
		if !ok {
			return out
		}
		if addr == 0 && size == 0 {
			return out
		}
		out = append(out, MemReservation{Address: addr, Size: size})
	}
}
