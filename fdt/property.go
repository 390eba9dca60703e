package fdt

// Property is a named byte-string value attached to a node. Data is an
// independent cursor over the raw payload, cloned from the node's reader at
// discovery time; advancing it never disturbs sibling properties.
type Property struct {
	Name string
	Data Reader
}

// U32 reads the first big-endian uint32 of the payload without advancing
// Data. Returns 0 when the payload is shorter than 4 bytes.
func (p Property) U32() uint32 {
	d := p.Data.Clone()
	v, _ := d.TakeU32()
	return v
}

// U64 reads the first big-endian uint64 of the payload without advancing
// Data. Returns 0 when the payload is shorter than 8 bytes.
func (p Property) U64() uint64 {
	d := p.Data.Clone()
	v, _ := d.TakeU64()
	return v
}

// Str reads the leading NUL-terminated string of the payload without
// advancing Data. Returns "" on decode failure.
func (p Property) Str() string {
	d := p.Data.Clone()
	s, _ := d.TakeStr()
	return s
}

// Bytes returns the raw payload.
func (p Property) Bytes() []byte {
	return p.Data.Rest()
}
