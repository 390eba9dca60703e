package fdt

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"unicode/utf8"

	"github.com/joshuapare/fdtkit/internal/buf"
	"github.com/joshuapare/fdtkit/internal/format"
)

// ErrInvalidString indicates string bytes that were not valid UTF-8.
var ErrInvalidString = errors.New("fdt: invalid string")

// Token is one structural token from the FDT structure block.
type Token uint32

const (
	TokenBeginNode Token = format.TokenBeginNode
	TokenEndNode   Token = format.TokenEndNode
	TokenProp      Token = format.TokenProp
	TokenNop       Token = format.TokenNop
	TokenEnd       Token = format.TokenEnd
)

func (t Token) String() string {
	switch t {
	case TokenBeginNode:
		return "BEGIN_NODE"
	case TokenEndNode:
		return "END_NODE"
	case TokenProp:
		return "PROP"
	case TokenNop:
		return "NOP"
	case TokenEnd:
		return "END"
	default:
		return "UNKNOWN"
	}
}

// Reader is a cursor over a byte region of the blob. It is a value type:
// copying a Reader yields an independent cursor over the same backing bytes,
// and advancing the copy never disturbs the original. Offset 0 of a Reader
// is the start of its region, so token alignment is relative to the region.
type Reader struct {
	data []byte
	off  int
}

func newReader(data []byte) Reader {
	return Reader{data: data}
}

// Clone returns an independent cursor at the same position. O(1).
func (r Reader) Clone() Reader { return r }

// Remaining returns the number of unread bytes.
func (r Reader) Remaining() int { return len(r.data) - r.off }

// Rest returns the unread bytes without advancing.
func (r Reader) Rest() []byte { return r.data[r.off:] }

// Take consumes n bytes and returns them as a view into the blob.
func (r *Reader) Take(n int) ([]byte, bool) {
	b, ok := buf.Slice(r.data, r.off, n)
	if !ok {
		return nil, false
	}
	r.off += n
	return b, true
}

// TakeU32 consumes one big-endian uint32.
func (r *Reader) TakeU32() (uint32, bool) {
	b, ok := r.Take(format.CellSize)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint32(b), true
}

// TakeU64 consumes one big-endian uint64.
func (r *Reader) TakeU64() (uint64, bool) {
	b, ok := r.Take(8)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint64(b), true
}

// TakeToken consumes one structure-block token.
func (r *Reader) TakeToken() (Token, bool) {
	v, ok := r.TakeU32()
	if !ok {
		return 0, false
	}
	return Token(v), true
}

// TakeStr consumes a NUL-terminated string. A string that runs to the end of
// the region with no terminator is returned whole: property payloads carry
// their exact length, so the region boundary is the terminator. Returns
// io.EOF when no bytes remain, ErrInvalidString on non-UTF-8 bytes.
func (r *Reader) TakeStr() (string, error) {
	if r.Remaining() == 0 {
		return "", io.EOF
	}
	rest := r.data[r.off:]
	var s []byte
	if i := bytes.IndexByte(rest, 0); i >= 0 {
		s = rest[:i]
		r.off += i + 1
	} else {
		s = rest
		r.off = len(r.data)
	}
	if !utf8.Valid(s) {
		return "", ErrInvalidString
	}
	return string(s), nil
}

// TakeByCellSize consumes a cell-encoded integer of the given width (1 or 2
// 32-bit cells). Fails when fewer bytes remain than the width demands, or
// when the width is outside the supported range.
func (r *Reader) TakeByCellSize(cells uint8) (uint64, bool) {
	if cells < 1 || cells > format.MaxCellCount {
		return 0, false
	}
	var v uint64
	for i := uint8(0); i < cells; i++ {
		w, ok := r.TakeU32()
		if !ok {
			return 0, false
		}
		v = v<<32 | uint64(w)
	}
	return v, true
}

// TakeProp decodes the length/name-offset pair following a TokenProp and
// returns the property with an independent cursor restricted to exactly its
// payload. The reader advances past the padded payload.
func (r *Reader) TakeProp(f *FDT) (Property, bool) {
	length, ok := r.TakeU32()
	if !ok {
		return Property{}, false
	}
	nameOff, ok := r.TakeU32()
	if !ok {
		return Property{}, false
	}
	name, err := f.stringAt(nameOff)
	if err != nil {
		return Property{}, false
	}
	payload, ok := buf.Slice(r.data, r.off, int(length))
	if !ok {
		return Property{}, false
	}
	r.off += alignUp(int(length))
	if r.off > len(r.data) {
		r.off = len(r.data)
	}
	return Property{Name: name, Data: newReader(payload)}, true
}

// SkipProp advances past a property body without decoding its name.
func (r *Reader) SkipProp() bool {
	length, ok := r.TakeU32()
	if !ok {
		return false
	}
	if _, ok := r.TakeU32(); !ok { // name offset
		return false
	}
	if !buf.Has(r.data, r.off, int(length)) {
		return false
	}
	r.off += alignUp(int(length))
	if r.off > len(r.data) {
		r.off = len(r.data)
	}
	return true
}

// AlignUp advances the cursor to the next token boundary.
func (r *Reader) AlignUp() {
	r.off = alignUp(r.off)
	if r.off > len(r.data) {
		r.off = len(r.data)
	}
}

func alignUp(n int) int {
	if rem := n % format.TokenAlignment; rem != 0 {
		return n + format.TokenAlignment - rem
	}
	return n
}
