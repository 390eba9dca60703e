package printer

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/fdtkit/fdt"
	"github.com/joshuapare/fdtkit/internal/buf"
	"github.com/joshuapare/fdtkit/internal/format"
)

// classifyValue picks a display shape for a property payload. The wire
// format carries no type information, so this mirrors the conventions dtc
// uses: empty payload means a boolean marker, NUL-terminated printable text
// means a string list, a multiple of the cell size means u32 cells, and
// anything else stays opaque bytes.
func classifyValue(p fdt.Property) any {
	raw := p.Bytes()
	if len(raw) == 0 {
		return nil
	}
	if ss, ok := stringList(raw); ok {
		if len(ss) == 1 {
			return ss[0]
		}
		return ss
	}
	if len(raw)%format.CellSize == 0 {
		cells := make([]uint32, 0, len(raw)/format.CellSize)
		for i := 0; i < len(raw); i += format.CellSize {
			cells = append(cells, buf.U32BE(raw[i:]))
		}
		return cells
	}
	return raw
}

// stringList decodes a payload as one or more NUL-terminated strings. Every
// segment must be nonempty printable text and the payload must end on a
// terminator, otherwise the payload is not a string list.
func stringList(raw []byte) ([]string, bool) {
	if raw[len(raw)-1] != 0 {
		return nil, false
	}
	var out []string
	start := 0
	for i, b := range raw {
		if b != 0 {
			continue
		}
		s, ok := decodeText(raw[start:i])
		if !ok || s == "" {
			return nil, false
		}
		out = append(out, s)
		start = i + 1
	}
	return out, true
}

// decodeText turns bytes into displayable text. Valid UTF-8 passes through;
// anything else falls back to Latin-1, which some firmware emits in model
// and serial strings. Control characters disqualify either way.
func decodeText(b []byte) (string, bool) {
	s := string(b)
	if !utf8.Valid(b) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
		if err != nil {
			return "", false
		}
		s = string(decoded)
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return "", false
		}
	}
	return s, true
}
