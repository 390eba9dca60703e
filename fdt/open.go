package fdt

import (
	"fmt"

	"github.com/joshuapare/fdtkit/internal/mmfile"
)

// Open maps the blob at path read-only and parses it. Close releases the
// mapping; until then every derived Node stays valid.
func Open(path string) (*FDT, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("fdt: open %s: %w", path, err)
	}
	f, err := New(data)
	if err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("fdt: open %s: %w", path, err)
	}
	f.closer = cleanup
	return f, nil
}
