// Package printer renders devicetree structures as DTS-flavoured text,
// JSON, or YAML.
package printer

import (
	"fmt"
	"io"

	"github.com/joshuapare/fdtkit/fdt"
	"github.com/joshuapare/fdtkit/internal/format"
)

const (
	DefaultIndentSize    = 4
	DefaultMaxDepth      = 0
	DefaultMaxValueBytes = 64
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs DTS-flavoured human-readable text.
	FormatText Format = "text"

	// FormatJSON outputs JSON.
	FormatJSON Format = "json"

	// FormatYAML outputs YAML.
	FormatYAML Format = "yaml"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json, yaml).
	// Default: FormatText
	Format Format

	// IndentSize is the number of spaces per indent level (text only).
	// Default: 4
	IndentSize int

	// MaxDepth limits recursion below the starting node (0 = unlimited).
	// Default: 0 (unlimited)
	MaxDepth int

	// ShowProperties includes property values in output.
	// Default: true
	ShowProperties bool

	// MaxValueBytes limits how many bytes of opaque binary payloads to
	// display. Longer values are truncated with a byte count. 0 = no limit.
	// Default: 64
	MaxValueBytes int
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:         FormatText,
		IndentSize:     DefaultIndentSize,
		MaxDepth:       DefaultMaxDepth,
		ShowProperties: true,
		MaxValueBytes:  DefaultMaxValueBytes,
	}
}

// Printer handles formatted output of devicetree structures.
type Printer struct {
	f    *fdt.FDT
	w    io.Writer
	opts Options
}

// New creates a Printer over an opened blob writing to w.
func New(f *fdt.FDT, w io.Writer, opts Options) *Printer {
	return &Printer{f: f, w: w, opts: opts}
}

// PrintTree prints the subtree rooted at path ("/" for the whole tree).
func (p *Printer) PrintTree(path string) error {
	start, ok := p.f.FindByPath(path)
	if !ok {
		return fmt.Errorf("printer: node %q: %w", path, format.ErrNotFound)
	}
	snap := p.snapshot(start)
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON(snap)
	case FormatYAML:
		return p.printYAML(snap)
	default:
		return p.printText(snap, 0)
	}
}

// PrintNode prints a single node without its children.
func (p *Printer) PrintNode(path string) error {
	start, ok := p.f.FindByPath(path)
	if !ok {
		return fmt.Errorf("printer: node %q: %w", path, format.ErrNotFound)
	}
	snap := p.snapshotOne(start)
	switch p.opts.Format {
	case FormatJSON:
		return p.printJSON(snap)
	case FormatYAML:
		return p.printYAML(snap)
	default:
		return p.printText(snap, 0)
	}
}
