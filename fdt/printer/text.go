package printer

import (
	"fmt"
	"strings"
)

// printText renders a snapshot as DTS-flavoured source.
func (p *Printer) printText(n *treeNode, depth int) error {
	indent := strings.Repeat(" ", depth*p.opts.IndentSize)
	if _, err := fmt.Fprintf(p.w, "%s%s {\n", indent, n.Name); err != nil {
		return err
	}
	inner := strings.Repeat(" ", (depth+1)*p.opts.IndentSize)
	for _, prop := range n.Properties {
		if _, err := fmt.Fprintf(p.w, "%s%s%s;\n", inner, prop.Name, p.renderValue(prop.Value)); err != nil {
			return err
		}
	}
	for _, child := range n.Children {
		if len(n.Properties) > 0 || len(n.Children) > 1 {
			if _, err := fmt.Fprintln(p.w); err != nil {
				return err
			}
		}
		if err := p.printText(child, depth+1); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(p.w, "%s};\n", indent)
	return err
}

// renderValue formats one classified value in DTS syntax, leading " = "
// included. A nil value is a bare boolean property and renders as nothing.
func (p *Printer) renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return fmt.Sprintf(" = %q", val)
	case []string:
		quoted := make([]string, len(val))
		for i, s := range val {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return " = " + strings.Join(quoted, ", ")
	case []uint32:
		parts := make([]string, len(val))
		for i, c := range val {
			parts[i] = fmt.Sprintf("0x%x", c)
		}
		return " = <" + strings.Join(parts, " ") + ">"
	case []byte:
		return " = " + p.renderBytes(val)
	default:
		return fmt.Sprintf(" = %v", val)
	}
}

func (p *Printer) renderBytes(b []byte) string {
	total := len(b)
	truncated := false
	if p.opts.MaxValueBytes > 0 && total > p.opts.MaxValueBytes {
		b = b[:p.opts.MaxValueBytes]
		truncated = true
	}
	parts := make([]string, len(b))
	for i, by := range b {
		parts[i] = fmt.Sprintf("%02x", by)
	}
	s := "[" + strings.Join(parts, " ") + "]"
	if truncated {
		s += fmt.Sprintf(" /* %d bytes total */", total)
	}
	return s
}
