package printer

import (
	"encoding/json"
	"fmt"
)

// printJSON renders a snapshot as indented JSON. Properties become a name
// keyed object; opaque byte payloads render as a hex string so the output
// stays readable instead of base64.
func (p *Printer) printJSON(n *treeNode) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(plainNode(n))
}

func plainNode(n *treeNode) map[string]any {
	out := map[string]any{"name": n.Name}
	if len(n.Properties) > 0 {
		props := make(map[string]any, len(n.Properties))
		for _, prop := range n.Properties {
			props[prop.Name] = plainValue(prop.Value)
		}
		out["properties"] = props
	}
	if len(n.Children) > 0 {
		children := make([]map[string]any, len(n.Children))
		for i, c := range n.Children {
			children[i] = plainNode(c)
		}
		out["children"] = children
	}
	return out
}

// plainValue maps a classified value to JSON and YAML friendly types. Bare
// boolean properties become true, cells become hex strings, raw bytes
// become one hex string.
func plainValue(v any) any {
	switch val := v.(type) {
	case nil:
		return true
	case []uint32:
		cells := make([]string, len(val))
		for i, c := range val {
			cells[i] = fmt.Sprintf("0x%x", c)
		}
		return cells
	case []byte:
		return fmt.Sprintf("%x", val)
	default:
		return val
	}
}
