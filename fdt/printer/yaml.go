package printer

import "gopkg.in/yaml.v3"

// printYAML renders a snapshot as YAML, reusing the JSON plain-value
// mapping so both structured formats agree on property shapes.
func (p *Printer) printYAML(n *treeNode) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(plainNode(n))
}
