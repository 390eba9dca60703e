package printer

import "github.com/joshuapare/fdtkit/fdt"

// treeNode is the renderable view of one node. Value is one of: nil (bare
// boolean property), string, []string, []uint32 (cells), []byte (opaque).
type treeNode struct {
	Name       string
	Properties []treeProp
	Children   []*treeNode
}

type treeProp struct {
	Name  string
	Value any
}

// snapshot materializes the subtree rooted at start, honoring MaxDepth.
// The structure-block stream is pre-order, so a single pass with a parent
// stack rebuilds the hierarchy.
func (p *Printer) snapshot(start fdt.Node) *treeNode {
	root := p.makeNode(start)

	it := p.f.AllNodes()
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		if !n.Equal(start) {
			continue
		}
		base := n.Level
		stack := []*treeNode{root}
		for c, ok := it.Next(); ok; c, ok = it.Next() {
			if c.Level <= base {
				break // left the subtree
			}
			depth := c.Level - base
			if p.opts.MaxDepth > 0 && depth > p.opts.MaxDepth {
				continue
			}
			if depth > len(stack) {
				continue // parent was depth-limited away
			}
			child := p.makeNode(c)
			stack[depth-1].Children = append(stack[depth-1].Children, child)
			stack = append(stack[:depth], child)
		}
		break
	}
	return root
}

// snapshotOne materializes a single node without children.
func (p *Printer) snapshotOne(n fdt.Node) *treeNode {
	return p.makeNode(n)
}

func (p *Printer) makeNode(n fdt.Node) *treeNode {
	name := n.Name()
	if name == "" {
		name = "/"
	}
	out := &treeNode{Name: name}
	if !p.opts.ShowProperties {
		return out
	}
	it := n.Properties()
	for prop, ok := it.Next(); ok; prop, ok = it.Next() {
		out.Properties = append(out.Properties, treeProp{
			Name:  prop.Name,
			Value: classifyValue(prop),
		})
	}
	return out
}
