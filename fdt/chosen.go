package fdt

import "strings"

// Chosen is the /chosen node: boot-time parameters the firmware passes to
// the OS rather than a description of hardware.
type Chosen struct {
	Node Node
}

// Chosen returns the /chosen node when the blob has one.
func (f *FDT) Chosen() (Chosen, bool) {
	n, ok := f.FindByPath("/chosen")
	if !ok {
		return Chosen{}, false
	}
	return Chosen{Node: n}, true
}

// Bootargs returns the kernel command line.
func (c Chosen) Bootargs() (string, bool) {
	prop, ok := c.Node.FindProperty("bootargs")
	if !ok {
		return "", false
	}
	return prop.Str(), true
}

// StdoutPath returns the raw "stdout-path" value, options suffix included
// (for example "/soc/serial@10000000:115200n8").
func (c Chosen) StdoutPath() (string, bool) {
	prop, ok := c.Node.FindProperty("stdout-path")
	if !ok {
		// Older blobs use the linux, prefix.
		prop, ok = c.Node.FindProperty("linux,stdout-path")
		if !ok {
			return "", false
		}
	}
	return prop.Str(), true
}

// Stdout resolves "stdout-path" to the console node, stripping any options
// suffix after the colon.
func (c Chosen) Stdout(f *FDT) (Node, bool) {
	path, ok := c.StdoutPath()
	if !ok {
		return Node{}, false
	}
	if i := strings.IndexByte(path, ':'); i >= 0 {
		path = path[:i]
	}
	return f.FindByPath(path)
}

// Memory returns the translated "reg" entries of every /memory node: the
// physical RAM layout the blob declares.
func (f *FDT) Memory() []Reg {
	var out []Reg
	it := f.AllNodes()
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		if n.Level != 1 || n.UnitName() != "memory" {
			continue
		}
		regs, ok := n.Reg()
		if !ok {
			continue
		}
		for r, ok := regs.Next(); ok; r, ok = regs.Next() {
			out = append(out, r)
		}
	}
	return out
}
