package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/fdtkit/cmd/fdtexplorer/logger"
	"github.com/joshuapare/fdtkit/fdt"
	"github.com/joshuapare/fdtkit/fdt/printer"
)

// InputMode represents different input modes
type InputMode int

const (
	NormalMode InputMode = iota
	SearchMode
)

// nodeEntry is one node of the blob, flattened in pre-order.
type nodeEntry struct {
	path     string
	name     string
	depth    int
	node     fdt.Node
	children int
}

// Model is the main application model
type Model struct {
	dtbPath string
	f       *fdt.FDT

	entries  []nodeEntry
	expanded map[string]bool
	visible  []int // indexes into entries, after collapse filtering
	cursor   int   // index into visible
	scroll   int   // first tree row on screen

	propView viewport.Model
	keys     KeyMap

	width  int
	height int

	inputMode   InputMode
	inputBuffer string

	searchQuery string
	matches     []int // entry indexes
	matchIdx    int

	showHelp      bool
	statusMessage string

	err error
}

// NewModel creates a new TUI model over an opened blob.
func NewModel(dtbPath string) (Model, error) {
	f, err := fdt.Open(dtbPath)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		dtbPath:  dtbPath,
		f:        f,
		expanded: map[string]bool{"/": true},
		keys:     DefaultKeyMap(),
		propView: viewport.New(0, 0),
	}
	m.loadEntries()
	m.rebuildVisible()
	m.refreshProps()

	logger.Info("blob loaded", "path", dtbPath, "nodes", len(m.entries))
	return m, nil
}

// loadEntries flattens the node tree in declaration order, recording each
// node's absolute path and child count.
func (m *Model) loadEntries() {
	var parents []int // entry index per depth
	it := m.f.AllNodes()
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		name := n.Name()
		path := "/"
		if n.Level > 0 {
			parent := m.entries[parents[n.Level-1]]
			if parent.path == "/" {
				path = "/" + name
			} else {
				path = parent.path + "/" + name
			}
			m.entries[parents[n.Level-1]].children++
		} else {
			name = "/"
		}

		m.entries = append(m.entries, nodeEntry{
			path:     path,
			name:     name,
			depth:    n.Level,
			node:     n,
			children: 0,
		})
		parents = append(parents[:n.Level], len(m.entries)-1)
	}
}

// rebuildVisible recomputes the rows shown in the tree pane from the
// expanded set. Entries under a collapsed node are skipped.
func (m *Model) rebuildVisible() {
	m.visible = m.visible[:0]
	hidden := -1 // hide entries deeper than this depth, -1 = show all
	for i, e := range m.entries {
		if hidden >= 0 && e.depth > hidden {
			continue
		}
		hidden = -1
		m.visible = append(m.visible, i)
		if e.children > 0 && !m.expanded[e.path] {
			hidden = e.depth
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selectedEntry returns the entry under the cursor.
func (m *Model) selectedEntry() *nodeEntry {
	if len(m.visible) == 0 {
		return nil
	}
	return &m.entries[m.visible[m.cursor]]
}

// refreshProps re-renders the property pane for the selected node.
func (m *Model) refreshProps() {
	e := m.selectedEntry()
	if e == nil {
		m.propView.SetContent("")
		return
	}

	var buf bytes.Buffer
	p := printer.New(m.f, &buf, printer.DefaultOptions())
	if err := p.PrintNode(e.path); err != nil {
		m.propView.SetContent(errorStyle.Render(err.Error()))
		return
	}
	writeDecoded(&buf, e.node)
	m.propView.SetContent(buf.String())
	m.propView.GotoTop()
}

// writeDecoded appends the semantic views below the raw properties.
func writeDecoded(buf *bytes.Buffer, node fdt.Node) {
	if regs, ok := node.Reg(); ok {
		fmt.Fprintf(buf, "\nReg (translated):\n")
		for r, ok := regs.Next(); ok; r, ok = regs.Next() {
			if r.HasSize {
				fmt.Fprintf(buf, "  0x%x + 0x%x (bus 0x%x)\n", r.Address, r.Size, r.ChildBusAddress)
			} else {
				fmt.Fprintf(buf, "  0x%x (bus 0x%x)\n", r.Address, r.ChildBusAddress)
			}
		}
	}

	if info, ok := node.Interrupts(); ok {
		ctrl, _ := node.InterruptParent()
		fmt.Fprintf(buf, "\nInterrupts (parent %s, %d cells each):\n", ctrl.Node.Name(), info.CellSize)
		for _, spec := range info.Specifiers() {
			fmt.Fprintf(buf, "  %v\n", spec)
		}
	}

	clocks := node.Clocks()
	first := true
	for ref, ok := clocks.Next(); ok; ref, ok = clocks.Next() {
		if first {
			fmt.Fprintf(buf, "\nClocks:\n")
			first = false
		}
		if len(ref.Specifier) > 0 {
			fmt.Fprintf(buf, "  %s %v\n", ref.Provider.Name(), ref.Specifier)
		} else {
			fmt.Fprintf(buf, "  %s\n", ref.Provider.Name())
		}
	}
}

// runSearch collects the entries whose name or compatible strings contain
// the query, case-insensitive.
func (m *Model) runSearch(query string) {
	m.searchQuery = query
	m.matches = m.matches[:0]
	m.matchIdx = 0
	if query == "" {
		return
	}
	q := strings.ToLower(query)
	for i, e := range m.entries {
		found := strings.Contains(strings.ToLower(e.name), q)
		if !found {
			for _, c := range e.node.Compatibles() {
				if strings.Contains(strings.ToLower(c), q) {
					found = true
					break
				}
			}
		}
		if found {
			m.matches = append(m.matches, i)
		}
	}
	logger.Debug("search complete", "query", query, "matches", len(m.matches))
}

// jumpToEntry expands every ancestor of the entry and moves the cursor onto it.
func (m *Model) jumpToEntry(entryIdx int) {
	path := m.entries[entryIdx].path
	segs := strings.Split(strings.Trim(path, "/"), "/")
	prefix := ""
	m.expanded["/"] = true
	for _, s := range segs[:max(len(segs)-1, 0)] {
		prefix += "/" + s
		m.expanded[prefix] = true
	}
	m.rebuildVisible()
	for vi, ei := range m.visible {
		if ei == entryIdx {
			m.cursor = vi
			break
		}
	}
	m.clampScroll()
	m.refreshProps()
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Close releases the blob mapping. Call when the TUI exits.
func (m *Model) Close() error {
	if m.f != nil {
		return m.f.Close()
	}
	return nil
}
