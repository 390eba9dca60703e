package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/joshuapare/fdtkit/fdt"
)

var (
	treeDepth int
	treePath  string
	treeASCII bool
)

func init() {
	cmd := newTreeCmd()
	cmd.Flags().IntVar(&treeDepth, "depth", 0, "Maximum depth (0 = unlimited)")
	cmd.Flags().StringVar(&treePath, "path", "/", "Start from a specific subtree")
	cmd.Flags().BoolVar(&treeASCII, "ascii", false, "ASCII-only connectors")
	rootCmd.AddCommand(cmd)
}

func newTreeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree <dtb>",
		Short: "Display the node hierarchy",
		Long: `The tree command displays the node hierarchy without property values.

Example:
  fdtctl tree board.dtb
  fdtctl tree board.dtb --path /soc --depth 2
  fdtctl tree board.dtb --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(args)
		},
	}
	return cmd
}

type treeEntry struct {
	Name     string       `json:"name"`
	Children []*treeEntry `json:"children,omitempty"`
}

func runTree(args []string) error {
	dtbPath := args[0]

	printVerbose("Opening blob: %s\n", dtbPath)

	f, err := fdt.Open(dtbPath)
	if err != nil {
		return fmt.Errorf("failed to open blob: %w", err)
	}
	defer f.Close()

	root, err := collectTree(f, treePath, treeDepth)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(root)
	}

	printInfo("%s\n", treeNameStyle().Render(root.Name))
	printBranches(root, "")
	return nil
}

// Styles are no-ops under --no-color so output stays pipe-friendly.

func treeNameStyle() lipgloss.Style {
	if noColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#00D7FF"))
}

func treeConnectorStyle() lipgloss.Style {
	if noColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
}

// collectTree materializes the names of the subtree at path. The node stream
// is pre-order, so one pass with a parent stack rebuilds the shape.
func collectTree(f *fdt.FDT, path string, maxDepth int) (*treeEntry, error) {
	start, ok := f.FindByPath(path)
	if !ok {
		return nil, fmt.Errorf("node %q not found", path)
	}

	name := start.Name()
	if name == "" {
		name = "/"
	}
	root := &treeEntry{Name: name}

	it := f.AllNodes()
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		if !n.Equal(start) {
			continue
		}
		base := n.Level
		stack := []*treeEntry{root}
		for c, ok := it.Next(); ok; c, ok = it.Next() {
			if c.Level <= base {
				break
			}
			depth := c.Level - base
			if maxDepth > 0 && depth > maxDepth {
				continue
			}
			if depth > len(stack) {
				continue
			}
			child := &treeEntry{Name: c.Name()}
			stack[depth-1].Children = append(stack[depth-1].Children, child)
			stack = append(stack[:depth], child)
		}
		break
	}
	return root, nil
}

func printBranches(n *treeEntry, prefix string) {
	mid, last, bar, pad := "├── ", "└── ", "│   ", "    "
	if treeASCII {
		mid, last, bar = "|-- ", "`-- ", "|   "
	}
	for i, child := range n.Children {
		connector, extend := mid, bar
		if i == len(n.Children)-1 {
			connector, extend = last, pad
		}
		printInfo("%s%s\n",
			treeConnectorStyle().Render(prefix+connector),
			treeNameStyle().Render(child.Name))
		printBranches(child, prefix+extend)
	}
}
