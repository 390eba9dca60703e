package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fdtkit/fdt"
)

var (
	searchCompatible    bool
	searchRegex         bool
	searchCaseSensitive bool
	searchMaxResults    int
)

func init() {
	cmd := newSearchCmd()
	cmd.Flags().BoolVar(&searchCompatible, "compatible", false, "Match an exact compatible string instead of node names")
	cmd.Flags().BoolVar(&searchRegex, "regex", false, "Use regex pattern")
	cmd.Flags().BoolVar(&searchCaseSensitive, "case-sensitive", false, "Case-sensitive search")
	cmd.Flags().IntVar(&searchMaxResults, "max-results", 0, "Limit results (0 = unlimited)")
	rootCmd.AddCommand(cmd)
}

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <dtb> <pattern>",
		Short: "Search for nodes by name or compatible string",
		Long: `The search command finds nodes whose name or "compatible" strings match
a pattern (case-insensitive by default). With --compatible the pattern
must equal one of the node's compatible strings exactly.

Example:
  fdtctl search board.dtb serial
  fdtctl search board.dtb "^pcie" --regex --case-sensitive
  fdtctl search board.dtb ns16550a --compatible`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(args)
		},
	}
	return cmd
}

type nodeMatch struct {
	Path       string   `json:"path"`
	Compatible []string `json:"compatible,omitempty"`
}

func runSearch(args []string) error {
	dtbPath := args[0]
	pattern := args[1]

	printVerbose("Opening blob: %s\n", dtbPath)
	printVerbose("Searching for pattern: %s\n", pattern)

	f, err := fdt.Open(dtbPath)
	if err != nil {
		return fmt.Errorf("failed to open blob: %w", err)
	}
	defer f.Close()

	var re *regexp.Regexp
	if searchRegex {
		flags := ""
		if !searchCaseSensitive {
			flags = "(?i)"
		}
		re, err = regexp.Compile(flags + pattern)
		if err != nil {
			return fmt.Errorf("invalid regex pattern: %w", err)
		}
	}

	matchFunc := func(text string) bool {
		if searchRegex {
			return re.MatchString(text)
		}
		if searchCaseSensitive {
			return strings.Contains(text, pattern)
		}
		return strings.Contains(strings.ToLower(text), strings.ToLower(pattern))
	}

	var matches []nodeMatch
	if searchCompatible {
		for _, n := range f.FindCompatible(pattern) {
			matches = append(matches, nodeMatch{
				Path:       nodePath(f, n),
				Compatible: n.Compatibles(),
			})
		}
		if searchMaxResults > 0 && len(matches) > searchMaxResults {
			matches = matches[:searchMaxResults]
		}
	} else {
		it := f.AllNodes()
		for n, ok := it.Next(); ok; n, ok = it.Next() {
			if searchMaxResults > 0 && len(matches) >= searchMaxResults {
				break
			}
			found := matchFunc(n.Name())
			if !found {
				for _, c := range n.Compatibles() {
					if matchFunc(c) {
						found = true
						break
					}
				}
			}
			if found {
				matches = append(matches, nodeMatch{
					Path:       nodePath(f, n),
					Compatible: n.Compatibles(),
				})
			}
		}
	}

	if jsonOut {
		return printJSON(matches)
	}

	printInfo("\nSearching for \"%s\" in %s...\n\n", pattern, dtbPath)
	for _, m := range matches {
		if len(m.Compatible) > 0 {
			printInfo("  %s (%s)\n", m.Path, strings.Join(m.Compatible, ", "))
		} else {
			printInfo("  %s\n", m.Path)
		}
	}
	if searchMaxResults > 0 && len(matches) >= searchMaxResults {
		printInfo("  ... (limited to %d results)\n", searchMaxResults)
	}
	printInfo("\nTotal: %d nodes\n", len(matches))
	return nil
}

// nodePath reconstructs the absolute path of a node by replaying the
// pre-order walk with a name stack up to the node's position.
func nodePath(f *fdt.FDT, target fdt.Node) string {
	var stack []string
	it := f.AllNodes()
	for n, ok := it.Next(); ok; n, ok = it.Next() {
		if n.Level < len(stack) {
			stack = stack[:n.Level]
		}
		stack = append(stack, n.Name())
		if n.Equal(target) {
			if len(stack) == 1 {
				return "/"
			}
			return strings.Join(stack, "/")
		}
	}
	return target.Name()
}
