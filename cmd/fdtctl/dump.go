package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fdtkit/fdt"
	"github.com/joshuapare/fdtkit/fdt/printer"
)

var (
	dumpPath    string
	dumpDepth   int
	dumpYAML    bool
	dumpCompact bool
)

func init() {
	cmd := newDumpCmd()
	cmd.Flags().StringVar(&dumpPath, "path", "/", "Dump only a specific subtree")
	cmd.Flags().IntVar(&dumpDepth, "depth", 0, "Maximum depth (0 = unlimited)")
	cmd.Flags().BoolVar(&dumpYAML, "yaml", false, "Output in YAML format")
	cmd.Flags().BoolVar(&dumpCompact, "compact", false, "Compact output")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <dtb>",
		Short: "Human-readable dump of blob contents",
		Long: `The dump command renders the node hierarchy and all properties in
DTS-flavoured source form, or structured JSON/YAML.

Example:
  fdtctl dump board.dtb
  fdtctl dump board.dtb --path /soc --depth 2
  fdtctl dump board.dtb --json
  fdtctl dump board.dtb --yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	dtbPath := args[0]

	printVerbose("Opening blob: %s\n", dtbPath)

	f, err := fdt.Open(dtbPath)
	if err != nil {
		return fmt.Errorf("failed to open blob: %w", err)
	}
	defer f.Close()

	opts := printer.DefaultOptions()
	opts.MaxDepth = dumpDepth
	if dumpCompact {
		opts.IndentSize = 1
	}
	switch {
	case jsonOut:
		opts.Format = printer.FormatJSON
	case dumpYAML:
		opts.Format = printer.FormatYAML
	}

	p := printer.New(f, os.Stdout, opts)
	if err := p.PrintTree(dumpPath); err != nil {
		return fmt.Errorf("failed to dump blob: %w", err)
	}
	return nil
}
