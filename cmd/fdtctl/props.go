package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fdtkit/fdt"
	"github.com/joshuapare/fdtkit/fdt/printer"
)

var propsDecode bool

func init() {
	cmd := newPropsCmd()
	cmd.Flags().BoolVar(&propsDecode, "decode", false, "Also decode reg, interrupts, and clocks")
	rootCmd.AddCommand(cmd)
}

func newPropsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "props <dtb> <path>",
		Short: "Show the properties of a single node",
		Long: `The props command prints one node's properties. With --decode it also
shows the "reg" entries translated to root bus addresses, the interrupt
specifiers, and the resolved clock references.

Example:
  fdtctl props board.dtb /soc/serial@10000000
  fdtctl props board.dtb /soc/serial@10000000 --decode
  fdtctl props board.dtb /chosen --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProps(args)
		},
	}
	return cmd
}

func runProps(args []string) error {
	dtbPath := args[0]
	nodePath := args[1]

	printVerbose("Opening blob: %s\n", dtbPath)

	f, err := fdt.Open(dtbPath)
	if err != nil {
		return fmt.Errorf("failed to open blob: %w", err)
	}
	defer f.Close()

	opts := printer.DefaultOptions()
	if jsonOut {
		opts.Format = printer.FormatJSON
	}
	p := printer.New(f, os.Stdout, opts)
	if err := p.PrintNode(nodePath); err != nil {
		return err
	}

	if !propsDecode || jsonOut {
		return nil
	}

	node, ok := f.FindByPath(nodePath)
	if !ok {
		return fmt.Errorf("node %q not found", nodePath)
	}
	printDecoded(node)
	return nil
}

// printDecoded renders the semantic views on top of the raw properties.
func printDecoded(node fdt.Node) {
	if regs, ok := node.Reg(); ok {
		printInfo("\nReg (translated):\n")
		for r, ok := regs.Next(); ok; r, ok = regs.Next() {
			if r.HasSize {
				printInfo("  0x%x + 0x%x (bus 0x%x)\n", r.Address, r.Size, r.ChildBusAddress)
			} else {
				printInfo("  0x%x (bus 0x%x)\n", r.Address, r.ChildBusAddress)
			}
		}
	}

	if info, ok := node.Interrupts(); ok {
		ctrl, _ := node.InterruptParent()
		printInfo("\nInterrupts (parent %s, %d cells each):\n", ctrl.Node.Name(), info.CellSize)
		for _, spec := range info.Specifiers() {
			printInfo("  %v\n", spec)
		}
	}

	clocks := node.Clocks()
	first := true
	for ref, ok := clocks.Next(); ok; ref, ok = clocks.Next() {
		if first {
			printInfo("\nClocks:\n")
			first = false
		}
		if len(ref.Specifier) > 0 {
			printInfo("  %s %v\n", ref.Provider.Name(), ref.Specifier)
		} else {
			printInfo("  %s\n", ref.Provider.Name())
		}
	}
}
