package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/fdtkit/fdt"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <dtb>",
		Short: "Validate a blob header and report basic metadata",
		Long: `The info command validates a devicetree blob and displays basic
metadata including format version, total size, boot CPU, node count,
memory reservations, and boot parameters from /chosen.

Example:
  fdtctl info board.dtb
  fdtctl info board.dtb --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

type blobInfo struct {
	File         string   `json:"file"`
	Version      uint32   `json:"version"`
	TotalSize    uint32   `json:"total_size"`
	BootCPU      uint32   `json:"boot_cpu"`
	Nodes        int      `json:"nodes"`
	Reservations int      `json:"reservations"`
	Model        string   `json:"model,omitempty"`
	Compatible   []string `json:"compatible,omitempty"`
	Bootargs     string   `json:"bootargs,omitempty"`
}

func runInfo(args []string) error {
	dtbPath := args[0]

	printVerbose("Opening blob: %s\n", dtbPath)

	f, err := fdt.Open(dtbPath)
	if err != nil {
		return fmt.Errorf("failed to open blob: %w", err)
	}
	defer f.Close()

	info := blobInfo{
		File:         dtbPath,
		Version:      f.Version(),
		TotalSize:    f.TotalSize(),
		BootCPU:      f.BootCPUID(),
		Reservations: len(f.MemoryReservations()),
	}

	it := f.AllNodes()
	for _, ok := it.Next(); ok; _, ok = it.Next() {
		info.Nodes++
	}

	if root, ok := f.Root(); ok {
		if prop, ok := root.FindProperty("model"); ok {
			info.Model = prop.Str()
		}
		info.Compatible = root.Compatibles()
	}
	if chosen, ok := f.Chosen(); ok {
		if args, ok := chosen.Bootargs(); ok {
			info.Bootargs = args
		}
	}

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nDevicetree Blob:\n")
	printInfo("  File: %s\n", dtbPath)
	if stat, err := os.Stat(dtbPath); err == nil {
		printInfo("  File size: %d bytes\n", stat.Size())
	}
	printInfo("  Format version: %d\n", info.Version)
	printInfo("  Declared size: %d bytes\n", info.TotalSize)
	printInfo("  Boot CPU: %d\n", info.BootCPU)
	printInfo("  Nodes: %d\n", info.Nodes)
	printInfo("  Memory reservations: %d\n", info.Reservations)
	if info.Model != "" {
		printInfo("  Model: %s\n", info.Model)
	}
	for _, c := range info.Compatible {
		printInfo("  Compatible: %s\n", c)
	}
	if info.Bootargs != "" {
		printInfo("  Bootargs: %s\n", info.Bootargs)
	}

	for i, rsv := range f.MemoryReservations() {
		printInfo("  Reservation %d: 0x%x + 0x%x\n", i, rsv.Address, rsv.Size)
	}

	for _, reg := range f.Memory() {
		if reg.HasSize {
			printInfo("  Memory: 0x%x + 0x%x\n", reg.Address, reg.Size)
		} else {
			printInfo("  Memory: 0x%x\n", reg.Address)
		}
	}

	return nil
}
