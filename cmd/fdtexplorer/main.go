package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joshuapare/fdtkit/cmd/fdtexplorer/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Parse flags first (before positional args)
	args := os.Args[1:]
	debugMode := false

	// Extract --debug/-d flag
	filteredArgs := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--debug" || arg == "-d" {
			debugMode = true
		} else {
			filteredArgs = append(filteredArgs, arg)
		}
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: debugMode,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}

	if len(filteredArgs) < 1 {
		printUsage()
		os.Exit(1)
	}

	if filteredArgs[0] == "--help" || filteredArgs[0] == "-h" {
		printHelp()
		os.Exit(0)
	}

	if filteredArgs[0] == "--version" || filteredArgs[0] == "-v" {
		fmt.Printf("fdtexplorer %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		os.Exit(0)
	}

	dtbPath := filteredArgs[0]
	logger.Info("starting fdtexplorer", "path", dtbPath, "debug", debugMode)

	// Check if file exists
	if _, err := os.Stat(dtbPath); err != nil {
		logger.Error("blob not found", "path", dtbPath, "error", err)
		fmt.Fprintf(os.Stderr, "Error: blob not found: %s\n", dtbPath)
		os.Exit(1)
	}

	m, err := NewModel(dtbPath)
	if err != nil {
		logger.Error("failed to open blob", "path", dtbPath, "error", err)
		fmt.Fprintf(os.Stderr, "Error: failed to open blob: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	finalModel, err := p.Run()
	if err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	// Clean up resources
	if model, ok := finalModel.(Model); ok {
		if err := model.Close(); err != nil {
			logger.Warn("error closing resources", "error", err)
		}
	}

	logger.Info("fdtexplorer exited normally")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: fdtexplorer [options] <dtb-file>\n")
	fmt.Fprintf(os.Stderr, "Try 'fdtexplorer --help' for more information.\n")
}

func printHelp() {
	fmt.Println("fdtexplorer - Interactive TUI for Devicetree Blobs")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  fdtexplorer [options] <dtb-file>")
	fmt.Println()
	fmt.Println("DESCRIPTION:")
	fmt.Println("  Launches an interactive terminal UI for exploring devicetree blobs.")
	fmt.Println()
	fmt.Println("  Features:")
	fmt.Println("    - Split-pane layout (node tree + property view)")
	fmt.Println("    - Keyboard navigation (vim-style keys supported)")
	fmt.Println("    - Expand/collapse nodes")
	fmt.Println("    - Decoded reg, interrupt, and clock views")
	fmt.Println("    - Search node names and compatible strings (/)")
	fmt.Println()
	fmt.Println("  Navigation:")
	fmt.Println("    ↑/k, ↓/j    Navigate up/down")
	fmt.Println("    →/l, Enter  Expand node")
	fmt.Println("    ←/h         Collapse node / Go to parent")
	fmt.Println("    /           Search")
	fmt.Println("    n, N        Next/previous match")
	fmt.Println("    ?           Show help")
	fmt.Println("    q           Quit")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug    Enable debug logging to ~/.fdtexplorer/logs/")
	fmt.Println("  -h, --help     Show this help message")
	fmt.Println("  -v, --version  Show version information")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  fdtexplorer board.dtb")
	fmt.Println()
	fmt.Println("For non-interactive operations, use the 'fdtctl' command instead.")
}
