package main

import (
	"testing"
)

func TestPropsCommand(t *testing.T) {
	quiet = false
	verbose = false
	jsonOut = false
	propsDecode = false

	output, err := captureOutput(t, func() error {
		return runProps([]string{testBlobPath(t), "/soc/serial@10000000"})
	})
	if err != nil {
		t.Fatalf("runProps() error = %v", err)
	}

	assertContains(t, output, []string{
		"serial@10000000 {",
		`compatible = "ns16550a";`,
	})
	assertNotContains(t, output, []string{"Reg (translated)"})
}

func TestPropsCommandDecode(t *testing.T) {
	quiet = false
	verbose = false
	jsonOut = false
	propsDecode = true
	defer func() { propsDecode = false }()

	output, err := captureOutput(t, func() error {
		return runProps([]string{testBlobPath(t), "/soc/serial@10000000"})
	})
	if err != nil {
		t.Fatalf("runProps() error = %v", err)
	}

	assertContains(t, output, []string{
		"Reg (translated):",
		"0x80000000 + 0x10 (bus 0x1000)",
		"Interrupts (parent intc, 2 cells each):",
		"[10 4]",
	})
}

func TestPropsCommandMissingNode(t *testing.T) {
	quiet = true
	jsonOut = false
	propsDecode = false
	defer func() { quiet = false }()

	_, err := captureOutput(t, func() error {
		return runProps([]string{testBlobPath(t), "/nope"})
	})
	if err == nil {
		t.Fatal("runProps() expected error for missing node")
	}
}
