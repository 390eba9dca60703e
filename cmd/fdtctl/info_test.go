package main

import (
	"encoding/json"
	"testing"
)

func TestInfoCommand(t *testing.T) {
	quiet = false
	verbose = false
	jsonOut = false

	output, err := captureOutput(t, func() error {
		return runInfo([]string{testBlobPath(t)})
	})
	if err != nil {
		t.Fatalf("runInfo() error = %v", err)
	}

	assertContains(t, output, []string{
		"Format version: 17",
		"Model: test-board",
		"Compatible: vendor,test-board",
		"Bootargs: console=ttyS0",
		"Memory reservations: 1",
		"Reservation 0: 0x40000000 + 0x1000",
		"Memory: 0x80000000 + 0x10000000",
	})
}

func TestInfoCommandJSON(t *testing.T) {
	quiet = false
	verbose = false
	jsonOut = true
	defer func() { jsonOut = false }()

	output, err := captureOutput(t, func() error {
		return runInfo([]string{testBlobPath(t)})
	})
	if err != nil {
		t.Fatalf("runInfo() error = %v", err)
	}

	var info blobInfo
	if err := json.Unmarshal([]byte(output), &info); err != nil {
		t.Fatalf("invalid JSON output: %v\nOutput: %s", err, output)
	}
	if info.Version != 17 {
		t.Errorf("version = %d, want 17", info.Version)
	}
	if info.Model != "test-board" {
		t.Errorf("model = %q, want test-board", info.Model)
	}
	if info.Nodes != 6 {
		t.Errorf("nodes = %d, want 6", info.Nodes)
	}
	if info.Reservations != 1 {
		t.Errorf("reservations = %d, want 1", info.Reservations)
	}
}

func TestInfoCommandMissingFile(t *testing.T) {
	quiet = true
	jsonOut = false
	defer func() { quiet = false }()

	_, err := captureOutput(t, func() error {
		return runInfo([]string{"/does/not/exist.dtb"})
	})
	if err == nil {
		t.Fatal("runInfo() expected error for missing file")
	}
}
