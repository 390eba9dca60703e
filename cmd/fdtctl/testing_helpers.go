package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/fdtkit/internal/dtbtest"
)

// testBlobPath writes a synthetic blob to a temp dir and returns its path.
func testBlobPath(t *testing.T) string {
	t.Helper()
	blob := dtbtest.New().
		Reserve(0x40000000, 0x1000).
		Begin("").
		PropStr("model", "test-board").
		PropStr("compatible", "vendor,test-board").
		PropU32("#address-cells", 2).
		PropU32("#size-cells", 1).
		Begin("chosen").
		PropStr("bootargs", "console=ttyS0").
		End().
		Begin("memory@80000000").
		PropU32("reg", 0, 0x80000000, 0x10000000).
		End().
		Begin("soc").
		PropU32("#address-cells", 1).
		PropU32("#size-cells", 1).
		PropU32("ranges", 0x1000, 0, 0x80000000, 0x1000).
		Begin("intc").
		PropU32("phandle", 1).
		PropU32("#interrupt-cells", 2).
		Prop("interrupt-controller", nil).
		End().
		Begin("serial@10000000").
		PropStr("compatible", "ns16550a").
		PropU32("reg", 0x1000, 0x10).
		PropU32("interrupt-parent", 1).
		PropU32("interrupts", 10, 4).
		End().
		End().
		End().
		Blob()

	path := filepath.Join(t.TempDir(), "test.dtb")
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatalf("failed to write test blob: %v", err)
	}
	return path
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}
