package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joshuapare/fdtkit/internal/dtbtest"
)

func testModel(t *testing.T) Model {
	t.Helper()
	blob := dtbtest.New().
		Begin("").
		PropStr("model", "test-board").
		PropU32("#address-cells", 1).
		PropU32("#size-cells", 1).
		Begin("chosen").
		End().
		Begin("soc").
		Begin("serial@10000000").
		PropStr("compatible", "ns16550a").
		End().
		Begin("timer@10001000").
		End().
		End().
		End().
		Blob()

	path := filepath.Join(t.TempDir(), "test.dtb")
	if err := os.WriteFile(path, blob, 0o644); err != nil {
		t.Fatalf("failed to write test blob: %v", err)
	}

	m, err := NewModel(path)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return m
}

func TestLoadEntries(t *testing.T) {
	m := testModel(t)

	if len(m.entries) != 5 {
		t.Fatalf("entries = %d, want 5", len(m.entries))
	}

	wantPaths := []string{
		"/",
		"/chosen",
		"/soc",
		"/soc/serial@10000000",
		"/soc/timer@10001000",
	}
	for i, want := range wantPaths {
		if m.entries[i].path != want {
			t.Errorf("entries[%d].path = %q, want %q", i, m.entries[i].path, want)
		}
	}

	if m.entries[0].children != 2 {
		t.Errorf("root children = %d, want 2", m.entries[0].children)
	}
	if m.entries[2].children != 2 {
		t.Errorf("soc children = %d, want 2", m.entries[2].children)
	}
}

func TestVisibilityFollowsExpansion(t *testing.T) {
	m := testModel(t)

	// Only the root starts expanded: root, chosen, soc.
	if len(m.visible) != 3 {
		t.Fatalf("visible = %d, want 3", len(m.visible))
	}

	m.expanded["/soc"] = true
	m.rebuildVisible()
	if len(m.visible) != 5 {
		t.Fatalf("visible after expand = %d, want 5", len(m.visible))
	}

	m.expanded["/soc"] = false
	m.rebuildVisible()
	if len(m.visible) != 3 {
		t.Fatalf("visible after collapse = %d, want 3", len(m.visible))
	}
}

func TestSearchMatchesNamesAndCompatibles(t *testing.T) {
	m := testModel(t)

	m.runSearch("serial")
	if len(m.matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(m.matches))
	}
	if m.entries[m.matches[0]].path != "/soc/serial@10000000" {
		t.Errorf("match path = %q", m.entries[m.matches[0]].path)
	}

	m.runSearch("NS16550")
	if len(m.matches) != 1 {
		t.Fatalf("compatible matches = %d, want 1", len(m.matches))
	}

	m.runSearch("zzz")
	if len(m.matches) != 0 {
		t.Fatalf("matches = %d, want 0", len(m.matches))
	}
}

func TestJumpToEntryExpandsAncestors(t *testing.T) {
	m := testModel(t)

	m.runSearch("timer")
	if len(m.matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(m.matches))
	}

	m.jumpToEntry(m.matches[0])
	if !m.expanded["/soc"] {
		t.Error("expected /soc to be expanded after jump")
	}
	e := m.selectedEntry()
	if e == nil || e.path != "/soc/timer@10001000" {
		t.Errorf("cursor not on match: %+v", e)
	}
}

func TestGoToParent(t *testing.T) {
	m := testModel(t)
	m.expanded["/soc"] = true
	m.rebuildVisible()

	// Put the cursor on /soc/serial@10000000.
	for vi, ei := range m.visible {
		if m.entries[ei].path == "/soc/serial@10000000" {
			m.cursor = vi
		}
	}

	m.goToParent()
	e := m.selectedEntry()
	if e == nil || e.path != "/soc" {
		t.Errorf("cursor after goToParent = %+v, want /soc", e)
	}
}
