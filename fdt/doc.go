// Package fdt provides read-only, zero-copy access to Flattened Device Tree
// blobs (DTB files).
//
// # Overview
//
// A devicetree blob describes a hardware topology as a tree of named nodes,
// each carrying typed properties. Firmware, bootloaders, and kernels consume
// it at boot to discover devices, memory layout, interrupt wiring, and clocks
// without compiled-in board knowledge. This package reconstructs the
// node/property structure directly over the mapped bytes and performs the
// cross-node resolutions a consumer needs: bus-address translation through
// ancestor "ranges" chains, interrupt-parent resolution through phandle
// links, and cell-size-aware decoding of variable-width integer fields.
//
// # Key Types
//
//   - FDT: the root structure representing an opened blob
//   - Node: one tree node; a cheap value type borrowing the blob
//   - Property: a named byte-string value with its own independent cursor
//   - Reader: a value-semantic cursor over the structure block
//   - MetaData: the inherited traversal context (#address-cells et al.)
//   - Reg, Range: decoded "reg"/"ranges" entries
//   - Phandle: an opaque handle referencing another node anywhere in the tree
//
// # File Structure
//
// A blob consists of:
//
//	[Header - 40 bytes] [memory reservation block] [structure block] [strings block]
//
// The structure block is a token stream (begin-node, property, end-node,
// nop, end); property names live in the strings block and are referenced by
// offset.
//
// # Opening a Blob
//
//	f, err := fdt.Open("/path/to/board.dtb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	it := f.AllNodes()
//	for n, ok := it.Next(); ok; n, ok = it.Next() {
//	    fmt.Println(strings.Repeat("  ", n.Level), n.Name())
//	}
//
// All derived values (Node, Property, iterators) stay valid until Close.
// Nothing in this package mutates the blob.
package fdt
