package fdt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func clockTree() *treeBuilder {
	b := newTreeBuilder()
	b.begin("").
		begin("clk-fixed").
		propU32("phandle", 1).
		propU32("#clock-cells", 0).
		propU32("clock-frequency", 24000000).
		end().
		begin("clk-mux").
		propU32("phandle", 2).
		propU32("#clock-cells", 1).
		end().
		begin("uart").
		propU32("clocks", 1, 2, 5).
		end().
		begin("spi").
		propU32("clocks", 42). // dangling provider
		end().
		end()
	return b
}

func collectClocks(n Node) []ClockRef {
	var out []ClockRef
	it := n.Clocks()
	for c, ok := it.Next(); ok; c, ok = it.Next() {
		out = append(out, c)
	}
	return out
}

func TestClocks(t *testing.T) {
	f := clockTree().open(t)

	refs := collectClocks(findNode(t, f, "uart"))
	require.Len(t, refs, 2)

	require.Equal(t, "clk-fixed", refs[0].Provider.Name())
	require.Empty(t, refs[0].Specifier)

	require.Equal(t, "clk-mux", refs[1].Provider.Name())
	require.Equal(t, []uint32{5}, refs[1].Specifier)
}

func TestClocks_AbsentProperty(t *testing.T) {
	f := clockTree().open(t)

	require.Empty(t, collectClocks(findNode(t, f, "clk-fixed")))
}

func TestClocks_DanglingProviderEndsSequence(t *testing.T) {
	f := clockTree().open(t)

	require.Empty(t, collectClocks(findNode(t, f, "spi")))
}

func TestClocks_ProviderFrequency(t *testing.T) {
	f := clockTree().open(t)

	refs := collectClocks(findNode(t, f, "uart"))
	require.Len(t, refs, 2)

	hz, ok := refs[0].Provider.ClockFrequency()
	require.True(t, ok)
	require.Equal(t, uint32(24000000), hz)
}
