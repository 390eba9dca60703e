package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddOverflowSafe(t *testing.T) {
	v, ok := AddOverflowSafe(1, 2)
	require.True(t, ok)
	require.Equal(t, 3, v)

	_, ok = AddOverflowSafe(math.MaxInt, 1)
	require.False(t, ok)

	_, ok = AddOverflowSafe(math.MinInt, -1)
	require.False(t, ok)
}

func TestSlice(t *testing.T) {
	b := []byte{1, 2, 3, 4}

	s, ok := Slice(b, 1, 2)
	require.True(t, ok)
	require.Equal(t, []byte{2, 3}, s)

	s, ok = Slice(b, 4, 0)
	require.True(t, ok)
	require.Empty(t, s)

	_, ok = Slice(b, 3, 2)
	require.False(t, ok)
	_, ok = Slice(b, -1, 1)
	require.False(t, ok)
	_, ok = Slice(b, 0, -1)
	require.False(t, ok)
	_, ok = Slice(b, 5, 0)
	require.False(t, ok)
	_, ok = Slice(b, math.MaxInt, math.MaxInt)
	require.False(t, ok)
}

func TestHas(t *testing.T) {
	b := make([]byte, 10)
	require.True(t, Has(b, 0, 10))
	require.True(t, Has(b, 10, 0))
	require.False(t, Has(b, 8, 4))
}
