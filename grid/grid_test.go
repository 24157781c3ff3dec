package grid

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	_, err := New(0)
	assert.Error(t, err)

	_, err = New(MaxSize + 1)
	assert.Error(t, err)

	g, err := New(3)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Size())
	assert.Equal(t, 0, g.Count())
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, Unset, g.At(x, y))
			assert.False(t, g.Occupied(x, y))
		}
	}
}

func TestFromRows(t *testing.T) {
	g, err := FromRows([][]Color{
		{0, 15},
		{15, Unset},
	})
	require.NoError(t, err)
	assert.Equal(t, Color(0), g.At(0, 0))
	assert.Equal(t, Color(15), g.At(1, 0))
	assert.Equal(t, Color(15), g.At(0, 1))
	assert.Equal(t, Unset, g.At(1, 1))
	assert.Equal(t, 3, g.Count())
	assert.Equal(t, map[Color]int{0: 1, 15: 2}, g.Histogram())

	_, err = FromRows([][]Color{{0, 0}, {0}})
	assert.Error(t, err)

	_, err = FromRows(nil)
	assert.Error(t, err)
}

func TestOutOfBounds(t *testing.T) {
	g, err := New(2)
	require.NoError(t, err)

	tests := []struct {
		name string
		x, y int
	}{
		{"negative x", -1, 0},
		{"negative y", 0, -1},
		{"x too large", 2, 0},
		{"y too large", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, g.Contains(tt.x, tt.y))
			assert.PanicsWithValue(t, OutOfBoundsError{X: tt.x, Y: tt.y, N: 2}, func() { g.At(tt.x, tt.y) })
			assert.Panics(t, func() { g.Occupied(tt.x, tt.y) })
			assert.Panics(t, func() { g.MarkOccupied(tt.x, tt.y) })
		})
	}
}

func TestOccupancy(t *testing.T) {
	g, err := New(2)
	require.NoError(t, err)

	g.MarkOccupied(1, 0)
	assert.True(t, g.Occupied(1, 0))
	assert.False(t, g.Occupied(0, 1))

	g.MarkOccupied(1, 0)
	assert.True(t, g.Occupied(1, 0))

	dup := g.Clone()
	assert.False(t, dup.Occupied(1, 0))
	assert.True(t, dup.Equal(g))

	g.Reset()
	assert.False(t, g.Occupied(1, 0))
}

func TestWriteText(t *testing.T) {
	g, err := FromRows([][]Color{
		{15, 0, 4},
		{0, 15, Unset},
		{15, 15, 0},
	})
	require.NoError(t, err)

	b := new(bytes.Buffer)
	require.NoError(t, g.WriteText(b, Glyphs{15: '#', 0: '.'}))
	assert.Equal(t, "# . ? \n. #   \n# # . \n", b.String())
}
