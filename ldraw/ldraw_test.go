package ldraw

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/bodgit/brickmosaic/catalog"
	"github.com/bodgit/brickmosaic/grid"
	"github.com/bodgit/brickmosaic/pack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		cell, span, pos int
	}{
		{0, 1, 10},
		{1, 1, 30},
		{31, 1, 630},
		{0, 2, 20},
		{3, 2, 80},
		{-1, 1, -10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.pos, Position(tt.cell, tt.span))
		cell, ok := Cell(tt.pos, tt.span)
		assert.True(t, ok)
		assert.Equal(t, tt.cell, cell)
	}

	_, ok := Cell(20, 1)
	assert.False(t, ok)
	_, ok = Cell(30, 2)
	assert.False(t, ok)
}

const optimized = `0 Mosaic
0 Author: Someone
0 !LICENSE Redistributable under CCAL version 2.0
1 15 20 0 20 1 0 0 0 1 0 0 0 1 3068b.dat
1 0 60 0 10 1 0 0 0 1 0 0 0 1 3069b.dat
1 4 70 0 40 0 0 1 0 1 0 -1 0 0 3069b.dat
1 0 50 0 30 1 0 0 0 1 0 0 0 1 3070b.dat
0 STEP
`

func TestEncode(t *testing.T) {
	standard := catalog.Standard()
	s2x2, _ := standard.Lookup(catalog.Tile2x2, catalog.Identity)
	s2x1, _ := standard.Lookup(catalog.Tile1x2, catalog.Identity)
	s1x2, _ := standard.Lookup(catalog.Tile1x2, catalog.Quarter)
	s1x1, _ := standard.Lookup(catalog.Tile1x1, catalog.Identity)

	pieces := []pack.Piece{
		{Shape: s2x2, Color: White, X: 0, Y: 0},
		{Shape: s2x1, Color: Black, X: 2, Y: 0},
		{Shape: s1x2, Color: 4, X: 3, Y: 1},
		{Shape: s1x1, Color: Black, X: 2, Y: 1},
	}

	b := new(bytes.Buffer)
	require.NoError(t, Encode(b, Header{
		Title:   "Mosaic",
		Author:  "Someone",
		License: "Redistributable under CCAL version 2.0",
	}, pieces))
	assert.Equal(t, optimized, b.String())

	b.Reset()
	require.NoError(t, Encode(b, Header{}, nil))
	assert.Equal(t, "0 STEP\n", b.String())
}

func TestDecode(t *testing.T) {
	m, err := Decode(strings.NewReader(optimized), catalog.Standard(), 4)
	require.NoError(t, err)

	assert.Equal(t, Header{
		Title:   "Mosaic",
		Author:  "Someone",
		License: "Redistributable under CCAL version 2.0",
	}, m.Header)
	assert.Equal(t, 4, m.Parts)

	expected, err := grid.FromRows([][]grid.Color{
		{White, White, Black, Black},
		{White, White, Black, 4},
		{grid.Unset, grid.Unset, grid.Unset, 4},
		{grid.Unset, grid.Unset, grid.Unset, grid.Unset},
	})
	require.NoError(t, err)
	assert.True(t, expected.Equal(m.Grid))

	// Size inferred from the furthest part
	m, err = Decode(strings.NewReader(optimized), catalog.Standard(), 0)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Grid.Size())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		line  int
	}{
		{
			name:  "Too few fields",
			input: "1 15 10 0 10 1 0 0 0 1 0 0 0 3070b.dat\n",
			line:  1,
		},
		{
			name:  "Bad number",
			input: "0 Title\n1 15 ten 0 10 1 0 0 0 1 0 0 0 1 3070b.dat\n",
			line:  2,
		},
		{
			name:  "Fractional position",
			input: "1 15 10.5 0 10 1 0 0 0 1 0 0 0 1 3070b.dat\n",
			line:  1,
		},
		{
			name:  "Negative color",
			input: "1 -1 10 0 10 1 0 0 0 1 0 0 0 1 3070b.dat\n",
			line:  1,
		},
		{
			name:  "Not a part file",
			input: "1 15 10 0 10 1 0 0 0 1 0 0 0 1 3070b\n",
			line:  1,
		},
		{
			name:  "Unknown part",
			input: "1 15 10 0 10 1 0 0 0 1 0 0 0 1 3001.dat\n",
			line:  1,
		},
		{
			name:  "Unknown rotation",
			input: "1 15 20 0 20 0 0 1 0 1 0 -1 0 0 3068b.dat\n",
			line:  1,
		},
		{
			name:  "Misaligned",
			input: "1 15 20 0 10 1 0 0 0 1 0 0 0 1 3070b.dat\n",
			line:  1,
		},
		{
			name:  "Out of range",
			input: "1 15 10 0 10 1 0 0 0 1 0 0 0 1 3070b.dat\n1 15 50 0 10 1 0 0 0 1 0 0 0 1 3070b.dat\n",
			n:     2,
			line:  2,
		},
		{
			name:  "Too far to infer",
			input: "1 15 10 0 10 1 0 0 0 1 0 0 0 1 3070b.dat\n1 15 2000000010 0 10 1 0 0 0 1 0 0 0 1 3070b.dat\n",
			line:  2,
		},
		{
			name:  "Negative cell",
			input: "1 15 -10 0 10 1 0 0 0 1 0 0 0 1 3070b.dat\n",
			line:  1,
		},
		{
			name:  "Overlap",
			input: "1 15 20 0 20 1 0 0 0 1 0 0 0 1 3068b.dat\n1 0 30 0 30 1 0 0 0 1 0 0 0 1 3070b.dat\n",
			line:  2,
		},
		{
			name:  "Line type",
			input: "2 24 0 0 0 10 0 0\n",
			line:  1,
		},
		{
			name:  "No parts",
			input: "0 Empty\n0 STEP\n",
			line:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), catalog.Standard(), tt.n)
			var fe *FormatError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, tt.line, fe.Line)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	var seed uint32 = 7
	rows := make([][]grid.Color, 11)
	for y := range rows {
		rows[y] = make([]grid.Color, 11)
		for x := range rows[y] {
			seed = seed*1664525 + 1013904223
			switch seed >> 30 {
			case 0:
				rows[y][x] = grid.Unset
			case 1:
				rows[y][x] = Black
			default:
				rows[y][x] = White
			}
		}
	}

	upper, err := catalog.New(
		catalog.Shape{Width: 2, Height: 2, Part: "3068B"},
		catalog.Shape{Width: 1, Height: 1, Part: "3070B"},
	)
	require.NoError(t, err)

	for _, c := range []*catalog.Catalog{catalog.Standard(), catalog.Units(), upper} {
		g, err := grid.FromRows(rows)
		require.NoError(t, err)
		pieces := pack.Pack(g, c)

		b := new(bytes.Buffer)
		require.NoError(t, Encode(b, Header{Title: "Round trip"}, pieces))

		m, err := Decode(b, c, g.Size())
		require.NoError(t, err)
		assert.True(t, g.Equal(m.Grid))
		assert.Equal(t, len(pieces), m.Parts)
		assert.Equal(t, "Round trip", m.Header.Title)
	}
}

func TestLookupColor(t *testing.T) {
	c, ok := LookupColor(White)
	require.True(t, ok)
	assert.Equal(t, "White", c.Name)

	_, ok = LookupColor(grid.Unset)
	assert.False(t, ok)
}
