package brickmosaic

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/bodgit/brickmosaic/catalog"
	"github.com/bodgit/brickmosaic/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview(t *testing.T) {
	g, err := grid.FromRows([][]grid.Color{
		{black, white},
		{grid.Unset, 999},
	})
	require.NoError(t, err)

	m := Preview(g, PreviewSize)
	assert.Equal(t, image.Rect(0, 0, PreviewSize, PreviewSize), m.Bounds())

	nrgba := func(x, y int) color.NRGBA {
		return color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
	}
	assert.Equal(t, color.NRGBA{0x1b, 0x2a, 0x34, 0xff}, nrgba(10, 10))
	assert.Equal(t, color.NRGBA{0xf4, 0xf4, 0xf4, 0xff}, nrgba(500, 10))
	assert.Equal(t, uint8(0), nrgba(10, 500).A)
	assert.Equal(t, color.NRGBA{0x80, 0x80, 0x80, 0xff}, nrgba(500, 500))

	small := Preview(g, 1)
	assert.Equal(t, image.Rect(0, 0, 2, 2), small.Bounds())

	file := filepath.Join(t.TempDir(), "preview.png")
	require.NoError(t, SavePNG(file, m))
	decoded, err := decodeImage(file)
	require.NoError(t, err)
	assert.Equal(t, m.Bounds(), decoded.Bounds())
}

func TestPiecePreview(t *testing.T) {
	r, err := Build([][]grid.Color{
		{white, white},
		{white, white},
	}, catalog.Standard())
	require.NoError(t, err)

	m := PiecePreview(r.Size, r.Pieces, 10)
	assert.Equal(t, image.Rect(0, 0, 20, 20), m.Bounds())

	// Outline on the edge, fill inside
	assert.Equal(t, color.RGBA{0x7a, 0x7a, 0x7a, 0xff}, color.RGBAModel.Convert(m.At(0, 0)))
	assert.Equal(t, color.RGBA{0xf4, 0xf4, 0xf4, 0xff}, color.RGBAModel.Convert(m.At(10, 10)))
}
