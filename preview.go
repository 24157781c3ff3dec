package brickmosaic

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/bodgit/brickmosaic/grid"
	"github.com/bodgit/brickmosaic/ldraw"
	"github.com/bodgit/brickmosaic/pack"
	"github.com/nfnt/resize"
)

// PreviewSize is the default width and height of preview images.
const PreviewSize = 512

var unknownColor = color.RGBA{0x80, 0x80, 0x80, 0xff}

func cellColor(c grid.Color) color.RGBA {
	if lc, ok := ldraw.LookupColor(c); ok {
		return lc.RGB
	}
	return unknownColor
}

// Preview renders one pixel per cell and scales the result up to size by
// size pixels without smoothing. Unset cells are transparent.
func Preview(g *grid.Grid, size int) image.Image {
	n := g.Size()
	m := image.NewNRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if c := g.At(x, y); c != grid.Unset {
				m.Set(x, y, cellColor(c))
			}
		}
	}
	if size <= n {
		return m
	}
	return resize.Resize(uint(size), uint(size), m, resize.NearestNeighbor)
}

func darken(c color.RGBA) color.RGBA {
	return color.RGBA{c.R / 2, c.G / 2, c.B / 2, c.A}
}

// PiecePreview renders each piece as a filled rectangle with a darker
// outline, scale pixels per cell, so the effect of packing is visible.
func PiecePreview(n int, pieces []pack.Piece, scale int) image.Image {
	if scale < 3 {
		scale = 3
	}
	m := image.NewNRGBA(image.Rect(0, 0, n*scale, n*scale))
	for _, p := range pieces {
		c := cellColor(p.Color)
		r := image.Rect(p.X*scale, p.Y*scale, (p.X+p.Width)*scale, (p.Y+p.Height)*scale)
		draw.Draw(m, r, &image.Uniform{darken(c)}, image.Point{}, draw.Src)
		draw.Draw(m, r.Inset(1), &image.Uniform{c}, image.Point{}, draw.Src)
	}
	return m
}

// SavePNG writes m to file as a PNG image.
func SavePNG(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	if err := png.Encode(f, m); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
