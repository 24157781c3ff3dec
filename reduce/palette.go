package reduce

import (
	"image"
	"image/color"
	"math"

	"github.com/cenkalti/dominantcolor"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

func extract(m *image.NRGBA, k int, method Method) (color.Palette, error) {
	var p color.Palette
	switch method {
	case KMeans:
		var err error
		if p, err = kmeansPalette(m, k); err != nil {
			return nil, err
		}
	case Dominant:
		p = dominantPalette(m, k)
	}
	if len(p) == 0 {
		p = medianCutPalette(m, k)
	}
	return p, nil
}

func opaquePixels(m *image.NRGBA) []color.NRGBA {
	b := m.Bounds()
	pixels := make([]color.NRGBA, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c := m.NRGBAAt(x, y); c.A >= opaque {
				c.A = 0xff
				pixels = append(pixels, c)
			}
		}
	}
	return pixels
}

// flatten returns a copy of m where every pixel is either fully opaque or
// fully transparent
func flatten(m *image.NRGBA) *image.NRGBA {
	dup := image.NewNRGBA(m.Bounds())
	for i := 0; i < len(m.Pix); i += 4 {
		copy(dup.Pix[i:i+4], m.Pix[i:i+4])
		if dup.Pix[i+3] >= opaque {
			dup.Pix[i+3] = 0xff
		} else {
			dup.Pix[i+3] = 0
		}
	}
	return dup
}

func medianCutPalette(m *image.NRGBA, k int) color.Palette {
	if len(opaquePixels(m)) == 0 {
		return nil
	}
	q := quantize.MedianCutQuantizer{
		Weighting: func(img image.Image, x, y int) uint32 {
			if _, _, _, a := img.At(x, y).RGBA(); a == 0 {
				return 0
			}
			return 1
		},
	}
	var p color.Palette
	for _, c := range q.Quantize(make(color.Palette, 0, k), flatten(m)) {
		if _, _, _, a := c.RGBA(); a > 0 {
			p = append(p, c)
		}
	}
	return p
}

func kmeansPalette(m *image.NRGBA, k int) (color.Palette, error) {
	pixels := opaquePixels(m)
	if len(pixels) == 0 {
		return nil, nil
	}

	dataset := make(clusters.Observations, 0, len(pixels))
	for _, c := range pixels {
		dataset = append(dataset, clusters.Coordinates{
			float64(c.R) / 255,
			float64(c.G) / 255,
			float64(c.B) / 255,
		})
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, min(k, len(dataset)))
	if err != nil {
		return nil, err
	}

	p := make(color.Palette, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		p = append(p, color.NRGBA{
			R: channel(c.Center[0]),
			G: channel(c.Center[1]),
			B: channel(c.Center[2]),
			A: 0xff,
		})
	}
	return p, nil
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func dominantPalette(m *image.NRGBA, k int) color.Palette {
	if len(opaquePixels(m)) == 0 {
		return nil
	}
	var p color.Palette
	for _, c := range dominantcolor.FindWeight(flatten(m), k) {
		c.RGBA.A = 0xff
		p = append(p, c.RGBA)
	}
	return p
}
