/*
Package reduce turns an arbitrary image into a square grid of LDraw colors.

The image is resized to N by N pixels with a Lanczos filter. In monochrome
mode each pixel is converted to grayscale and thresholded into black and
white. In palette mode the resized image is quantized to a small number of
colors, each of which is snapped to the closest available LDraw color.
Pixels that are less than half opaque are left Unset.
*/
package reduce

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/bodgit/brickmosaic/grid"
	"github.com/bodgit/brickmosaic/ldraw"
	"github.com/disintegration/gift"
	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultSize is the width and height of the default mosaic.
	DefaultSize = 32
	// DefaultThreshold separates black from white in monochrome mode.
	DefaultThreshold = 128

	opaque = 0x80
)

var (
	errSize   = fmt.Errorf("reduce: size must be between 1 and %d", grid.MaxSize)
	errColors = errors.New("reduce: number of colors must not be negative")
)

// Method selects how the palette of an image is extracted.
type Method int

const (
	// MedianCut splits the color space into boxes of similar population.
	MedianCut Method = iota
	// KMeans clusters the pixels.
	KMeans
	// Dominant picks the dominant colors of the image.
	Dominant
)

var methodNames = map[Method]string{
	MedianCut: "median",
	KMeans:    "kmeans",
	Dominant:  "dominant",
}

func (m Method) String() string {
	if s, ok := methodNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// ParseMethod returns the Method with the given name.
func ParseMethod(s string) (Method, error) {
	for m, name := range methodNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("reduce: unknown method %q", s)
}

// Options control the reduction.
type Options struct {
	// Size is the width and height of the grid.
	Size int
	// Threshold is the gray level above which a pixel becomes white in
	// monochrome mode.
	Threshold uint8
	// Colors is the number of colors extracted in palette mode. Zero
	// selects monochrome mode.
	Colors int
	// Method extracts the palette in palette mode.
	Method Method
	// Palette lists the LDraw colors available in palette mode. If empty,
	// ldraw.Colors is used.
	Palette []ldraw.Color
}

// DefaultOptions returns a 32x32 monochrome reduction.
func DefaultOptions() Options {
	return Options{
		Size:      DefaultSize,
		Threshold: DefaultThreshold,
	}
}

func (o Options) String() string {
	if o.Colors == 0 {
		return fmt.Sprintf("%dx%d mono threshold=%d", o.Size, o.Size, o.Threshold)
	}
	return fmt.Sprintf("%dx%d %s colors=%d palette=%d", o.Size, o.Size, o.Method, o.Colors, len(o.Palette))
}

func toColorful(c color.Color) colorful.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return colorful.Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
	}
}

// Nearest returns the entry of palette perceptually closest to c using the
// CIEDE2000 difference.
func Nearest(c color.Color, palette []ldraw.Color) ldraw.Color {
	target := toColorful(c)

	var best ldraw.Color
	bestDist := -1.0
	for _, p := range palette {
		if d := target.DistanceCIEDE2000(toColorful(p.RGB)); bestDist < 0 || d < bestDist {
			best, bestDist = p, d
		}
	}
	return best
}

func resize(m image.Image, filters ...gift.Filter) *image.NRGBA {
	g := gift.New(filters...)
	dst := image.NewNRGBA(g.Bounds(m.Bounds()))
	g.Draw(dst, m)
	return dst
}

func mono(m *image.NRGBA, threshold uint8) (*grid.Grid, error) {
	b := m.Bounds()
	g, err := grid.New(b.Dx())
	if err != nil {
		return nil, err
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := m.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			switch {
			case c.A < opaque:
			case c.R > threshold:
				g.Set(x, y, ldraw.White)
			default:
				g.Set(x, y, ldraw.Black)
			}
		}
	}
	return g, nil
}

func paletted(m *image.NRGBA, o Options) (*grid.Grid, error) {
	candidates := o.Palette
	if len(candidates) == 0 {
		candidates = ldraw.Colors
	}

	p, err := extract(m, o.Colors, o.Method)
	if err != nil {
		return nil, err
	}

	b := m.Bounds()
	g, err := grid.New(b.Dx())
	if err != nil {
		return nil, err
	}
	if len(p) == 0 {
		// Nothing opaque
		return g, nil
	}

	codes := make([]grid.Color, len(p))
	for i, c := range p {
		codes[i] = Nearest(c, candidates).Code
	}

	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := m.NRGBAAt(b.Min.X+x, b.Min.Y+y)
			if c.A < opaque {
				continue
			}
			c.A = 0xff
			g.Set(x, y, codes[p.Index(c)])
		}
	}
	return g, nil
}

// Image reduces m to a grid according to o.
func Image(m image.Image, o Options) (*grid.Grid, error) {
	if o.Size <= 0 || o.Size > grid.MaxSize {
		return nil, errSize
	}
	if o.Colors < 0 {
		return nil, errColors
	}

	resampling := gift.Resize(o.Size, o.Size, gift.LanczosResampling)
	if o.Colors == 0 {
		return mono(resize(m, gift.Grayscale(), resampling), o.Threshold)
	}
	return paletted(resize(m, resampling), o)
}
