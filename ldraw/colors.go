package ldraw

import (
	"image/color"

	"github.com/bodgit/brickmosaic/grid"
)

// Color codes used by monochrome mosaics.
const (
	Black grid.Color = 0
	White grid.Color = 15
)

// Color is an entry in the LDraw color table.
type Color struct {
	Code grid.Color
	Name string
	RGB  color.RGBA
}

// Colors lists solid colors commonly available as 1x1, 1x2 and 2x2 tiles.
// Values are taken from LDConfig.ldr.
var Colors = []Color{
	{0, "Black", color.RGBA{0x1b, 0x2a, 0x34, 0xff}},
	{1, "Blue", color.RGBA{0x1e, 0x5a, 0xa8, 0xff}},
	{2, "Green", color.RGBA{0x00, 0x85, 0x2b, 0xff}},
	{4, "Red", color.RGBA{0xb4, 0x00, 0x00, 0xff}},
	{14, "Yellow", color.RGBA{0xfa, 0xc8, 0x0a, 0xff}},
	{15, "White", color.RGBA{0xf4, 0xf4, 0xf4, 0xff}},
	{19, "Tan", color.RGBA{0xe4, 0xcd, 0x9e, 0xff}},
	{25, "Orange", color.RGBA{0xd6, 0x79, 0x23, 0xff}},
	{26, "Magenta", color.RGBA{0x90, 0x1f, 0x76, 0xff}},
	{27, "Lime", color.RGBA{0xa5, 0xca, 0x18, 0xff}},
	{28, "Dark Tan", color.RGBA{0x95, 0x8a, 0x73, 0xff}},
	{70, "Reddish Brown", color.RGBA{0x5f, 0x31, 0x09, 0xff}},
	{71, "Light Bluish Gray", color.RGBA{0x96, 0x96, 0x96, 0xff}},
	{72, "Dark Bluish Gray", color.RGBA{0x64, 0x64, 0x64, 0xff}},
	{73, "Medium Blue", color.RGBA{0x73, 0x96, 0xc8, 0xff}},
	{226, "Bright Light Yellow", color.RGBA{0xff, 0xec, 0x6c, 0xff}},
	{272, "Dark Blue", color.RGBA{0x19, 0x32, 0x5a, 0xff}},
	{288, "Dark Green", color.RGBA{0x00, 0x45, 0x1a, 0xff}},
	{320, "Dark Red", color.RGBA{0x72, 0x00, 0x12, 0xff}},
}

// LookupColor returns the table entry for code.
func LookupColor(code grid.Color) (Color, bool) {
	for _, c := range Colors {
		if c.Code == code {
			return c, true
		}
	}
	return Color{}, false
}
