// Package gfx provides drawing surfaces for the vehicle compositor.
package gfx

import "image/color"

// ShadesPerColour is the number of graded entries of each palette colour,
// darkest first.
const ShadesPerColour = 12

// Palette holds the shade ramps of every colour a ColourScheme can name.
type Palette [][ShadesPerColour]color.RGBA

// Shade returns the palette entry for colour at level. Unknown colours
// map to the first ramp and levels are clamped.
func (p Palette) Shade(colour, level uint8) color.RGBA {
	if len(p) == 0 {
		return color.RGBA{A: 0xFF}
	}
	if int(colour) >= len(p) {
		colour = 0
	}
	return p[colour][min(int(level), ShadesPerColour-1)]
}

// baseColours are the mid tones of the 32 remappable colours.
var baseColours = [32]color.RGBA{
	{0x00, 0x00, 0x00, 0xFF}, {0x5C, 0x5C, 0x5C, 0xFF}, {0xC8, 0xC8, 0xC8, 0xFF}, {0x4C, 0x2C, 0x0C, 0xFF},
	{0x9C, 0x6C, 0x2C, 0xFF}, {0xC8, 0x8C, 0x48, 0xFF}, {0x84, 0x00, 0x00, 0xFF}, {0xD8, 0x10, 0x10, 0xFF},
	{0xE8, 0x5C, 0x94, 0xFF}, {0xE0, 0x88, 0x2C, 0xFF}, {0xF0, 0xC8, 0x10, 0xFF}, {0xE8, 0xE0, 0x6C, 0xFF},
	{0x2C, 0x5C, 0x18, 0xFF}, {0x40, 0x94, 0x1C, 0xFF}, {0x84, 0xC8, 0x50, 0xFF}, {0x58, 0x70, 0x40, 0xFF},
	{0x10, 0x2C, 0x6C, 0xFF}, {0x28, 0x50, 0xC0, 0xFF}, {0x5C, 0x9C, 0xE8, 0xFF}, {0x40, 0x60, 0x80, 0xFF},
	{0x50, 0x1C, 0x70, 0xFF}, {0x94, 0x44, 0xC0, 0xFF}, {0x24, 0x6C, 0x70, 0xFF}, {0x30, 0xB0, 0xB4, 0xFF},
	{0x70, 0x50, 0x38, 0xFF}, {0xA0, 0x80, 0x60, 0xFF}, {0x6C, 0x6C, 0x40, 0xFF}, {0xB0, 0x98, 0x78, 0xFF},
	{0x88, 0x38, 0x28, 0xFF}, {0xC0, 0x60, 0x48, 0xFF}, {0x38, 0x38, 0x58, 0xFF}, {0xF8, 0xF8, 0xF8, 0xFF},
}

func scale(c uint8, f float64) uint8 {
	return uint8(min(255, max(0, float64(c)*f)))
}

// DefaultPalette builds a ramp around each base colour, from a third of
// its brightness up to half again as bright.
func DefaultPalette() Palette {
	p := make(Palette, len(baseColours))
	for i, c := range baseColours {
		for l := range ShadesPerColour {
			f := 1.0/3 + float64(l)*(1.5-1.0/3)/(ShadesPerColour-1)
			p[i][l] = color.RGBA{scale(c.R, f), scale(c.G, f), scale(c.B, f), 0xFF}
		}
	}
	return p
}
