package gfx

import (
	"image"
	"image/color"
)

// Sprite is one image of an atlas. Offset is the position of the image's
// top left corner relative to the point it is drawn at.
type Sprite struct {
	Image  image.Image
	Offset image.Point
}

// Atlas resolves sprite indices to images.
type Atlas interface {
	Sprite(index uint32) (Sprite, bool)
}

// MapAtlas is an Atlas backed by a map, for sprites loaded up front.
type MapAtlas map[uint32]Sprite

func (a MapAtlas) Sprite(index uint32) (Sprite, bool) {
	s, ok := a[index]
	return s, ok
}

// Remap pixels carry a shade level instead of a colour. Primary remap
// pixels have R == B, G == 0 and R > 0; secondary ones have G == B,
// R == 0 and G > 0. The level is the channel value divided by RemapStep.
const RemapStep = 0x10

// PrimaryRemap returns the key colour for a primary remap pixel at level.
func PrimaryRemap(level uint8) color.RGBA {
	v := (level + 1) * RemapStep
	return color.RGBA{v, 0, v, 0xFF}
}

// SecondaryRemap returns the key colour for a secondary remap pixel at
// level.
func SecondaryRemap(level uint8) color.RGBA {
	v := (level + 1) * RemapStep
	return color.RGBA{0, v, v, 0xFF}
}

// remapLevel reports whether c is a remap key, which scheme slot it
// selects (0 primary, 1 secondary) and its shade level.
func remapLevel(c color.RGBA) (slot int, level uint8, ok bool) {
	switch {
	case c.A == 0:
		return 0, 0, false
	case c.G == 0 && c.R == c.B && c.R > 0:
		return 0, c.R/RemapStep - 1, true
	case c.R == 0 && c.G == c.B && c.G > 0:
		return 1, c.G/RemapStep - 1, true
	}
	return 0, 0, false
}

// GeneratedAtlas draws a placeholder box for every index: an outline
// around a primary remapped top half and a secondary remapped bottom half,
// shaded by the index so neighbouring frames differ.
type GeneratedAtlas struct {
	Width, Height int
}

func (a GeneratedAtlas) Sprite(index uint32) (Sprite, bool) {
	w, h := max(a.Width, 3), max(a.Height, 3)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	level := uint8(index%(ShadesPerColour-2)) + 1
	outline := color.RGBA{0x20, 0x20, 0x20, 0xFF}
	for y := range h {
		for x := range w {
			switch {
			case x == 0 || y == 0 || x == w-1 || y == h-1:
				img.SetRGBA(x, y, outline)
			case y < h/2:
				img.SetRGBA(x, y, PrimaryRemap(level))
			default:
				img.SetRGBA(x, y, SecondaryRemap(level-1))
			}
		}
	}
	return Sprite{Image: img, Offset: image.Pt(-w/2, -h)}, true
}
