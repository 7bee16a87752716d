// Package draw lays out the bogies and bodies of a vehicle as sprites and
// composites them onto a drawing surface.
package draw

import (
	"image"

	"locoveh/company"
)

// Image is a sprite index and the company colours its remap pixels take.
type Image struct {
	Index   uint32
	Colours company.ColourScheme
}

// Shade is one of the graded palette entries of a colour.
type Shade struct {
	Colour uint8
	Level  uint8
}

// Surface receives the sprites the compositors emit. Positions are the
// sprite origin in screen pixels.
type Surface interface {
	DrawImage(p image.Point, img Image)
	// DrawImageSolid draws the sprite's silhouette in a single shade.
	DrawImageSolid(p image.Point, img Image, shade Shade)
}
