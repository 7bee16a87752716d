package gfx

import (
	"image"
	"image/color"

	"github.com/rs/zerolog"
	xdraw "golang.org/x/image/draw"

	"locoveh/company"
	"locoveh/draw"
)

// ImageSurface rasterises compositor output into an image. Screen point
// Origin lands on the destination's top left corner and every sprite is
// scaled up by Zoom with nearest neighbour sampling.
type ImageSurface struct {
	Dst     xdraw.Image
	Origin  image.Point
	Zoom    int
	Atlas   Atlas
	Palette Palette

	// Missing counts sprites the atlas did not have.
	Missing int

	log zerolog.Logger
}

func NewImageSurface(dst xdraw.Image, atlas Atlas, palette Palette, log zerolog.Logger) *ImageSurface {
	return &ImageSurface{
		Dst:     dst,
		Zoom:    1,
		Atlas:   atlas,
		Palette: palette,
		log:     log,
	}
}

func (s *ImageSurface) lookup(index uint32) (Sprite, bool) {
	sp, ok := s.Atlas.Sprite(index)
	if !ok {
		s.Missing++
		s.log.Debug().Uint32("index", index).Msg("Sprite not in atlas")
	}
	return sp, ok
}

func (s *ImageSurface) DrawImage(p image.Point, img draw.Image) {
	sp, ok := s.lookup(img.Index)
	if !ok {
		return
	}
	s.blit(p, sp.Offset, s.remap(sp.Image, img.Colours))
}

func (s *ImageSurface) DrawImageSolid(p image.Point, img draw.Image, shade draw.Shade) {
	sp, ok := s.lookup(img.Index)
	if !ok {
		return
	}
	b := sp.Image.Bounds()
	solid := image.NewRGBA(b)
	c := image.NewUniform(s.Palette.Shade(shade.Colour, shade.Level))
	xdraw.DrawMask(solid, b, c, image.Point{}, sp.Image, b.Min, xdraw.Src)
	s.blit(p, sp.Offset, solid)
}

// remap replaces remap key pixels with the scheme's colours.
func (s *ImageSurface) remap(src image.Image, colours company.ColourScheme) image.Image {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	xdraw.Draw(dst, b, src, b.Min, xdraw.Src)
	scheme := [2]uint8{colours.Primary, colours.Secondary}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			slot, level, ok := remapLevel(dst.RGBAAt(x, y))
			if ok {
				dst.SetRGBA(x, y, s.Palette.Shade(scheme[slot], level))
			}
		}
	}
	return dst
}

func (s *ImageSurface) blit(p, offset image.Point, src image.Image) {
	zoom := max(s.Zoom, 1)
	sb := src.Bounds()
	at := p.Add(offset).Sub(s.Origin).Mul(zoom).Add(s.Dst.Bounds().Min)
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size().Mul(zoom))}
	if zoom == 1 {
		xdraw.Draw(s.Dst, r, src, sb.Min, xdraw.Over)
		return
	}
	xdraw.NearestNeighbor.Scale(s.Dst, r, src, sb, xdraw.Over, nil)
}

// Fill paints the whole destination, typically with a window background.
func (s *ImageSurface) Fill(c color.Color) {
	xdraw.Draw(s.Dst, s.Dst.Bounds(), image.NewUniform(c), image.Point{}, xdraw.Src)
}

// Call is one recorded draw.
type Call struct {
	At    image.Point
	Image draw.Image
	Solid bool
	Shade draw.Shade
}

// RecordingSurface keeps every draw in order instead of rasterising.
type RecordingSurface struct {
	Calls []Call
}

func (r *RecordingSurface) DrawImage(p image.Point, img draw.Image) {
	r.Calls = append(r.Calls, Call{At: p, Image: img})
}

func (r *RecordingSurface) DrawImageSolid(p image.Point, img draw.Image, shade draw.Shade) {
	r.Calls = append(r.Calls, Call{At: p, Image: img, Solid: true, Shade: shade})
}

// Indices returns the sprite indices drawn, in draw order.
func (r *RecordingSurface) Indices() []uint32 {
	out := make([]uint32, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = c.Image.Index
	}
	return out
}

func (r *RecordingSurface) Reset() {
	r.Calls = r.Calls[:0]
}
