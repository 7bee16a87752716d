package gfx

import (
	"image"
	"image/color"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"locoveh/company"
	"locoveh/draw"
)

var red = color.RGBA{0xFF, 0, 0, 0xFF}

func testPalette() Palette {
	p := make(Palette, 2)
	for l := range ShadesPerColour {
		p[0][l] = color.RGBA{uint8(l), 0, 0, 0xFF}
		p[1][l] = color.RGBA{0, uint8(l * 10), 0, 0xFF}
	}
	return p
}

func testAtlas() MapAtlas {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, PrimaryRemap(3))
	img.SetRGBA(1, 0, red)
	img.SetRGBA(1, 1, SecondaryRemap(0))
	dot := image.NewRGBA(image.Rect(0, 0, 1, 1))
	dot.SetRGBA(0, 0, red)
	return MapAtlas{
		1: {Image: img},
		2: {Image: dot, Offset: image.Pt(-1, -1)},
	}
}

func newSurface() (*image.RGBA, *ImageSurface) {
	dst := image.NewRGBA(image.Rect(0, 0, 6, 6))
	return dst, NewImageSurface(dst, testAtlas(), testPalette(), zerolog.Nop())
}

func TestDrawImageRemaps(t *testing.T) {
	dst, s := newSurface()
	s.DrawImage(image.Pt(1, 1), draw.Image{Index: 1, Colours: company.ColourScheme{Primary: 1, Secondary: 0}})
	assert.Equal(t, color.RGBA{0, 30, 0, 0xFF}, dst.RGBAAt(1, 1))
	assert.Equal(t, red, dst.RGBAAt(2, 1))
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(1, 2))
	assert.Equal(t, color.RGBA{0, 0, 0, 0xFF}, dst.RGBAAt(2, 2))
	assert.Equal(t, 0, s.Missing)
}

func TestDrawImageOffsetAndOrigin(t *testing.T) {
	dst, s := newSurface()
	s.Origin = image.Pt(-2, 0)
	s.DrawImage(image.Pt(1, 1), draw.Image{Index: 2})
	assert.Equal(t, red, dst.RGBAAt(2, 0))
}

func TestDrawImageZoom(t *testing.T) {
	dst, s := newSurface()
	s.Zoom = 2
	s.DrawImage(image.Pt(2, 2), draw.Image{Index: 2})
	for _, p := range []image.Point{{2, 2}, {3, 2}, {2, 3}, {3, 3}} {
		assert.Equal(t, red, dst.RGBAAt(p.X, p.Y), "%v", p)
	}
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(4, 4))
}

func TestDrawImageSolid(t *testing.T) {
	dst, s := newSurface()
	s.DrawImageSolid(image.Pt(0, 0), draw.Image{Index: 1}, draw.Shade{Colour: 1, Level: 4})
	shade := color.RGBA{0, 40, 0, 0xFF}
	assert.Equal(t, shade, dst.RGBAAt(0, 0))
	assert.Equal(t, shade, dst.RGBAAt(1, 0))
	assert.Equal(t, shade, dst.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(0, 1))
}

func TestDrawImageMissing(t *testing.T) {
	dst, s := newSurface()
	s.DrawImage(image.Pt(0, 0), draw.Image{Index: 9})
	s.DrawImageSolid(image.Pt(0, 0), draw.Image{Index: 9}, draw.Shade{})
	assert.Equal(t, 2, s.Missing)
	assert.Equal(t, color.RGBA{}, dst.RGBAAt(0, 0))
}

func TestFill(t *testing.T) {
	dst, s := newSurface()
	s.Fill(red)
	assert.Equal(t, red, dst.RGBAAt(5, 5))
}

func TestPaletteShade(t *testing.T) {
	p := testPalette()
	assert.Equal(t, color.RGBA{0, 110, 0, 0xFF}, p.Shade(1, 200))
	assert.Equal(t, color.RGBA{5, 0, 0, 0xFF}, p.Shade(9, 5))
	assert.Len(t, DefaultPalette(), 32)
	d := DefaultPalette()
	assert.Less(t, d[7][0].R, d[7][ShadesPerColour-1].R)
}

func TestGeneratedAtlas(t *testing.T) {
	sp, ok := GeneratedAtlas{Width: 8, Height: 6}.Sprite(5)
	assert.True(t, ok)
	assert.Equal(t, image.Pt(-4, -6), sp.Offset)
	img := sp.Image.(*image.RGBA)
	assert.Equal(t, color.RGBA{0x20, 0x20, 0x20, 0xFF}, img.RGBAAt(0, 0))
	assert.Equal(t, PrimaryRemap(6), img.RGBAAt(3, 1))
	assert.Equal(t, SecondaryRemap(5), img.RGBAAt(3, 4))
}

func TestRecordingSurface(t *testing.T) {
	var r RecordingSurface
	r.DrawImage(image.Pt(1, 2), draw.Image{Index: 7})
	r.DrawImageSolid(image.Pt(3, 4), draw.Image{Index: 8}, draw.Shade{Colour: 1, Level: 2})
	assert.Equal(t, []uint32{7, 8}, r.Indices())
	assert.True(t, r.Calls[1].Solid)
	r.Reset()
	assert.Empty(t, r.Calls)
}
