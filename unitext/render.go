package unitext

// Glyph rasterization for shaped runs, following go-text/render.
// Outline glyphs go through a rasterx filler, color bitmap and SVG
// glyphs are decoded and scaled into place.

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"

	scale "golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/tiff"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/go-text/typesetting/opentype/api"
	"github.com/go-text/typesetting/shaping"
)

// glyphRenderer draws one shaped run at a time onto a canvas.
// Not safe for concurrent use.
type glyphRenderer struct {
	// fontSize is the pixel size the run was shaped at
	fontSize float32
	// color is the pen color
	color color.Color

	filler      *rasterx.Filler
	fillerScale float32
}

// drawRun rasterizes run onto img with the baseline origin at
// (startX, startY) and returns the x position after the last glyph.
func (r *glyphRenderer) drawRun(run shaping.Output, img draw.Image, startX, startY int) int {
	glyphScale := r.fontSize / float32(run.Face.Upem())
	r.fillerScale = glyphScale

	b := img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	filler := rasterx.NewFiller(b.Dx(), b.Dy(), scanner)
	filler.SetColor(r.color)
	r.filler = filler

	x := float32(startX)
	y := float32(startY)

	for _, g := range run.Glyphs {
		xPos := x + fixed266ToFloat32(g.XOffset)
		yPos := y - fixed266ToFloat32(g.YOffset)

		switch data := run.Face.GlyphData(g.GlyphID).(type) {
		case api.GlyphOutline:
			r.drawOutline(data, filler, glyphScale, xPos, yPos)
		case api.GlyphBitmap:
			_ = r.drawBitmap(g, data, img, xPos, yPos)
		case api.GlyphSVG:
			_ = r.drawSVG(g, data, img, xPos, yPos)
		}

		x += fixed266ToFloat32(g.XAdvance)
	}

	filler.Draw()
	r.filler = nil

	return int(math.Ceil(float64(x)))
}

func (r *glyphRenderer) drawOutline(outline api.GlyphOutline, f *rasterx.Filler, glyphScale float32, x, y float32) {
	fp := func(p api.SegmentPoint) fixed.Point26_6 {
		return fixed.Point26_6{
			X: floatToFixed266(p.X*glyphScale + x),
			Y: floatToFixed266(-p.Y*glyphScale + y),
		}
	}

	for _, s := range outline.Segments {
		switch s.Op {
		case api.SegmentOpMoveTo:
			f.Start(fp(s.Args[0]))
		case api.SegmentOpLineTo:
			f.Line(fp(s.Args[0]))
		case api.SegmentOpQuadTo:
			f.QuadBezier(fp(s.Args[0]), fp(s.Args[1]))
		case api.SegmentOpCubeTo:
			f.CubeBezier(fp(s.Args[0]), fp(s.Args[1]), fp(s.Args[2]))
		}
	}
	f.Stop(true)
}

func (r *glyphRenderer) drawBitmap(g shaping.Glyph, bitmap api.GlyphBitmap, img draw.Image, x, y float32) error {
	// scaled glyph rect content
	top := y - fixed266ToFloat32(g.YBearing)
	bottom := top - fixed266ToFloat32(g.Height)
	right := x + fixed266ToFloat32(g.Width)

	switch bitmap.Format {
	case api.BlackAndWhite:
		rec := image.Rect(0, 0, bitmap.Width, bitmap.Height)
		sub := image.NewPaletted(rec, color.Palette{color.Transparent, r.color})

		for i := range sub.Pix {
			sub.Pix[i] = bitAt(bitmap.Data, i)
		}

		rect := image.Rect(int(x), int(top), int(right), int(bottom))
		scale.NearestNeighbor.Scale(img, rect, sub, sub.Bounds(), draw.Over, nil)
	case api.JPG, api.PNG, api.TIFF:
		pix, _, err := image.Decode(bytes.NewReader(bitmap.Data))
		if err != nil {
			return err
		}

		rect := image.Rect(int(x), int(top), int(right), int(bottom))
		scale.BiLinear.Scale(img, rect, pix, pix.Bounds(), draw.Over, nil)
	}

	if bitmap.Outline != nil {
		r.drawOutline(*bitmap.Outline, r.filler, r.fillerScale, x, y)
	}
	return nil
}

func (r *glyphRenderer) drawSVG(g shaping.Glyph, svg api.GlyphSVG, img draw.Image, x, y float32) error {
	pixWidth := g.Width.Round()
	pixHeight := (-g.Height).Round()

	pix, err := renderSVGStream(bytes.NewReader(svg.Source), pixWidth, pixHeight)
	if err != nil {
		return err
	}

	rect := image.Rect(g.XBearing.Round(), (-g.YBearing).Round(), pixWidth, pixHeight)
	draw.Draw(img, rect.Add(image.Point{X: int(x), Y: int(y)}), pix, image.Point{}, draw.Over)

	// the svg.Outline shapes are a fallback which we won't use
	return nil
}

func renderSVGStream(stream io.Reader, width, height int) (*image.NRGBA, error) {
	icon, err := oksvg.ReadIconStream(stream)
	if err != nil {
		return nil, err
	}

	iconAspect := float32(icon.ViewBox.W / icon.ViewBox.H)
	viewAspect := float32(width) / float32(height)

	imgW, imgH := width, height
	if viewAspect > iconAspect {
		imgW = int(float32(height) * iconAspect)
	} else if viewAspect < iconAspect {
		imgH = int(float32(width) / iconAspect)
	}

	icon.SetTarget(icon.ViewBox.X, icon.ViewBox.Y, float64(imgW), float64(imgH))

	out := image.NewNRGBA(image.Rect(0, 0, imgW, imgH))
	scanner := rasterx.NewScannerGV(int(icon.ViewBox.W), int(icon.ViewBox.H), out, out.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)

	icon.Draw(raster, 1)
	return out, nil
}

// bitAt returns the bit at the given index in the byte slice.
func bitAt(b []byte, i int) byte {
	return (b[i/8] >> (7 - i%8)) & 1
}
