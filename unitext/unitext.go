package unitext

import (
	"errors"
	"fmt"
	"image/color"
	"image/draw"
	"io"
	"log"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/image/math/fixed"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/fontscan"
	"github.com/go-text/typesetting/shaping"

	"golang.org/x/exp/constraints"
)

// Logger receives diagnostics from font discovery and shaping.
// Optional, may stay nil.
var Logger *log.Logger

// CacheDir is where the system font index is kept between runs.
// Empty means a subdirectory of the OS temp directory.
var CacheDir string

var shaper shaping.HarfbuzzShaper

// Text is a measured, ready to draw piece of shaped text.
// Create with ShapeText. Not safe for concurrent use.
type Text struct {
	outputs  []shaping.Output
	fontSize int

	// tight glyph bounding box, relative to the baseline origin,
	// y growing downward
	minX, minY, maxX, maxY fixed.Int26_6

	fallback *fallbackText
}

// ShapeText shapes text at fontSize pixels using system fonts matching
// desired. It never fails : on any fault the returned Text is backed by
// the built-in fallback font instead.
//
// Mixed-script strings may be split across multiple system faces.
func ShapeText(text string, desired DesiredFont, fontSize int) *Text {
	t, err := shapeSystem(text, desired, fontSize)
	if err == nil {
		return t
	}

	logf("failed to shape %q with system fonts : %v", text, err)
	logf("using built-in fallback font")

	fb, err := newFallbackText(text, fontSize)
	if err != nil {
		// the fallback font is compiled in, so this only happens
		// if its data is corrupt
		logf("failed to load built-in font : %v", err)
		return &Text{}
	}

	return &Text{fallback: fb}
}

func shapeSystem(text string, desired DesiredFont, fontSize int) (*Text, error) {
	runes := StringToRunes(text)
	if len(runes) == 0 {
		return &Text{}, nil
	}

	logger := Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	fontMap := fontscan.NewFontMap(logger)
	fontMap.SetQuery(fontscan.Query{
		Families: desired.Families,
		Aspect:   desired.aspect(),
	})

	cacheDir := CacheDir
	if cacheDir == "" {
		cacheDir = filepath.Join(os.TempDir(), "icon-gen-font-cache")
	}
	if err := fontMap.UseSystemFonts(cacheDir); err != nil {
		return nil, fmt.Errorf("failed to index system fonts : %w", err)
	}

	input := shaping.Input{
		Text: runes,

		RunStart: 0,
		RunEnd:   len(runes),

		Size:      fixed.I(fontSize),
		Direction: di.DirectionLTR,
	}

	t := &Text{fontSize: fontSize}

	for _, in := range shaping.SplitByFace(input, fontMap) {
		// the font map hands out nil faces when its database is
		// empty, and shaping one panics
		if in.Face == nil {
			return nil, errors.New("no usable face for text run")
		}
		t.outputs = append(t.outputs, shaper.Shape(in))
	}

	t.measure()

	return t, nil
}

// measure computes the tight bounding box of the shaped glyphs from
// their extents, not their advances. Empty glyphs (spaces) only move
// the pen.
func (t *Text) measure() {
	var penX fixed.Int26_6
	first := true

	for _, out := range t.outputs {
		for _, g := range out.Glyphs {
			if g.Width != 0 && g.Height != 0 {
				x0 := penX + g.XOffset + g.XBearing
				x1 := x0 + g.Width

				// YBearing is above the baseline, Height extends
				// downward as a negative value
				y0 := -(g.YOffset + g.YBearing)
				y1 := y0 - g.Height

				if first {
					t.minX, t.maxX = x0, x1
					t.minY, t.maxY = y0, y1
					first = false
				} else {
					t.minX = min(t.minX, x0)
					t.maxX = max(t.maxX, x1)
					t.minY = min(t.minY, y0)
					t.maxY = max(t.maxY, y1)
				}
			}

			penX += g.XAdvance
		}
	}
}

// Bounds returns the pixel width and height of the text's bounding box.
func (t *Text) Bounds() (w, h int) {
	if t.fallback != nil {
		return t.fallback.bounds()
	}
	if len(t.outputs) == 0 {
		return 0, 0
	}
	return (t.maxX - t.minX).Ceil(), (t.maxY - t.minY).Ceil()
}

// Draw rasterizes the text onto dst in color c, placing the top-left
// corner of the bounding box at (x, y).
func (t *Text) Draw(dst draw.Image, x, y int, c color.Color) {
	if t.fallback != nil {
		t.fallback.draw(dst, x, y, c)
		return
	}
	if len(t.outputs) == 0 {
		return
	}

	r := glyphRenderer{
		fontSize: float32(t.fontSize),
		color:    c,
	}

	dotX := fixed.I(x) - t.minX
	dotY := fixed.I(y) - t.minY

	for _, out := range t.outputs {
		r.drawRun(out, dst, dotX.Round(), dotY.Round())
		dotX += out.Advance
	}
}

// StringToRunes decodes text into runes, replacing invalid bytes with
// their hexcode like "<0xFF> " instead of utf8.RuneError.
func StringToRunes(text string) []rune {
	strBytes := []byte(text)

	var runes []rune

	for {
		r, size := utf8.DecodeRune(strBytes)

		if r == utf8.RuneError && size == 0 {
			break
		} else if r == utf8.RuneError {
			byteString := fmt.Sprintf("<0x%X> ", strBytes[0])
			for _, char := range byteString {
				runes = append(runes, char)
			}
		} else {
			runes = append(runes, r)
		}
		strBytes = strBytes[size:]
	}

	return runes
}

func logf(format string, args ...any) {
	if Logger != nil {
		Logger.Printf(format, args...)
	}
}

func fixed266ToFloat32(i fixed.Int26_6) float32 {
	return float32(i) / 64
}

func floatToFixed266[F constraints.Float](f F) fixed.Int26_6 {
	return fixed.Int26_6(int(f * 64))
}
