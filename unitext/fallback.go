package unitext

// The fallback face is Go Regular, which ships inside golang.org/x/image.
// Loading it never touches the filesystem, so it is the guaranteed
// available degrade path when system fonts cannot be used.
//
// Go Regular has no Hangul coverage, so non-Latin label characters
// render as .notdef boxes on this path. That matches the behavior of
// a missing system font everywhere else.

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var builtinFont *opentype.Font

func loadBuiltinFont() (*opentype.Font, error) {
	if builtinFont != nil {
		return builtinFont, nil
	}

	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse built-in font : %w", err)
	}

	builtinFont = parsed
	return builtinFont, nil
}

// CheckAvailable reports whether text rasterization works at all.
// Call it once at startup before doing any rendering work.
func CheckAvailable() error {
	parsed, err := loadBuiltinFont()
	if err != nil {
		return err
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    12,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("failed to create built-in font face : %w", err)
	}

	return face.Close()
}

// fallbackText measures and draws through x/image/font instead of the
// shaping pipeline.
type fallbackText struct {
	face xfont.Face
	text string
	bbox fixed.Rectangle26_6
}

func newFallbackText(text string, fontSize int) (*fallbackText, error) {
	parsed, err := loadBuiltinFont()
	if err != nil {
		return nil, err
	}

	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(fontSize),
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create built-in font face : %w", err)
	}

	// sanitize the same way the shaping path does
	text = string(StringToRunes(text))

	bbox, _ := xfont.BoundString(face, text)

	return &fallbackText{
		face: face,
		text: text,
		bbox: bbox,
	}, nil
}

func (ft *fallbackText) bounds() (w, h int) {
	return (ft.bbox.Max.X - ft.bbox.Min.X).Ceil(), (ft.bbox.Max.Y - ft.bbox.Min.Y).Ceil()
}

func (ft *fallbackText) draw(dst draw.Image, x, y int, c color.Color) {
	d := &xfont.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: ft.face,
		Dot: fixed.Point26_6{
			X: fixed.I(x) - ft.bbox.Min.X,
			Y: fixed.I(y) - ft.bbox.Min.Y,
		},
	}
	d.DrawString(ft.text)
}
