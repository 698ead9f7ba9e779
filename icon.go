package main

import (
	"image"
	"image/color"
	"image/draw"

	"icon-gen/unitext"
)

// iconLabel mixes a Latin letter and a Hangul syllable on purpose,
// so a broken mixed-script setup shows up in the output right away.
const iconLabel = "A한"

var (
	iconBackground = mustHexColor("#4A90E2")
	iconForeground = color.NRGBA{255, 255, 255, 255}
)

// RenderIcon draws one square icon : a solid background with the label
// centered by its measured glyph bounding box. Behavior for
// non-positive sizes is undefined.
func RenderIcon(size int) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(iconBackground), image.Point{}, draw.Src)

	fontSize := int(float64(size) * 0.4)

	desired := unitext.MakeDesiredFont()
	desired.Families = append(desired.Families, unitext.FontFamilySansSerif)

	label := unitext.ShapeText(iconLabel, desired, fontSize)

	w, h := label.Bounds()
	x := (size - w) / 2
	y := (size - h) / 2

	label.Draw(canvas, x, y, iconForeground)

	return canvas
}
