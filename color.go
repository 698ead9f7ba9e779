package main

import (
	"fmt"
	"image/color"
)

// ParseHexColor parses "#RRGGBB" into an opaque color.
func ParseHexColor(s string) (color.NRGBA, error) {
	var r, g, b uint8

	n, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("failed to parse color %q : %w", s, err)
	}
	if n != 3 {
		return color.NRGBA{}, fmt.Errorf("failed to parse color %q", s)
	}

	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}, nil
}

func mustHexColor(s string) color.NRGBA {
	c, err := ParseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}
