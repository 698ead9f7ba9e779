package unitext

import (
	"github.com/go-text/typesetting/fontscan"
	meta "github.com/go-text/typesetting/opentype/api/metadata"
)

// Generic families understood by the system font index, as defined by
// https://www.w3.org/TR/css-fonts-4/#generic-font-families
const (
	FontFamilySerif     = fontscan.Serif
	FontFamilySansSerif = fontscan.SansSerif
	FontFamilyMonospace = fontscan.Monospace
	FontFamilyCursive   = fontscan.Cursive
	FontFamilyFantasy   = fontscan.Fantasy
)

// Style (also called slant) allows italic or oblique faces to be selected.
type FontStyle = meta.Style

// Weight is the degree of blackness or stroke thickness of a font,
// from 100 to 900 with 400 as normal.
type FontWeight = meta.Weight

// Stretch is the width of a font as an approximate fraction of the
// normal width, from 0.5 to 2.0 with 1.0 as normal.
type FontStretch = meta.Stretch

const (
	StyleNormal FontStyle = meta.StyleNormal
	StyleItalic FontStyle = meta.StyleItalic

	WeightNormal FontWeight = meta.WeightNormal
	WeightBold   FontWeight = meta.WeightBold

	StretchNormal FontStretch = meta.StretchNormal
)

// DesiredFont describes which system fonts to query.
// Families are tried in order before the generic defaults.
type DesiredFont struct {
	Families []string

	Style   FontStyle
	Weight  FontWeight
	Stretch FontStretch
}

func MakeDesiredFont() DesiredFont {
	return DesiredFont{
		Style:   StyleNormal,
		Weight:  WeightNormal,
		Stretch: StretchNormal,
	}
}

func (df DesiredFont) aspect() meta.Aspect {
	aspect := meta.Aspect{
		Style:   df.Style,
		Weight:  df.Weight,
		Stretch: df.Stretch,
	}
	aspect.SetDefaults()

	return aspect
}
