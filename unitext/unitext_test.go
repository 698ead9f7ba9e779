package unitext

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestStringToRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "hello", "hello"},
		{"mixed script", "A한", "A한"},
		{"empty", "", ""},
		{"invalid byte", "A" + string([]byte{0xFF}), "A<0xFF> "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(StringToRunes(tt.in))
			if got != tt.want {
				t.Errorf("StringToRunes(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCheckAvailable(t *testing.T) {
	if err := CheckAvailable(); err != nil {
		t.Fatalf("CheckAvailable() = %v, want nil", err)
	}
}

func TestShapeTextNeverFails(t *testing.T) {
	// works with or without system fonts, falling back if needed
	CacheDir = t.TempDir()
	defer func() { CacheDir = "" }()

	txt := ShapeText("A한", MakeDesiredFont(), 20)
	if txt == nil {
		t.Fatal("ShapeText returned nil")
	}

	w, h := txt.Bounds()
	if w <= 0 || h <= 0 {
		t.Fatalf("Bounds() = %dx%d, want positive", w, h)
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	txt.Draw(canvas, (64-w)/2, (64-h)/2, color.NRGBA{255, 255, 255, 255})
}

func TestShapeTextBadCacheDir(t *testing.T) {
	// a cache path under a regular file makes system font indexing fail
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	oldCacheDir := CacheDir
	CacheDir = filepath.Join(blocker, "font-cache")
	defer func() { CacheDir = oldCacheDir }()

	// every call must degrade to the fallback, not panic. Later calls
	// matter too : after a failed indexing attempt the font map can
	// report success with an empty database and hand out nil faces.
	for i := 0; i < 3; i++ {
		txt := ShapeText("A한", MakeDesiredFont(), 20)

		w, h := txt.Bounds()
		if w <= 0 || h <= 0 {
			t.Fatalf("call %d : Bounds() = %dx%d, want positive", i, w, h)
		}

		canvas := image.NewNRGBA(image.Rect(0, 0, 64, 64))
		txt.Draw(canvas, (64-w)/2, (64-h)/2, color.NRGBA{255, 255, 255, 255})
	}
}

func TestShapeTextEmpty(t *testing.T) {
	txt := ShapeText("", MakeDesiredFont(), 20)

	w, h := txt.Bounds()
	if w != 0 || h != 0 {
		t.Errorf("Bounds() of empty text = %dx%d, want 0x0", w, h)
	}

	// drawing empty text is a no-op, not a panic
	canvas := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	txt.Draw(canvas, 0, 0, color.NRGBA{255, 255, 255, 255})
}

func TestFallbackTextBounds(t *testing.T) {
	ft, err := newFallbackText("A한", 20)
	if err != nil {
		t.Fatalf("newFallbackText failed : %v", err)
	}

	w, h := ft.bounds()
	if w <= 0 || h <= 0 {
		t.Fatalf("fallback bounds = %dx%d, want positive", w, h)
	}
}

func TestFallbackTextDraw(t *testing.T) {
	const size = 64

	ft, err := newFallbackText("A", 24)
	if err != nil {
		t.Fatalf("newFallbackText failed : %v", err)
	}

	w, h := ft.bounds()
	if w <= 0 || h <= 0 || w > size || h > size {
		t.Fatalf("fallback bounds = %dx%d, want within %dx%d", w, h, size, size)
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	x := (size - w) / 2
	y := (size - h) / 2
	ft.draw(canvas, x, y, color.NRGBA{255, 255, 255, 255})

	// some ink must land inside the bounding box...
	inked := false
	for py := y; py < y+h && !inked; py++ {
		for px := x; px < x+w; px++ {
			if canvas.NRGBAAt(px, py).A != 0 {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("no pixels drawn inside the bounding box")
	}

	// ...and none outside it (allow one pixel of rounding slack)
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			outside := px < x-1 || px > x+w || py < y-1 || py > y+h
			if outside && canvas.NRGBAAt(px, py).A != 0 {
				t.Fatalf("pixel (%d,%d) inked outside the bounding box", px, py)
			}
		}
	}
}

func TestFallbackTextDeterministic(t *testing.T) {
	a, err := newFallbackText("A한", 20)
	if err != nil {
		t.Fatal(err)
	}
	b, err := newFallbackText("A한", 20)
	if err != nil {
		t.Fatal(err)
	}

	aw, ah := a.bounds()
	bw, bh := b.bounds()
	if aw != bw || ah != bh {
		t.Errorf("fallback bounds differ across loads : %dx%d vs %dx%d", aw, ah, bw, bh)
	}
}
