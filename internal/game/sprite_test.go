package game

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a 10x10 image: opaque red left half, transparent right.
func writeTestPNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 5; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "ship.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSprite(t *testing.T) {
	sp, err := LoadSprite(writeTestPNG(t))
	if err != nil {
		t.Fatal(err)
	}
	if sp.W != spriteCols || sp.H != spriteRows {
		t.Fatalf("sprite %dx%d, want %dx%d", sp.W, sp.H, spriteCols, spriteRows)
	}

	if col, ok := sp.At(0.1, 0.5); !ok {
		t.Error("left half should be opaque")
	} else if col.R < 100 {
		t.Errorf("left half R = %d, want red-ish", col.R)
	}

	if _, ok := sp.At(0.9, 0.5); ok {
		t.Error("right half should be transparent")
	}
}

func TestSpriteAtOutOfRange(t *testing.T) {
	sp, err := LoadSprite(writeTestPNG(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := sp.At(-0.1, 0.5); ok {
		t.Error("negative u should be transparent")
	}
	if _, ok := sp.At(0.5, 1.5); ok {
		t.Error("v past 1 should be transparent")
	}
}

func TestLoadSpriteMissingFile(t *testing.T) {
	if _, err := LoadSprite(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadSpriteGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSprite(path); err == nil {
		t.Error("expected decode error")
	}
}
