package game

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/davrk/errblast/internal/draw"
	xdraw "golang.org/x/image/draw"
)

// Sprite is the optional player ship image, downscaled to a small pixel
// grid at load time. The renderer samples it over the player's rectangle,
// so one sprite survives any number of resizes.
type Sprite struct {
	W, H int
	on   []bool
	px   []draw.RGB
}

const (
	spriteCols = 28
	spriteRows = 20
)

// LoadSprite decodes an image file and converts it to sprite cells.
// Pixels with alpha below half are treated as transparent.
func LoadSprite(path string) (*Sprite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sprite: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode sprite: %w", err)
	}

	scaled := image.NewRGBA(image.Rect(0, 0, spriteCols, spriteRows))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Rect, src, src.Bounds(), xdraw.Src, nil)

	sp := &Sprite{
		W:  spriteCols,
		H:  spriteRows,
		on: make([]bool, spriteCols*spriteRows),
		px: make([]draw.RGB, spriteCols*spriteRows),
	}
	for y := 0; y < spriteRows; y++ {
		for x := 0; x < spriteCols; x++ {
			c := scaled.RGBAAt(x, y)
			if c.A < 128 {
				continue
			}
			i := y*spriteCols + x
			sp.on[i] = true
			sp.px[i] = draw.RGB{R: c.R, G: c.G, B: c.B}
		}
	}
	return sp, nil
}

// At samples the sprite at normalized coordinates u, v in [0, 1).
// The second return is false for transparent cells.
func (sp *Sprite) At(u, v float64) (draw.RGB, bool) {
	x := int(u * float64(sp.W))
	y := int(v * float64(sp.H))
	if x < 0 || x >= sp.W || y < 0 || y >= sp.H {
		return draw.RGB{}, false
	}
	i := y*sp.W + x
	return sp.px[i], sp.on[i]
}
