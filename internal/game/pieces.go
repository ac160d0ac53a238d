package game

import (
	"image"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// makePieces rasterizes the error code centered in the viewport and converts
// opaque pixels into destructible pieces. The glyph bounding box is scanned
// on a fixed grid step, so there is at most one piece per grid cell.
//
// Returns an empty set when the viewport is too small to rasterize the text;
// the game then degrades to a no-target state instead of failing.
func makePieces(text string, width, height float64, hueMin, hueMax float64, rng *rand.Rand) []Piece {
	img, ok := rasterizeLabel(text, width, height)
	if !ok {
		return nil
	}

	offsetX := (width - float64(img.Rect.Dx())) / 2
	offsetY := height*glyphCenterYFrac - float64(img.Rect.Dy())/2

	var pieces []Piece
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y += pieceStep {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x += pieceStep {
			if img.RGBAAt(x, y).A <= pieceAlphaThreshold {
				continue
			}
			jx := rng.Float64()*2 - 1
			jy := rng.Float64()*2 - 1
			pieces = append(pieces, Piece{
				X:      offsetX + float64(x) + jx,
				Y:      offsetY + float64(y) + jy,
				Radius: pieceRadiusMin + rng.Float64()*pieceRadiusRand,
				Color:  colorful.Hsv(sampleHue(rng, hueMin, hueMax), 0.65, 1.0),
			})
		}
	}
	return pieces
}

// sampleHue draws a hue uniformly from [hueMin, hueMax] degrees.
// hueMin > hueMax wraps the range through 0 (e.g. 340..20 spans 40 degrees).
func sampleHue(rng *rand.Rand, hueMin, hueMax float64) float64 {
	span := hueMax - hueMin
	if span < 0 {
		span += 360
	}
	h := hueMin + rng.Float64()*span
	if h >= 360 {
		h -= 360
	}
	return h
}

// rasterizeLabel draws text with the built-in bitmap face and scales it so
// the glyph height is proportional to the smaller viewport dimension.
// Returns false when no usable surface can be produced.
func rasterizeLabel(text string, width, height float64) (*image.RGBA, bool) {
	if text == "" || width < 1 || height < 1 {
		return nil, false
	}

	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Ceil()
	if textWidth <= 0 {
		return nil, false
	}

	small := image.NewRGBA(image.Rect(0, 0, textWidth, face.Height))
	d := &font.Drawer{
		Dst:  small,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)

	minDim := width
	if height < minDim {
		minDim = height
	}
	scale := minDim * glyphHeightFrac / float64(face.Height)
	if maxScale := width * 0.9 / float64(textWidth); scale > maxScale {
		scale = maxScale
	}
	if scale < 1 {
		// Viewport too small for even an unscaled label
		return nil, false
	}

	outW := int(float64(textWidth) * scale)
	outH := int(float64(face.Height) * scale)
	if outW < 1 || outH < 1 {
		return nil, false
	}

	big := image.NewRGBA(image.Rect(0, 0, outW, outH))
	xdraw.NearestNeighbor.Scale(big, big.Rect, small, small.Rect, xdraw.Src, nil)
	return big, true
}
