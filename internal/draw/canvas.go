package draw

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a packed 24-bit color, the storage form of colorful.Color.
type RGB struct {
	R, G, B uint8
}

// ToRGB converts a colorful.Color to its packed form.
func ToRGB(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}

// Canvas is a color drawing buffer with 2x vertical resolution using
// half-block characters. Foreground pixels are drawn over a per-pixel
// background layer, so a full-screen gradient costs no extra cells.
type Canvas struct {
	termWidth      int   // Terminal columns
	termHeight     int   // Terminal rows
	subPixelHeight int   // termHeight * 2
	on             []bool
	fg             []RGB // Color of set pixels, [y*termWidth + x]
	bg             []RGB // Background layer, same indexing

	// Translation applied to all foreground drawing (screen shake).
	transX float64
	transY float64

	// Reusable buffers to reduce per-frame allocations
	renderBuf       strings.Builder
	intersectionBuf []float64
	polygonBuf      []Point
}

// NewCanvas creates a canvas for the given terminal dimensions.
// The pixel grid is termWidth x termHeight*2.
func NewCanvas(termWidth, termHeight int) *Canvas {
	c := &Canvas{}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize reallocates the buffers for new terminal dimensions.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 1 {
		termWidth = 1
	}
	if termHeight < 1 {
		termHeight = 1
	}
	if termWidth == c.termWidth && termHeight == c.termHeight {
		return
	}
	c.termWidth = termWidth
	c.termHeight = termHeight
	c.subPixelHeight = termHeight * 2
	n := c.subPixelHeight * termWidth
	c.on = make([]bool, n)
	c.fg = make([]RGB, n)
	c.bg = make([]RGB, n)
}

// Width returns the pixel grid width (terminal columns).
func (c *Canvas) Width() int { return c.termWidth }

// Height returns the pixel grid height (terminal rows * 2).
func (c *Canvas) Height() int { return c.subPixelHeight }

// TerminalWidth returns the terminal column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the terminal row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// Clear resets all foreground pixels. The background layer is left alone;
// callers repaint it every frame.
func (c *Canvas) Clear() {
	clear(c.on)
}

// SetTranslation offsets all subsequent foreground drawing by (dx, dy) pixels.
func (c *Canvas) SetTranslation(dx, dy float64) {
	c.transX = dx
	c.transY = dy
}

// ResetTranslation clears the drawing offset.
func (c *Canvas) ResetTranslation() {
	c.transX = 0
	c.transY = 0
}

// Background paints one background pixel. Ignores out-of-range coordinates.
// The translation offset does not apply; the background never shakes.
func (c *Canvas) Background(x, y int, col RGB) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.bg[y*c.termWidth+x] = col
	}
}

// BackgroundAt returns the background color at a pixel, for alpha blending
// foreground elements against whatever is behind them.
func (c *Canvas) BackgroundAt(x, y int) RGB {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.bg[y*c.termWidth+x]
	}
	return RGB{}
}

// setPixel sets a foreground pixel at integer coordinates (no translation).
func (c *Canvas) setPixel(x, y int, col RGB) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		i := y*c.termWidth + x
		c.on[i] = true
		c.fg[i] = col
	}
}

// SetFloat sets a foreground pixel at float coordinates, translation applied.
func (c *Canvas) SetFloat(x, y float64, col RGB) {
	c.setPixel(int(math.Round(x+c.transX)), int(math.Round(y+c.transY)), col)
}

// FillCircle fills a circle centered at (cx, cy) with the given pixel radius.
func (c *Canvas) FillCircle(cx, cy, r float64, col RGB) {
	if r <= 0 {
		c.SetFloat(cx, cy, col)
		return
	}
	cx += c.transX
	cy += c.transY
	minY := int(math.Floor(cy - r))
	maxY := int(math.Ceil(cy + r))
	for y := minY; y <= maxY; y++ {
		dy := float64(y) - cy
		span := r*r - dy*dy
		if span < 0 {
			continue
		}
		half := math.Sqrt(span)
		for x := int(math.Ceil(cx - half)); x <= int(math.Floor(cx + half)); x++ {
			c.setPixel(x, y, col)
		}
	}
}

// DrawLine draws a line between two points using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, col RGB) {
	x1 := int(math.Round(p1.X + c.transX))
	y1 := int(math.Round(p1.Y + c.transY))
	x2 := int(math.Round(p2.X + c.transX))
	y2 := int(math.Round(p2.Y + c.transY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.setPixel(x1, y1, col)

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawPolygon draws a polygon. If filled is true, the interior is filled
// using a scanline pass before the outline.
func (c *Canvas) DrawPolygon(points []Point, col RGB, filled bool) {
	if len(points) < 3 {
		return
	}

	if filled {
		c.fillPolygon(points, col)
	}

	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n], col)
	}
}

// fillPolygon fills a polygon using the scanline algorithm.
func (c *Canvas) fillPolygon(points []Point, col RGB) {
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	yStart := int(math.Floor(minY + c.transY))
	yEnd := int(math.Ceil(maxY + c.transY))

	for y := yStart; y <= yEnd; y++ {
		scanY := float64(y) + 0.5 - c.transY

		intersections := c.intersectionBuf[:0]

		n := len(points)
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]

			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				intersections = append(intersections, p1.X+t*(p2.X-p1.X))
			}
		}

		c.intersectionBuf = intersections

		sort.Float64s(intersections)

		for i := 0; i+1 < len(intersections); i += 2 {
			xStart := int(math.Ceil(intersections[i] + c.transX))
			xEnd := int(math.Floor(intersections[i+1] + c.transX))
			for x := xStart; x <= xEnd; x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// BorrowPoints returns a reusable slice of Points with the given length.
// Only valid until the next call; avoids per-frame polygon allocations.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.polygonBuf) < n {
		c.polygonBuf = make([]Point, n)
	}
	return c.polygonBuf[:n]
}

// maxChunkSize is the maximum bytes to write at once for smooth network flow
// over SSH. Roughly one MTU.
const maxChunkSize = 1400

// Render outputs the canvas using upper-half-block characters: the cell
// foreground colors the top pixel, the cell background the bottom pixel.
// Color escape codes are only emitted when the color changes between cells.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 16)

	var lastTop, lastBottom RGB
	haveStyle := false

	for row := 0; row < c.termHeight; row++ {
		topOffset := (row * 2) * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth

		fmt.Fprintf(&c.renderBuf, "\033[%d;1H", row+1)

		for col := 0; col < c.termWidth; col++ {
			top := c.bg[topOffset+col]
			if c.on[topOffset+col] {
				top = c.fg[topOffset+col]
			}
			bottom := c.bg[bottomOffset+col]
			if c.on[bottomOffset+col] {
				bottom = c.fg[bottomOffset+col]
			}

			if !haveStyle || top != lastTop || bottom != lastBottom {
				fmt.Fprintf(&c.renderBuf, "\033[38;2;%d;%d;%d;48;2;%d;%d;%dm",
					top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
				lastTop, lastBottom = top, bottom
				haveStyle = true
			}
			c.renderBuf.WriteRune(BlockUpperHalf)
		}
	}
	c.renderBuf.WriteString("\033[0m")

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}
