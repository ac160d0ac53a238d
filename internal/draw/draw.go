// Package draw renders game graphics into a terminal using half-block
// characters, giving a width x height*2 pixel grid with 24-bit color.
package draw

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X, Y float64
}

// BlockUpperHalf colors two vertically stacked pixels per cell: the
// foreground paints the top pixel, the background the bottom one.
const BlockUpperHalf = '▀'

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// ResetStyle clears any active color attributes.
func ResetStyle(w io.Writer) {
	fmt.Fprint(w, "\033[0m")
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
