package game

import "github.com/davrk/errblast/internal/draw"

// showOverlay fires the external hook (if any) and switches on the built-in
// text overlay. Called at most once per playthrough by the update path.
func (l *Loop) showOverlay() {
	l.overlayVisible = true
	if l.overlay.Show != nil {
		l.overlay.Show()
	}
}

// hideOverlay fires the external hide hook and clears the built-in overlay.
func (l *Loop) hideOverlay() {
	l.overlayVisible = false
	if l.overlay.Hide != nil {
		l.overlay.Hide()
	}
}

// drawOverlay draws the end-of-game panel into the chunk writer, on top of
// the rendered canvas. A solid background keeps the text legible over the
// pixel layer.
func (l *Loop) drawOverlay() {
	t := l.session.Theme
	midRow := l.canvas.TerminalHeight() / 2

	l.cw.SetBg(draw.ToRGB(t.BgOuter))
	l.cw.SetFg(draw.ToRGB(t.Accent.BlendRgb(white, 0.6)))
	l.drawCentered(midRow-1, "ERROR "+t.Code+" DESTROYED")
	l.cw.SetFg(draw.ToRGB(t.Accent))
	l.drawCentered(midRow+1, t.Message)
	l.cw.SetFg(draw.ToRGB(t.Accent.BlendRgb(t.BgOuter, 0.4)))
	l.drawCentered(midRow+3, "R restart   Q quit")
	l.cw.Reset()
}

// drawCentered writes one line of text horizontally centered at row.
// Text wider than the terminal is clipped to column 1.
func (l *Loop) drawCentered(row int, text string) {
	col := (l.canvas.TerminalWidth()-len(text))/2 + 1
	if col < 1 {
		col = 1
	}
	l.cw.WriteAt(col, row, text)
}
