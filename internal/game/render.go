package game

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/davrk/errblast/internal/draw"
	"github.com/davrk/errblast/internal/physics"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

// Render paints the current session state into the canvas. Fixed order:
// background gradient, nebula, stars, then with the shake offset applied as
// a canvas translation: pieces, explosion particles, player, bullets.
// The watermark is a text overlay; see RenderHUD. Rendering only reads the
// stores.
func (s *Session) Render(c *draw.Canvas, sprite *Sprite) {
	c.Clear()

	s.renderBackground(c)
	s.renderStars(c)

	dx, dy := s.Shake.Offset(s.rng)
	c.SetTranslation(dx, dy)

	s.renderPieces(c)
	s.renderParticles(c)
	s.renderPlayer(c, sprite)
	s.renderBullets(c)

	c.ResetTranslation()
}

// renderBackground paints the 3-stop radial gradient plus the drifting
// nebula blob into the canvas background layer.
func (s *Session) renderBackground(c *draw.Canvas) {
	w := float64(c.Width())
	h := float64(c.Height())

	cx := w / 2
	cy := h * 0.42
	maxDist := physics.Distance(0, 0, w/2, h*0.6)

	// Nebula center drifts on two independent phases
	nx := w * (0.5 + 0.3*math.Sin(s.Clock*0.23+1.7))
	ny := h * (0.35 + 0.25*math.Cos(s.Clock*0.31))
	nr := 0.5 * math.Min(w, h)

	t := s.Theme
	for y := 0; y < c.Height(); y++ {
		fy := float64(y)
		for x := 0; x < c.Width(); x++ {
			fx := float64(x)

			d := physics.Distance(fx, fy, cx, cy) / maxDist
			var col colorful.Color
			if d < 0.55 {
				col = t.BgInner.BlendRgb(t.BgMid, d/0.55)
			} else {
				col = t.BgMid.BlendRgb(t.BgOuter, math.Min(1, (d-0.55)/0.45))
			}

			nd := physics.Distance(fx, fy, nx, ny) / nr
			if nd < 1 {
				a := (1 - nd) * (1 - nd) * 0.55
				col = col.BlendRgb(t.NebulaA.BlendRgb(t.NebulaB, nd), a)
			}

			c.Background(x, y, draw.ToRGB(col))
		}
	}
}

// renderStars twinkles each star with a sine of global time plus its phase.
// Stars blend into whatever background lies beneath them.
func (s *Session) renderStars(c *draw.Canvas) {
	for _, st := range s.Stars {
		alpha := 0.25 + 0.7*(0.5+0.5*math.Sin(s.Clock*2.1+st.Phase))
		bg := c.BackgroundAt(int(st.X), int(st.Y))
		base := colorful.Color{
			R: float64(bg.R) / 255,
			G: float64(bg.G) / 255,
			B: float64(bg.B) / 255,
		}
		col := draw.ToRGB(base.BlendRgb(white, alpha))
		if st.Radius > 0.55 {
			c.FillCircle(st.X, st.Y, st.Radius, col)
		} else {
			c.SetFloat(st.X, st.Y, col)
		}
	}
}

// RenderHUD draws the text overlays on top of the flushed canvas: the
// pulsing error-code watermark in the top-right corner with its companion
// dot. Written after Canvas.Render so the text wins over the pixel layer.
func (s *Session) RenderHUD(cw *draw.ChunkWriter, termWidth int) {
	t := s.Theme
	alpha := 0.4 + 0.3*math.Sin(s.Clock*1.6)
	dotAlpha := 0.4 + 0.3*math.Sin(s.Clock*1.6+0.9)

	col := termWidth - len(t.Code) - 3
	if col < 1 {
		return
	}

	cw.SetFg(draw.ToRGB(t.BgOuter.BlendRgb(t.Accent, alpha)))
	cw.WriteAt(col, 2, t.Code)
	cw.SetFg(draw.ToRGB(t.BgOuter.BlendRgb(t.Accent, dotAlpha)))
	cw.WriteString(" •")
	cw.Reset()
}

// renderPieces draws each text fragment as a flat-colored dot.
func (s *Session) renderPieces(c *draw.Canvas) {
	for _, pc := range s.Pieces {
		c.FillCircle(pc.X, pc.Y, pc.Radius, draw.ToRGB(pc.Color))
	}
}

// renderParticles fades explosion particles out; the drawn radius scales
// with the remaining alpha.
func (s *Session) renderParticles(c *draw.Canvas) {
	for _, p := range s.Particles {
		alpha := p.Alpha()
		if alpha <= 0 {
			continue
		}
		col := draw.ToRGB(s.Theme.BgOuter.BlendRgb(p.Color, alpha))
		c.FillCircle(p.X, p.Y, particleRadius*alpha, col)
	}
}

// renderPlayer prefers the loaded sprite; otherwise it draws two stacked
// filled polygons (dark hull, bright nose wedge) with a cockpit highlight.
func (s *Session) renderPlayer(c *draw.Canvas, sprite *Sprite) {
	p := &s.Player
	left := p.X - p.W/2
	top := p.Y - p.H/2

	if sprite != nil {
		for j := 0.0; j < p.H; j++ {
			for i := 0.0; i < p.W; i++ {
				if col, ok := sprite.At(i/p.W, j/p.H); ok {
					c.SetFloat(left+i, top+j, col)
				}
			}
		}
		return
	}

	bright := s.Theme.Accent.BlendRgb(white, 0.45)
	dark := s.Theme.Accent.BlendRgb(s.Theme.BgOuter, 0.45)

	// Triangle hull, nose up
	hull := c.BorrowPoints(3)
	hull[0] = draw.Point{X: p.X, Y: top}
	hull[1] = draw.Point{X: left, Y: top + p.H}
	hull[2] = draw.Point{X: left + p.W, Y: top + p.H}
	c.DrawPolygon(hull, draw.ToRGB(dark), true)

	// Brighter wedge toward the nose
	wedge := c.BorrowPoints(3)
	wedge[0] = draw.Point{X: p.X, Y: top}
	wedge[1] = draw.Point{X: p.X - p.W*0.22, Y: top + p.H*0.6}
	wedge[2] = draw.Point{X: p.X + p.W*0.22, Y: top + p.H*0.6}
	c.DrawPolygon(wedge, draw.ToRGB(bright), true)

	// Cockpit highlight
	c.FillCircle(p.X, p.Y-p.H*0.1, 1.2, draw.ToRGB(s.Theme.Accent.BlendRgb(white, 0.75)))
}

// renderBullets draws a soft glow under a solid core.
func (s *Session) renderBullets(c *draw.Canvas) {
	glow := draw.ToRGB(s.Theme.BgMid.BlendRgb(s.Theme.Accent, 0.45))
	core := draw.ToRGB(s.Theme.Accent.BlendRgb(white, 0.6))
	for _, b := range s.Bullets {
		c.FillCircle(b.X, b.Y, b.Radius*2.2, glow)
		c.FillCircle(b.X, b.Y, b.Radius, core)
	}
}
