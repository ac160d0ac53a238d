package game

import (
	"math"
	"math/rand"

	"github.com/davrk/errblast/internal/physics"
	"github.com/davrk/errblast/internal/theme"
)

// Session holds all mutable game state for one playthrough. It is owned by
// the Loop; all mutation happens synchronously inside the update phase of a
// single frame, so no locking is needed.
type Session struct {
	Theme theme.Theme

	// Viewport in pixels (terminal columns x rows*2).
	Width  float64
	Height float64

	Player    Player
	Bullets   []Bullet
	Pieces    []Piece
	Particles []*Particle
	Stars     []Star
	Shake     Shake

	// GameOver is set once the last piece is destroyed. Physics still
	// ticks afterwards so the final explosion plays out, but firing is
	// suppressed.
	GameOver bool

	Clock float64 // Global session time in seconds, drives twinkle/pulse

	// hadPieces arms the win check. A viewport too small to rasterize
	// the label yields zero pieces; that session has no target and must
	// never count as won.
	hadPieces bool

	fireCooldown    float64
	overlayIn       float64 // Countdown to the overlay-show signal
	overlaySignaled bool

	rng *rand.Rand
}

// NewSession creates a session for the given theme and viewport, populating
// all entity stores.
func NewSession(t theme.Theme, width, height int) *Session {
	s := &Session{
		Theme: t,
		rng:   rand.New(rand.NewSource(rand.Int63())),
	}
	s.Width = float64(width)
	s.Height = float64(height)
	s.populate()
	return s
}

// populate (re)creates all size-dependent entity state.
func (s *Session) populate() {
	w := s.Width * playerWidthFrac
	if w < playerMinWidth {
		w = playerMinWidth
	}
	h := w * 0.8
	s.Player = Player{
		X:       s.Width / 2,
		TargetX: s.Width / 2,
		Y:       s.Height - h*1.2,
		W:       w,
		H:       h,
	}

	s.Bullets = s.Bullets[:0]
	s.releaseParticles()

	s.Pieces = makePieces(s.Theme.Code, s.Width, s.Height, s.Theme.HueMin, s.Theme.HueMax, s.rng)
	s.hadPieces = len(s.Pieces) > 0

	count := int(s.Width * s.Height * starDensity)
	if count < starMin {
		count = starMin
	}
	s.Stars = make([]Star, count)
	for i := range s.Stars {
		s.Stars[i] = Star{
			X:      s.rng.Float64() * s.Width,
			Y:      s.rng.Float64() * s.Height,
			Radius: s.rng.Float64() * 0.9,
			Phase:  s.rng.Float64() * 2 * math.Pi,
		}
	}

	s.Shake = Shake{}
	s.fireCooldown = 0
	s.GameOver = false
	s.overlayIn = 0
	s.overlaySignaled = false
}

// Reset reinitializes all entity stores in place and clears the game-over
// state. The theme and viewport are kept.
func (s *Session) Reset() {
	s.populate()
}

// Resize re-derives all size-dependent state for a new viewport. The player
// target keeps its relative position; pieces and stars are regenerated.
func (s *Session) Resize(width, height int) {
	oldW := s.Width
	relTarget := 0.5
	if oldW > 0 {
		relTarget = s.Player.TargetX / oldW
	}
	won := s.GameOver

	s.Width = float64(width)
	s.Height = float64(height)
	s.populate()

	s.Player.TargetX = relTarget * s.Width
	s.Player.X = s.Player.TargetX
	s.clampPlayer()

	// A finished game stays finished across a resize
	if won {
		s.Pieces = s.Pieces[:0]
		s.GameOver = true
		s.overlaySignaled = true
	}
}

// releaseParticles returns all live particles to the pool.
func (s *Session) releaseParticles() {
	for _, p := range s.Particles {
		p.release()
	}
	s.Particles = s.Particles[:0]
}

// clampPlayer keeps the ship fully inside the viewport.
func (s *Session) clampPlayer() {
	half := s.Player.W / 2
	s.Player.X = physics.Clamp(s.Player.X, half, s.Width-half)
	s.Player.TargetX = physics.Clamp(s.Player.TargetX, half, s.Width-half)
}
