package game

import (
	"math"
	"math/rand"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Player is the ship at the bottom of the screen. It chases TargetX with
// exponential smoothing and is clamped to the viewport.
type Player struct {
	X, Y    float64 // Center position
	TargetX float64 // Desired x, set from pointer input
	W, H    float64
}

// Nose returns the bullet spawn point at the tip of the ship.
func (p *Player) Nose() (float64, float64) {
	return p.X, p.Y - p.H/2
}

// Bullet travels straight up and is removed past the top edge or on its
// first piece hit.
type Bullet struct {
	X, Y   float64
	VY     float64 // Upward speed, px/s
	Radius float64
}

// Piece is one destructible fragment of the rasterized error code.
type Piece struct {
	X, Y   float64
	Radius float64
	Color  colorful.Color
}

// Star is a background decoration. Never destroyed during a session,
// regenerated on resize.
type Star struct {
	X, Y   float64
	Radius float64
	Phase  float64 // Twinkle phase offset
}

// Shake is the screen shake state, consumed by the renderer as a random
// canvas translation.
type Shake struct {
	Duration  float64 // Seconds remaining
	Intensity float64 // Max offset in pixels
	total     float64
}

// Trigger starts (or restarts) a shake.
func (s *Shake) Trigger(duration, intensity float64) {
	s.Duration = duration
	s.Intensity = intensity
	s.total = duration
}

// Decay advances the shake timer, flooring at zero.
func (s *Shake) Decay(dt float64) {
	s.Duration -= dt
	if s.Duration < 0 {
		s.Duration = 0
	}
}

// Offset returns the current random translation. Zero when inactive.
func (s *Shake) Offset(rng *rand.Rand) (float64, float64) {
	if s.Duration <= 0 || s.total <= 0 {
		return 0, 0
	}
	amp := s.Intensity * (s.Duration / s.total)
	return (rng.Float64()*2 - 1) * amp, (rng.Float64()*2 - 1) * amp
}

// particlePool reuses Particle objects to reduce per-explosion allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived explosion fragment.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Age    float64 // Seconds alive
	Life   float64 // Seconds until removal
	Color  colorful.Color
}

// newParticle takes a particle from the pool.
func newParticle(x, y, vx, vy, life float64, color colorful.Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Age = 0
	p.Life = life
	p.Color = color
	return p
}

// release returns the particle to the pool for reuse.
func (p *Particle) release() {
	particlePool.Put(p)
}

// Alpha fades from 1 to 0 over the particle's life.
func (p *Particle) Alpha() float64 {
	if p.Life <= 0 {
		return 0
	}
	a := 1 - p.Age/p.Life
	if a < 0 {
		return 0
	}
	return a
}

// spawnExplosion appends a burst of particles at the destroyed piece's
// position, inheriting its color. Directions are uniform, speeds in
// [burstSpeedMin, burstSpeedMin+burstSpeedRand).
func (s *Session) spawnExplosion(pc Piece) {
	count := burstCountMin + s.rng.Intn(burstCountRand)
	for i := 0; i < count; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := burstSpeedMin + s.rng.Float64()*burstSpeedRand
		life := particleLifeMin + s.rng.Float64()*particleLifeRand
		s.Particles = append(s.Particles, newParticle(
			pc.X, pc.Y,
			math.Cos(angle)*speed, math.Sin(angle)*speed,
			life, pc.Color,
		))
	}
}
