package game

import (
	"math"

	"github.com/davrk/errblast/internal/input"
)

// TickResult reports the per-tick events the loop forwards to its
// collaborators (audio cue, overlay).
type TickResult struct {
	Hits        int  // Pieces destroyed this tick, one audio cue each
	ShowOverlay bool // Fire the end-of-game overlay signal (at most once)
}

// Update advances the whole simulation by dt seconds. dt must already be
// clamped by the caller. Order: player, firing, bullets, collisions,
// particles, shake, win check.
func (s *Session) Update(dt float64, in input.State) TickResult {
	var res TickResult
	if dt <= 0 {
		return res
	}
	s.Clock += dt

	s.updatePlayer(dt, in)
	s.updateFiring(dt, in)
	s.updateBullets(dt)
	res.Hits = s.resolveCollisions()
	s.updateParticles(dt)
	s.Shake.Decay(dt)
	res.ShowOverlay = s.updateWin(dt)
	return res
}

// updatePlayer moves the ship toward its target with exponential smoothing
// and clamps it into the viewport.
func (s *Session) updatePlayer(dt float64, in input.State) {
	if in.HasPointer {
		s.Player.TargetX = in.PointerX
	}
	if in.Left {
		s.Player.TargetX -= keyboardNudge * dt
	}
	if in.Right {
		s.Player.TargetX += keyboardNudge * dt
	}

	f := 1 - math.Exp(-playerLerpRate*dt)
	s.Player.X += (s.Player.TargetX - s.Player.X) * f
	s.clampPlayer()
}

// updateFiring spawns a bullet at the ship's nose while fire is held and the
// cooldown has elapsed. Firing is suppressed after the win.
func (s *Session) updateFiring(dt float64, in input.State) {
	s.fireCooldown -= dt
	if s.GameOver || !in.Held || s.fireCooldown > 0 {
		return
	}
	s.fireCooldown = fireInterval.Seconds()

	nx, ny := s.Player.Nose()
	s.Bullets = append(s.Bullets, Bullet{
		X:      nx,
		Y:      ny,
		VY:     bulletSpeed,
		Radius: bulletRadius,
	})
}

// updateBullets moves bullets upward and culls those past the top edge.
func (s *Session) updateBullets(dt float64) {
	kept := s.Bullets[:0] // reuse backing array
	for _, b := range s.Bullets {
		b.Y -= b.VY * dt
		if b.Y < -b.Radius {
			continue
		}
		kept = append(kept, b)
	}
	s.Bullets = kept
}

// updateParticles ages explosion particles, integrates velocity with a
// gravity drift and removes expired ones.
func (s *Session) updateParticles(dt float64) {
	kept := s.Particles[:0]
	for _, p := range s.Particles {
		p.Age += dt
		if p.Age >= p.Life {
			p.release()
			continue
		}
		p.VY += particleGravity * dt
		p.X += p.VX * dt
		p.Y += p.VY * dt
		kept = append(kept, p)
	}
	s.Particles = kept
}

// updateWin flips game-over when the last piece is gone and schedules the
// overlay signal after a short delay so the final explosion plays out.
// The signal fires exactly once per playthrough. A session that never had
// pieces (label rasterization degraded) cannot be won.
func (s *Session) updateWin(dt float64) bool {
	if !s.GameOver {
		if !s.hadPieces || len(s.Pieces) > 0 {
			return false
		}
		s.GameOver = true
		s.overlayIn = overlayDelay.Seconds()
		return false
	}
	if s.overlaySignaled {
		return false
	}
	s.overlayIn -= dt
	if s.overlayIn > 0 {
		return false
	}
	s.overlaySignaled = true
	return true
}
