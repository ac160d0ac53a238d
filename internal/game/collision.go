package game

import "github.com/davrk/errblast/internal/physics"

// resolveCollisions tests every live bullet against the piece set. The first
// overlapping piece destroys both: the piece is removed, the bullet is
// consumed, an explosion burst spawns at the piece's position and the screen
// shakes. A bullet destroys at most one piece per tick; this is the
// deliberate policy, not pairwise all-hits.
//
// Returns the number of destroyed pieces so the loop can fire one audio cue
// per hit.
func (s *Session) resolveCollisions() int {
	hits := 0
	kept := s.Bullets[:0]
	for _, b := range s.Bullets {
		hit := -1
		for i, pc := range s.Pieces {
			if physics.CirclesOverlap(b.X, b.Y, b.Radius, pc.X, pc.Y, pc.Radius) {
				hit = i
				break
			}
		}
		if hit < 0 {
			kept = append(kept, b)
			continue
		}

		pc := s.Pieces[hit]
		last := len(s.Pieces) - 1
		s.Pieces[hit] = s.Pieces[last]
		s.Pieces = s.Pieces[:last]

		s.spawnExplosion(pc)
		s.Shake.Trigger(shakeDuration, shakeIntensity)
		hits++
	}
	s.Bullets = kept
	return hits
}
