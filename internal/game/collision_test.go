package game

import (
	"testing"

	"github.com/davrk/errblast/internal/input"
)

func TestBulletDestroysPiece(t *testing.T) {
	s := newTestSession()
	s.Pieces = []Piece{{X: 50, Y: 50, Radius: 2}}
	s.Bullets = []Bullet{{X: 50, Y: 50, Radius: 1}}

	hits := s.resolveCollisions()
	if hits != 1 {
		t.Fatalf("hits = %d, want 1", hits)
	}
	if len(s.Pieces) != 0 {
		t.Error("piece not removed")
	}
	if len(s.Bullets) != 0 {
		t.Error("bullet not consumed")
	}
	if len(s.Particles) < burstCountMin {
		t.Errorf("burst size %d, want >= %d", len(s.Particles), burstCountMin)
	}
	if s.Shake.Duration <= 0 {
		t.Error("hit should trigger screen shake")
	}
}

func TestBulletHitsAtMostOnePiece(t *testing.T) {
	s := newTestSession()
	s.Pieces = []Piece{
		{X: 50, Y: 50, Radius: 2},
		{X: 50, Y: 50, Radius: 2},
	}
	s.Bullets = []Bullet{{X: 50, Y: 50, Radius: 1}}

	hits := s.resolveCollisions()
	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
	if len(s.Pieces) != 1 {
		t.Errorf("pieces left = %d, want 1", len(s.Pieces))
	}
}

func TestMissingBulletSurvives(t *testing.T) {
	s := newTestSession()
	s.Pieces = []Piece{{X: 50, Y: 50, Radius: 2}}
	s.Bullets = []Bullet{{X: 100, Y: 100, Radius: 1}}

	if hits := s.resolveCollisions(); hits != 0 {
		t.Fatalf("hits = %d, want 0", hits)
	}
	if len(s.Bullets) != 1 {
		t.Error("missing bullet should survive")
	}
	if len(s.Pieces) != 1 {
		t.Error("piece should survive")
	}
}

func TestTouchingCountsAsHit(t *testing.T) {
	s := newTestSession()
	s.Pieces = []Piece{{X: 50, Y: 50, Radius: 2}}
	s.Bullets = []Bullet{{X: 53, Y: 50, Radius: 1}} // distance 3 == radius sum

	if hits := s.resolveCollisions(); hits != 1 {
		t.Errorf("touching circles should collide, hits = %d", hits)
	}
}

func TestTwoBulletsTwoPieces(t *testing.T) {
	s := newTestSession()
	s.Pieces = []Piece{
		{X: 30, Y: 50, Radius: 2},
		{X: 70, Y: 50, Radius: 2},
	}
	s.Bullets = []Bullet{
		{X: 30, Y: 50, Radius: 1},
		{X: 70, Y: 50, Radius: 1},
	}

	if hits := s.resolveCollisions(); hits != 2 {
		t.Errorf("hits = %d, want 2", hits)
	}
	if len(s.Pieces) != 0 || len(s.Bullets) != 0 {
		t.Errorf("pieces=%d bullets=%d, want 0/0", len(s.Pieces), len(s.Bullets))
	}
}

func TestLastPieceDestroyedEndsGame(t *testing.T) {
	s := newTestSession()
	s.Pieces = []Piece{{X: 50, Y: 50, Radius: 2}}
	// One integration step above the piece after movement
	s.Bullets = []Bullet{{X: 50, Y: 50 + bulletSpeed*tick, VY: bulletSpeed, Radius: 1}}

	res := s.Update(tick, input.State{})
	if res.Hits != 1 {
		t.Fatalf("Hits = %d, want 1", res.Hits)
	}
	if !s.GameOver {
		t.Error("destroying the last piece should end the game")
	}
}
