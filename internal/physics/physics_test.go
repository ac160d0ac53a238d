package physics

import "testing"

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name                   string
		x1, y1, r1, x2, y2, r2 float64
		want                   bool
	}{
		{"clearly apart", 0, 0, 1, 10, 0, 1, false},
		{"clearly overlapping", 0, 0, 2, 1, 0, 2, true},
		{"exactly touching", 0, 0, 1, 2, 0, 1, true},
		{"concentric", 5, 5, 3, 5, 5, 0.5, true},
		{"diagonal apart", 0, 0, 1, 3, 4, 3.9, false},
		{"diagonal touching", 0, 0, 1, 3, 4, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CirclesOverlap(tt.x1, tt.y1, tt.r1, tt.x2, tt.y2, tt.r2)
			if got != tt.want {
				t.Errorf("CirclesOverlap = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(0, 0, 3, 4); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := DistanceSquared(0, 0, 3, 4); got != 25 {
		t.Errorf("DistanceSquared = %v, want 25", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp in range = %v", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp below = %v", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Errorf("Clamp above = %v", got)
	}
}
