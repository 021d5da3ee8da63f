package core

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name        string
		val, lo, hi int
		want        int
	}{
		{"grid side below range", 1, 2, 8, 2},
		{"grid side in range", 5, 2, 8, 5},
		{"grid side above range", 12, 2, 8, 8},
		{"tick rate at upper bound", 120, 1, 120, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.val, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.val, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestClampF(t *testing.T) {
	for _, tt := range []struct{ val, want float64 }{
		{-0.5, 0},
		{0.15, 0.15},
		{1.2, 1},
	} {
		if got := ClampF(tt.val, 0, 1); got != tt.want {
			t.Errorf("ClampF(%v, 0, 1) = %v, want %v", tt.val, got, tt.want)
		}
	}
}

func TestRectEdges(t *testing.T) {
	box := Rect{X: 3, Y: 2, W: 12, H: 4}
	if box.Right() != 15 {
		t.Errorf("Right() = %d, want 15", box.Right())
	}
	if box.Bottom() != 6 {
		t.Errorf("Bottom() = %d, want 6", box.Bottom())
	}
}
