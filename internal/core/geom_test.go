package core

import (
	"math"
	"testing"
)

func TestRectOverlap(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "edge touching horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "edge touching vertical (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9.5, 9.5, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RectOverlap(tc.a, tc.b); got != tc.expected {
				t.Errorf("RectOverlap() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCircleOverlap(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Circle
		expected bool
	}{
		{"overlapping", Circle{0, 0, 5}, Circle{6, 0, 5}, true},
		{"exactly touching", Circle{0, 0, 5}, Circle{10, 0, 5}, false},
		{"apart", Circle{0, 0, 5}, Circle{20, 0, 5}, false},
		{"concentric", Circle{3, 3, 1}, Circle{3, 3, 2}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CircleOverlap(tc.a, tc.b); got != tc.expected {
				t.Errorf("CircleOverlap() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectCircleOverlap(t *testing.T) {
	r := NewRect(10, 10, 20, 20)

	tests := []struct {
		name     string
		c        Circle
		expected bool
	}{
		{"center inside", Circle{20, 20, 1}, true},
		{"near left edge", Circle{5, 20, 6}, true},
		{"touching left edge", Circle{5, 20, 5}, false},
		{"near corner", Circle{7, 7, 5}, true},
		{"far from corner", Circle{0, 0, 5}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RectCircleOverlap(r, tc.c); got != tc.expected {
				t.Errorf("RectCircleOverlap(%v) = %v, expected %v", tc.c, got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     float64
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%v, %v) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %v, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %v, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17.5 {
		t.Errorf("Center() = (%v, %v), expected (15, 17.5)", cx, cy)
	}
}

func TestNormalize(t *testing.T) {
	x, y := Normalize(3, 4)
	if math.Abs(x-0.6) > 1e-9 || math.Abs(y-0.8) > 1e-9 {
		t.Errorf("Normalize(3, 4) = (%v, %v), expected (0.6, 0.8)", x, y)
	}

	x, y = Normalize(0, 0)
	if x != 0 || y != 0 {
		t.Errorf("Normalize(0, 0) = (%v, %v), expected (0, 0)", x, y)
	}
}

func TestAngleDelta(t *testing.T) {
	tests := []struct {
		a, b, expected float64
	}{
		{0, math.Pi / 2, math.Pi / 2},
		{math.Pi / 2, 0, -math.Pi / 2},
		{0.1, 2*math.Pi - 0.1, -0.2},
		{2*math.Pi - 0.1, 0.1, 0.2},
	}

	for _, tc := range tests {
		got := AngleDelta(tc.a, tc.b)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("AngleDelta(%v, %v) = %v, expected %v", tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestSegmentRectOverlap(t *testing.T) {
	r := NewRect(10, 10, 10, 10)

	tests := []struct {
		name           string
		ax, ay, bx, by float64
		thickness      float64
		expected       bool
	}{
		{"through middle", 0, 15, 30, 15, 0, true},
		{"endpoint inside", 15, 15, 100, 100, 0, true},
		{"slanted cross", 0, 12, 30, 18, 0, true},
		{"passes above", 0, 5, 30, 5, 4, false},
		{"thick near miss", 0, 8.5, 30, 8.5, 4, true},
		{"stops short", 0, 15, 8, 15, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentRectOverlap(tt.ax, tt.ay, tt.bx, tt.by, tt.thickness, r)
			if got != tt.expected {
				t.Errorf("SegmentRectOverlap() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
