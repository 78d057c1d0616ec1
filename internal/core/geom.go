// Package core provides fundamental types and utilities for the simulation.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Rect represents an axis-aligned bounding box in world units.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Intersects returns true if this rectangle overlaps with another.
// Intervals are open: rectangles sharing only an edge do not overlap.
func (r Rect) Intersects(other Rect) bool {
	return RectOverlap(r, other)
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Circle is a center/radius pair used for proximity checks.
type Circle struct {
	X, Y float64
	R    float64
}

// RectOverlap reports whether a and b overlap.
func RectOverlap(a, b Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X && a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// CircleOverlap reports whether the center distance is strictly less than
// the sum of the radii.
func CircleOverlap(a, b Circle) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	rr := a.R + b.R
	return dx*dx+dy*dy < rr*rr
}

// PointInCircle reports whether (x, y) lies strictly inside c.
func PointInCircle(x, y float64, c Circle) bool {
	dx := x - c.X
	dy := y - c.Y
	return dx*dx+dy*dy < c.R*c.R
}

// RectCircleOverlap clamps the circle center onto the rectangle and compares
// the closest-point distance against the radius.
func RectCircleOverlap(r Rect, c Circle) bool {
	cx := ClampF(c.X, r.X, r.Right())
	cy := ClampF(c.Y, r.Y, r.Bottom())
	return PointInCircle(cx, cy, c)
}

// SegmentRectOverlap reports whether a segment of the given thickness
// from (ax, ay) to (bx, by) touches r.
func SegmentRectOverlap(ax, ay, bx, by, thickness float64, r Rect) bool {
	if r.Contains(ax, ay) || r.Contains(bx, by) {
		return true
	}
	corners := [4][2]float64{
		{r.X, r.Y}, {r.Right(), r.Y}, {r.Right(), r.Bottom()}, {r.X, r.Bottom()},
	}
	for i := range corners {
		c, d := corners[i], corners[(i+1)%4]
		if segmentsCross(ax, ay, bx, by, c[0], c[1], d[0], d[1]) {
			return true
		}
	}

	half := thickness / 2
	if half <= 0 {
		return false
	}
	for _, c := range corners {
		if pointSegmentDistance(c[0], c[1], ax, ay, bx, by) <= half {
			return true
		}
	}
	return false
}

func pointSegmentDistance(px, py, ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return Distance(px, py, ax, ay)
	}
	t := ClampF(((px-ax)*dx+(py-ay)*dy)/l2, 0, 1)
	return Distance(px, py, ax+t*dx, ay+t*dy)
}

func segmentsCross(ax, ay, bx, by, cx, cy, dx, dy float64) bool {
	d1 := cross(cx, cy, dx, dy, ax, ay)
	d2 := cross(cx, cy, dx, dy, bx, by)
	d3 := cross(ax, ay, bx, by, cx, cy)
	d4 := cross(ax, ay, bx, by, dx, dy)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func cross(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Normalize returns the unit vector of (x, y), or (0, 0) for a zero vector.
func Normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

// AngleDelta returns the signed shortest rotation from a to b in (-π, π].
func AngleDelta(a, b float64) float64 {
	d := math.Mod(b-a, 2*math.Pi)
	if d > math.Pi {
		d -= 2 * math.Pi
	} else if d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
