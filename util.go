package sweepline

import (
	"fmt"
	"math"
)

// Epsilon is the default tolerance for coordinate equality.
const Epsilon = 1e-7

// Tolerance holds the epsilon used by all geometric predicates. Two coordinates are equal when they differ by no more than the tolerance.
type Tolerance float64

// Equal returns true if a and b are equal within the tolerance.
func (tol Tolerance) Equal(a, b float64) bool {
	return math.Abs(a-b) <= float64(tol)
}

// Compare returns -1, 0, or 1 when a is respectively smaller, equal, or larger than b within the tolerance.
func (tol Tolerance) Compare(a, b float64) int {
	if tol.Equal(a, b) {
		return 0
	} else if a < b {
		return -1
	}
	return 1
}

// EqualPoints returns true if P and Q are equal within the tolerance for both coordinates.
func (tol Tolerance) EqualPoints(p, q Point) bool {
	return tol.Equal(p.X, q.X) && tol.Equal(p.Y, q.Y)
}

// ComparePoints orders points from left to right, and then from bottom to top.
func (tol Tolerance) ComparePoints(p, q Point) int {
	if c := tol.Compare(p.X, q.X); c != 0 {
		return c
	}
	return tol.Compare(p.Y, q.Y)
}

////////////////////////////////////////////////////////////////

// Point is a coordinate in 2D space. OP refers to the line that goes through the origin (0,0) and this point (x,y).
type Point struct {
	X, Y float64
}

// IsZero returns true if P is exactly zero.
func (p Point) IsZero() bool {
	return p.X == 0.0 && p.Y == 0.0
}

// IsFinite returns true if neither coordinate is NaN or infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Equals returns true if P and Q are equal with tolerance Epsilon.
func (p Point) Equals(q Point) bool {
	return Tolerance(Epsilon).EqualPoints(p, q)
}

// Less returns true if P comes before Q in sweep order (left to right, then bottom to top) with tolerance Epsilon.
func (p Point) Less(q Point) bool {
	return Tolerance(Epsilon).ComparePoints(p, q) < 0
}

// Add adds Q to P.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub subtracts Q from P.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul multiplies x and y by f.
func (p Point) Mul(f float64) Point {
	return Point{f * p.X, f * p.Y}
}

// Dot returns the dot product between OP and OQ, i.e. zero if perpendicular and |OP|*|OQ| if aligned.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// PerpDot returns the perp dot product between OP and OQ, i.e. zero if aligned and |OP|*|OQ| if perpendicular. This is the 2D cross product.
func (p Point) PerpDot(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of OP.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Interpolate returns a point on PQ that is linearly interpolated by t, i.e. t=0 returns P and t=1 returns Q.
func (p Point) Interpolate(q Point, t float64) Point {
	return Point{(1-t)*p.X + t*q.X, (1-t)*p.Y + t*q.Y}
}

// String returns the string representation of a point, such as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}
