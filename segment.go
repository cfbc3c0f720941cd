package sweepline

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNotFinite is returned for coordinates that are NaN or infinite.
	ErrNotFinite = errors.New("coordinate is not finite")

	// ErrDegenerate is returned for segments of zero length.
	ErrDegenerate = errors.New("degenerate segment")

	// ErrNilSegment is returned when a group contains a nil segment.
	ErrNilSegment = errors.New("nil segment")
)

// Segment is a line segment between two points, its left endpoint comes before its right endpoint in sweep order. Group identifies the set of segments it belongs to.
type Segment struct {
	Left, Right Point
	Group       int
}

// NewSegment returns the segment between A and B for the given group. It returns an error if a coordinate is not finite or if A and B coincide.
func NewSegment(a, b Point, group int) (*Segment, error) {
	if !a.IsFinite() || !b.IsFinite() {
		return nil, errors.Wrapf(ErrNotFinite, "segment %v−%v", a, b)
	} else if a.Equals(b) {
		return nil, errors.Wrapf(ErrDegenerate, "segment %v−%v", a, b)
	}
	if b.Less(a) {
		a, b = b, a
	}
	return &Segment{
		Left:  a,
		Right: b,
		Group: group,
	}, nil
}

// MustSegment is like NewSegment but panics on error.
func MustSegment(x1, y1, x2, y2 float64, group int) *Segment {
	s, err := NewSegment(Point{x1, y1}, Point{x2, y2}, group)
	if err != nil {
		panic(err)
	}
	return s
}

// Direction returns the vector from the left to the right endpoint.
func (s *Segment) Direction() Point {
	return s.Right.Sub(s.Left)
}

// Intersect returns the intersection between segments s and o with tolerance Epsilon.
func (s *Segment) Intersect(o *Segment) (IntersectionKind, Point) {
	return Tolerance(Epsilon).Intersect(s, o)
}

func (s *Segment) String() string {
	return fmt.Sprintf("%d(%v−%v)", s.Group, s.Left, s.Right)
}

////////////////////////////////////////////////////////////////

// IntersectionKind classifies the relation between two segments.
type IntersectionKind int

const (
	NoIntersection IntersectionKind = iota
	Crossing                        // the segments cross at a single point interior to both
	Overlap                         // the segments are collinear and share more than a point
)

func (v IntersectionKind) String() string {
	switch v {
	case Crossing:
		return "Crossing"
	case Overlap:
		return "Overlap"
	}
	return "NoIntersection"
}

func (tol Tolerance) vertical(s *Segment) bool {
	return tol.Equal(s.Left.X, s.Right.X)
}

// side returns -1 if P is below segment s at P.X, 1 if above, and 0 if it lies on s. Vertical segments span the range of their endpoints.
func (tol Tolerance) side(p Point, s *Segment) int {
	if tol.vertical(s) {
		if p.Y < s.Left.Y-float64(tol) {
			return -1
		} else if s.Right.Y+float64(tol) < p.Y {
			return 1
		}
		return 0
	}
	t := (p.X - s.Left.X) / (s.Right.X - s.Left.X)
	y := s.Left.Interpolate(s.Right, t).Y // s's y at p's x
	return tol.Compare(p.Y, y)
}

// compareRights compares segments vertically that coincide at the left endpoint of the one that starts last, by evaluating at the right endpoint that comes first.
func (tol Tolerance) compareRights(a, b *Segment) int {
	if tol.vertical(a) {
		if tol.vertical(b) {
			return tol.Compare(a.Right.Y, b.Right.Y)
		}
		return 1
	} else if tol.vertical(b) {
		return -1
	}

	if a.Right.X < b.Right.X {
		return tol.side(a.Right, b)
	}
	return -tol.side(b.Right, a)
}

// CompareSegments orders segments vertically along the sweep line. The y-coordinate of the segment that starts first is evaluated at the left endpoint of the other, ties are broken by comparing at the right endpoints. It returns -1 if a is below b, 1 if above, and 0 if they are collinear. The order is only valid locally around the sweep position where both segments are active.
func (tol Tolerance) CompareSegments(a, b *Segment) int {
	if a == b {
		return 0
	}

	var c int
	if tol.ComparePoints(a.Left, b.Left) <= 0 {
		c = -tol.side(b.Left, a)
	} else {
		c = tol.side(a.Left, b)
	}
	if c != 0 {
		return c
	}
	return tol.compareRights(a, b)
}

// Intersect returns the intersection between segments a and b. Crossings return the intersection point and exclude touching at endpoints, overlaps return the left-most point of the shared part.
func (tol Tolerance) Intersect(a, b *Segment) (IntersectionKind, Point) {
	p, r := a.Left, a.Direction()
	q, s := b.Left, b.Direction()
	qp := q.Sub(p)
	rLen, sLen := r.Length(), s.Length()

	// collinear when both endpoints of one segment lie within tolerance of the other's line
	onA := math.Abs(qp.PerpDot(r))/rLen <= float64(tol) && math.Abs(b.Right.Sub(p).PerpDot(r))/rLen <= float64(tol)
	onB := math.Abs(qp.PerpDot(s))/sLen <= float64(tol) && math.Abs(a.Right.Sub(q).PerpDot(s))/sLen <= float64(tol)

	rxs := r.PerpDot(s)
	if onA || onB {
		// project b onto a
		rr := r.Dot(r)
		t0 := qp.Dot(r) / rr
		t1 := t0 + s.Dot(r)/rr
		if t1 < t0 {
			t0, t1 = t1, t0
		}
		t0, t1 = math.Max(t0, 0.0), math.Min(t1, 1.0)
		if (t1-t0)*rLen <= float64(tol) {
			return NoIntersection, Point{} // disjoint or touching at an endpoint
		}
		return Overlap, p.Add(r.Mul(t0))
	} else if rxs == 0.0 {
		return NoIntersection, Point{} // parallel
	}

	t := qp.PerpDot(s) / rxs
	u := qp.PerpDot(r) / rxs
	if t <= 0.0 || 1.0 <= t || u <= 0.0 || 1.0 <= u {
		return NoIntersection, Point{}
	}

	z := p.Add(r.Mul(t))
	if tol.EqualPoints(z, a.Left) || tol.EqualPoints(z, a.Right) || tol.EqualPoints(z, b.Left) || tol.EqualPoints(z, b.Right) {
		return NoIntersection, Point{} // touching at an endpoint
	}
	return Crossing, z
}
