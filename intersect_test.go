package sweepline

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/tdewolff/test"
)

func TestEngineIntersect(t *testing.T) {
	var tts = []struct {
		name      string
		red, blue []*Segment
		connected bool
		z         Point
	}{
		{"cross", []*Segment{MustSegment(0, 0, 2, 2, 0)}, []*Segment{MustSegment(0, 2, 2, 0, 1)}, true, Point{1.0, 1.0}},
		{"cross", []*Segment{MustSegment(0, 0, 1, -1, 0)}, []*Segment{MustSegment(0, -1, 1, 0, 1)}, true, Point{0.5, -0.5}},
		{"parallel", []*Segment{MustSegment(0, 0, 1, 0, 0)}, []*Segment{MustSegment(0, 1, 1, 1, 1)}, false, Point{}},
		{"overlap", []*Segment{MustSegment(0, 0, 2, 0, 0)}, []*Segment{MustSegment(1, 0, 3, 0, 1)}, true, Point{1.0, 0.0}},
		{"overlap", []*Segment{MustSegment(0, 0, 0, 2, 0)}, []*Segment{MustSegment(0, 1, 0, 3, 1)}, true, Point{0.0, 1.0}},
		{"identical", []*Segment{MustSegment(0, 0, 1, 1, 0)}, []*Segment{MustSegment(1, 1, 0, 0, 1)}, true, Point{0.0, 0.0}},
		{"collinear", []*Segment{MustSegment(0, 0, 1, 0, 0)}, []*Segment{MustSegment(2, 0, 3, 0, 1)}, false, Point{}},
		{"shared endpoint", []*Segment{MustSegment(0, 0, 1, 1, 0)}, []*Segment{MustSegment(1, 1, 2, 0, 1)}, false, Point{}},
		{"touching", []*Segment{MustSegment(0, 0, 2, 0, 0)}, []*Segment{MustSegment(1, 0, 1, 1, 1)}, false, Point{}},
		{"vertical", []*Segment{MustSegment(1, -1, 1, 1, 0)}, []*Segment{MustSegment(0, 0, 2, 0, 1)}, true, Point{1.0, 0.0}},
		{"vertical", []*Segment{MustSegment(0, 0, 2, 0, 0)}, []*Segment{MustSegment(1, -1, 1, 1, 1)}, true, Point{1.0, 0.0}},
		{"nearly parallel", []*Segment{MustSegment(0, 0, 1e6, 0, 0)}, []*Segment{MustSegment(0, 1e-2, 1e6, -1e-2, 1)}, true, Point{5e5, 0.0}},
		{"empty", nil, []*Segment{MustSegment(0, 0, 2, 0, 1)}, false, Point{}},
		{"polyline above", []*Segment{
			MustSegment(0, 0, 1, 1, 0),
			MustSegment(1, 1, 2, 0, 0),
			MustSegment(2, 0, 3, 1, 0),
		}, []*Segment{
			MustSegment(0, 2, 3, 2, 1),
			MustSegment(2.5, 2, 2.5, 0.6, 1),
		}, false, Point{}},
		{"polyline", []*Segment{
			MustSegment(0, 0, 1, 1, 0),
			MustSegment(1, 1, 2, 0, 0),
			MustSegment(2, 0, 3, 1, 0),
		}, []*Segment{
			MustSegment(0, 2, 3, 2, 1),
			MustSegment(2.5, 2, 2.5, 0.4, 1),
		}, true, Point{2.5, 0.5}},
	}
	for i, tt := range tts {
		t.Run(fmt.Sprint(i, tt.name), func(t *testing.T) {
			res, err := NewEngine(DefaultOptions).Intersect(tt.red, tt.blue)
			test.Error(t, err)
			test.T(t, res.Connected, tt.connected)
			test.T(t, res.Connected, BruteForce(tt.red, tt.blue, Epsilon).Connected)
			if tt.connected {
				test.T(t, len(res.Intersections), 1)
				z := res.Intersections[0]
				test.That(t, z.Equals(tt.z), z, "!=", tt.z)
				test.T(t, z.A.Group, 0, "red first")
				test.T(t, z.B.Group, 1)
			} else {
				test.T(t, len(res.Intersections), 0)
			}
		})
	}
}

func TestEngineCollectAll(t *testing.T) {
	red := []*Segment{MustSegment(0, 0, 4, 4, 0)}
	blue := []*Segment{MustSegment(0, 4, 4, 0, 1), MustSegment(0, 1, 4, 1, 1)}

	res, err := NewEngine(Options{Epsilon: Epsilon, CollectAll: true}).Intersect(red, blue)
	test.Error(t, err)
	test.That(t, res.Connected)
	test.T(t, res.Events, 9) // six endpoints and three crossings
	test.T(t, len(res.Intersections), 2)
	test.That(t, res.Intersections[0].Equals(Point{1.0, 1.0}), res.Intersections[0])
	test.That(t, res.Intersections[1].Equals(Point{2.0, 2.0}), res.Intersections[1])
	test.That(t, !res.Intersections[0].Overlap)

	res, err = NewEngine(DefaultOptions).Intersect(red, blue)
	test.Error(t, err)
	test.That(t, res.Connected)
	test.T(t, len(res.Intersections), 1)
	test.T(t, res.Events, 2) // stops at the second left endpoint
}

func TestEngineDetect(t *testing.T) {
	// crossings within a group are not reported
	segs := []*Segment{MustSegment(0, 0, 2, 2, 0), MustSegment(0, 2, 2, 0, 0), MustSegment(3, 0, 4, 0, 1)}
	res, err := NewEngine(DefaultOptions).Detect(segs)
	test.Error(t, err)
	test.That(t, !res.Connected)
	test.T(t, res.Events, 7)

	segs = append(segs, MustSegment(1, -1, 1, 3, 2))
	res, err = NewEngine(Options{Epsilon: Epsilon, CollectAll: true}).Detect(segs)
	test.Error(t, err)
	test.That(t, res.Connected)
	test.T(t, len(res.Intersections), 2)
}

func TestEngineErrors(t *testing.T) {
	engine := NewEngine(DefaultOptions)
	_, err := engine.Intersect([]*Segment{MustSegment(0, 0, 1, 1, 0)}, []*Segment{MustSegment(0, 1, 1, 0, 0)})
	test.That(t, errors.Is(err, ErrGroupMismatch), err)

	_, err = engine.Intersect([]*Segment{nil}, []*Segment{MustSegment(0, 1, 1, 0, 1)})
	test.That(t, errors.Is(err, ErrNilSegment), err)

	_, err = engine.Detect([]*Segment{MustSegment(0, 1, 1, 0, 1), nil})
	test.That(t, errors.Is(err, ErrNilSegment), err)
}

func TestEngineGrid(t *testing.T) {
	// red horizontals and blue verticals never cross within their group
	r := rand.New(rand.NewPCG(1, 2))
	for i := range 200 {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			red := RandomHorizontals(r, 1+r.IntN(20), 0)
			blue := RandomVerticals(r, 1+r.IntN(20), 1)
			want := BruteForce(red, blue, Epsilon)

			res, err := NewEngine(DefaultOptions).Intersect(red, blue)
			test.Error(t, err)
			test.T(t, res.Connected, want.Connected)

			all, err := NewEngine(Options{Epsilon: Epsilon, CollectAll: true}).Intersect(red, blue)
			test.Error(t, err)
			test.T(t, len(all.Intersections), len(want.Intersections))
		})
	}
}

func TestEngineRandom(t *testing.T) {
	// every witness of the sweep is a real intersection
	r := rand.New(rand.NewPCG(3, 4))
	for i := range 200 {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			red := RandomSegments(r, 1+r.IntN(15), 0)
			blue := RandomSegments(r, 1+r.IntN(15), 1)
			want := BruteForce(red, blue, Epsilon)

			res, err := NewEngine(Options{Epsilon: Epsilon, CollectAll: true}).Intersect(red, blue)
			test.Error(t, err)
			test.That(t, !res.Connected || want.Connected)
			test.That(t, len(res.Intersections) <= len(want.Intersections))
			for _, z := range res.Intersections {
				found := false
				for _, w := range want.Intersections {
					if z.A == w.A && z.B == w.B {
						test.That(t, z.Equals(w.Point), z, "!=", w)
						found = true
					}
				}
				test.That(t, found, "spurious intersection", z)
			}
		})
	}
}

func TestEngineStaleOrder(t *testing.T) {
	// L and U of the same group cross at (6.67,2.67), swapping them in the neighbour links only.
	// The tree still orders C < L < U, so the blue segment starting between U and L at x=10 is
	// linked between C and U, and its crossing with L at (11.18,4.47) is never tested.
	red := []*Segment{
		MustSegment(0, -10, 20, -10, 0), // C
		MustSegment(0, 0, 20, 8, 0),     // L
		MustSegment(0, 4, 20, 0, 0),     // U
	}
	blue := []*Segment{MustSegment(10, 3, 14, 8, 1)}

	want := BruteForce(red, blue, Epsilon)
	test.That(t, want.Connected)
	test.T(t, len(want.Intersections), 1)
	test.That(t, want.Intersections[0].A == red[1], want.Intersections[0])

	for _, collectAll := range []bool{false, true} {
		res, err := NewEngine(Options{Epsilon: Epsilon, CollectAll: collectAll}).Intersect(red, blue)
		test.Error(t, err)
		test.That(t, !res.Connected, "crossing found", collectAll)
		test.T(t, len(res.Intersections), 0)
	}
}
