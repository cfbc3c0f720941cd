package sweepline

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrGroupMismatch is returned when segments are tagged with a group they don't belong to.
var ErrGroupMismatch = errors.New("group mismatch")

// Options are the options for the intersection engine and the connectivity checker.
type Options struct {
	Epsilon    float64 // tolerance for coordinate equality, zero compares exactly
	CollectAll bool    // continue the sweep after the first intersection to collect all witnesses
	Workers    int     // number of group pairs checked concurrently, values below 2 run sequentially
}

// DefaultOptions are the default options, which stop at the first intersection and run sequentially.
var DefaultOptions = Options{
	Epsilon:    Epsilon,
	CollectAll: false,
	Workers:    1,
}

// Intersection is an intersection witnessed between segments of different groups. For overlaps, the point is the left-most point of the shared part.
type Intersection struct {
	Point
	A, B    *Segment
	Overlap bool
}

func (z Intersection) String() string {
	if z.Overlap {
		return fmt.Sprintf("%v %v=%v", z.Point, z.A, z.B)
	}
	return fmt.Sprintf("%v %v×%v", z.Point, z.A, z.B)
}

// Result is the outcome of a sweep.
type Result struct {
	Connected     bool           // segments of different groups intersect
	Intersections []Intersection // witnesses in order of discovery, only the first unless all are collected
	Events        int            // number of events processed
}

// Engine finds intersections between segments of different groups by sweeping a vertical line from left to right. An Engine holds no state between calls and may be used concurrently.
type Engine struct {
	tol        Tolerance
	collectAll bool
}

// NewEngine returns an intersection engine for the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{
		tol:        Tolerance(opts.Epsilon),
		collectAll: opts.CollectAll,
	}
}

// Intersect returns whether any red segment intersects any blue segment. Red and blue segments must not share group tags.
func (e *Engine) Intersect(red, blue []*Segment) (Result, error) {
	groups := map[int]bool{}
	for i, s := range red {
		if s == nil {
			return Result{}, errors.Wrapf(ErrNilSegment, "red segment %d", i)
		}
		groups[s.Group] = true
	}
	for i, s := range blue {
		if s == nil {
			return Result{}, errors.Wrapf(ErrNilSegment, "blue segment %d", i)
		} else if groups[s.Group] {
			return Result{}, errors.Wrapf(ErrGroupMismatch, "group %d is both red and blue", s.Group)
		}
	}

	segs := make([]*Segment, 0, len(red)+len(blue))
	segs = append(segs, red...)
	segs = append(segs, blue...)
	res := e.sweep(segs)
	for i, z := range res.Intersections {
		if !groups[z.A.Group] {
			res.Intersections[i].A, res.Intersections[i].B = z.B, z.A
		}
	}
	return res, nil
}

// Detect returns whether any two segments with different group tags intersect.
func (e *Engine) Detect(segs []*Segment) (Result, error) {
	for i, s := range segs {
		if s == nil {
			return Result{}, errors.Wrapf(ErrNilSegment, "segment %d", i)
		}
	}
	return e.sweep(segs), nil
}

func (e *Engine) sweep(segs []*Segment) Result {
	s := &sweeper{
		tol:        e.tol,
		collectAll: e.collectAll,
		queue:      NewEventQueue(e.tol),
		status:     NewSweepStatus(e.tol),
		handled:    map[[2]int]bool{},
	}
	for i, seg := range segs {
		n := NewSweepNode(seg, i)
		s.queue.Insert(LeftEvent(n))
		s.queue.Insert(RightEvent(n))
	}
	s.run()
	return s.res
}

////////////////////////////////////////////////////////////////

// sweeper is the state of a single sweep.
type sweeper struct {
	tol        Tolerance
	collectAll bool

	queue   *EventQueue
	status  *SweepStatus
	handled map[[2]int]bool // pairs of node IDs that have been tested
	cur     Event

	res Result
}

func (s *sweeper) done() bool {
	return s.res.Connected && !s.collectAll
}

func (s *sweeper) run() {
	for !s.done() {
		event, ok := s.queue.PopMin()
		if !ok {
			break
		}
		s.cur = event
		s.res.Events++

		switch event.Kind {
		case LeftEndpoint:
			n := event.A
			s.status.Insert(n)
			s.check(n, n.above)
			s.check(n.below, n)
		case RightEndpoint:
			n := event.A
			s.check(n.below, n.above) // become neighbours
			s.status.Remove(n)
		case IntersectionPoint:
			a, b := event.A, event.B
			if !a.Active() || !b.Active() {
				continue
			}
			adjacent := a.above == b || b.above == a
			s.status.Swap(a, b)
			if adjacent {
				lo, hi := a, b
				if hi.above == lo {
					lo, hi = hi, lo
				}
				s.check(lo.below, lo)
				s.check(hi, hi.above)
			} else {
				// order was stale, test all new neighbours
				s.check(a.below, a)
				s.check(a, a.above)
				s.check(b.below, b)
				s.check(b, b.above)
			}
		}
	}
}

// check tests segments lo and hi for an intersection. Crossings after the current event are queued, and crossings or overlaps between different groups are recorded.
func (s *sweeper) check(lo, hi *SweepNode) {
	if lo == nil || hi == nil || s.done() {
		return
	}
	key := [2]int{lo.id, hi.id}
	if hi.id < lo.id {
		key[0], key[1] = hi.id, lo.id
	}
	if s.handled[key] {
		return
	}
	s.handled[key] = true

	kind, z := s.tol.Intersect(lo.Segment, hi.Segment)
	if kind == NoIntersection {
		return
	} else if kind == Crossing {
		event := IntersectionEvent(z, lo, hi)
		if 0 < s.queue.compare(event, s.cur) {
			s.queue.InsertIfAbsent(event)
		}
	}

	if lo.Group != hi.Group {
		s.res.Connected = true
		s.res.Intersections = append(s.res.Intersections, Intersection{
			Point:   z,
			A:       lo.Segment,
			B:       hi.Segment,
			Overlap: kind == Overlap,
		})
	}
}

////////////////////////////////////////////////////////////////

// BruteForce tests every red segment against every blue segment and returns all intersections. It is O(n*m) and mostly useful to verify the sweep.
func BruteForce(red, blue []*Segment, tol Tolerance) Result {
	res := Result{}
	for _, a := range red {
		for _, b := range blue {
			if a.Group == b.Group {
				continue
			}
			if kind, z := tol.Intersect(a, b); kind != NoIntersection {
				res.Connected = true
				res.Intersections = append(res.Intersections, Intersection{
					Point:   z,
					A:       a,
					B:       b,
					Overlap: kind == Overlap,
				})
			}
		}
	}
	return res
}
