package sweepline

import (
	"cmp"
	"fmt"
	"strings"
)

// EventKind is the kind of a sweep event. At equal positions, right endpoints are handled before intersections, which are handled before left endpoints.
type EventKind int

const (
	RightEndpoint EventKind = iota
	IntersectionPoint
	LeftEndpoint
)

func (v EventKind) String() string {
	switch v {
	case RightEndpoint:
		return "Right"
	case IntersectionPoint:
		return "Intersection"
	case LeftEndpoint:
		return "Left"
	}
	return fmt.Sprintf("EventKind(%d)", int(v))
}

// Event is a position where the sweep status changes. Endpoint events refer to their segment in A, intersection events refer to the crossing segments in A and B.
type Event struct {
	Point
	Kind EventKind
	A, B *SweepNode
}

// LeftEvent returns the event for the left endpoint of n.
func LeftEvent(n *SweepNode) Event {
	return Event{Point: n.Left, Kind: LeftEndpoint, A: n}
}

// RightEvent returns the event for the right endpoint of n.
func RightEvent(n *SweepNode) Event {
	return Event{Point: n.Right, Kind: RightEndpoint, A: n}
}

// IntersectionEvent returns the event where a and b cross at z. The order of a and b is irrelevant.
func IntersectionEvent(z Point, a, b *SweepNode) Event {
	if b.id < a.id {
		a, b = b, a
	}
	return Event{Point: z, Kind: IntersectionPoint, A: a, B: b}
}

func (e Event) String() string {
	if e.Kind == IntersectionPoint {
		return fmt.Sprintf("%v %v×%v", e.Point, e.A, e.B)
	}
	return fmt.Sprintf("%v %v %v", e.Point, e.Kind, e.A)
}

func nodeID(n *SweepNode) int {
	if n == nil {
		return -1
	}
	return n.id
}

// EventQueue holds the pending events ordered from left to right, then bottom to top.
type EventQueue struct {
	tree *Tree[Event]
	tol  Tolerance
}

// NewEventQueue returns an empty event queue that compares positions with the given tolerance.
func NewEventQueue(tol Tolerance) *EventQueue {
	q := &EventQueue{
		tol: tol,
	}
	q.tree = NewTree(q.compare)
	return q
}

func (q *EventQueue) compare(a, b Event) int {
	if c := q.tol.ComparePoints(a.Point, b.Point); c != 0 {
		return c
	} else if a.Kind != b.Kind {
		return cmp.Compare(a.Kind, b.Kind)
	} else if c := cmp.Compare(nodeID(a.A), nodeID(b.A)); c != 0 {
		return c
	}
	return cmp.Compare(nodeID(a.B), nodeID(b.B))
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	return q.tree.Len()
}

// Empty returns true if there are no pending events.
func (q *EventQueue) Empty() bool {
	return q.tree.Empty()
}

// Insert adds an event.
func (q *EventQueue) Insert(e Event) {
	q.tree.Insert(e)
}

// InsertIfAbsent adds an event unless an equal event is pending, it returns true if it was added. The same intersection may be discovered from both segments involved.
func (q *EventQueue) InsertIfAbsent(e Event) bool {
	if _, ok := q.Find(e); ok {
		return false
	}
	q.tree.Insert(e)
	return true
}

// Find returns the pending event equal to e.
func (q *EventQueue) Find(e Event) (Event, bool) {
	if n := q.tree.Find(e); n != nil {
		return n.Key, true
	}
	return Event{}, false
}

// PopMin removes and returns the next event.
func (q *EventQueue) PopMin() (Event, bool) {
	return q.tree.DeleteMin()
}

// Delete removes a pending event equal to e.
func (q *EventQueue) Delete(e Event) bool {
	return q.tree.Delete(e)
}

func (q *EventQueue) String() string {
	sb := strings.Builder{}
	i := 0
	for e := range q.tree.All() {
		fmt.Fprintln(&sb, i, e)
		i++
	}
	str := sb.String()
	if 0 < len(str) {
		str = str[:len(str)-1]
	}
	return str
}
