package sweepline

import (
	"cmp"
	"fmt"
	"strings"
)

// SweepNode is a segment that is in the sweep status. Above and below link to its neighbours along the sweep line.
type SweepNode struct {
	*Segment
	id int // distinguishes otherwise equal segments

	above, below *SweepNode
	node         *Node[*SweepNode] // used for fast accessing tree node in O(1) (instead of Find in O(log n))
}

// NewSweepNode returns a sweep node for segment s. The id must be unique amongst the segments of one sweep and breaks ties between equal segments.
func NewSweepNode(s *Segment, id int) *SweepNode {
	return &SweepNode{
		Segment: s,
		id:      id,
	}
}

// Above returns the neighbour above, or nil.
func (n *SweepNode) Above() *SweepNode {
	return n.above
}

// Below returns the neighbour below, or nil.
func (n *SweepNode) Below() *SweepNode {
	return n.below
}

// Active returns true if the node is in the sweep status.
func (n *SweepNode) Active() bool {
	return n.node != nil
}

func (n *SweepNode) String() string {
	return fmt.Sprintf("#%d %v", n.id, n.Segment)
}

// link makes lo and hi neighbours, either may be nil.
func link(lo, hi *SweepNode) {
	if lo != nil {
		lo.above = hi
	}
	if hi != nil {
		hi.below = lo
	}
}

// SweepStatus holds the segments that cross the sweep line, ordered from bottom to top in a tree and linked to their neighbours above and below.
type SweepStatus struct {
	tree *Tree[*SweepNode]
	tol  Tolerance
}

// NewSweepStatus returns an empty sweep status that compares segments with the given tolerance.
func NewSweepStatus(tol Tolerance) *SweepStatus {
	s := &SweepStatus{
		tol: tol,
	}
	s.tree = NewTree(s.compare)
	s.tree.bind = func(n *Node[*SweepNode]) {
		n.Key.node = n
	}
	return s
}

func (s *SweepStatus) compare(a, b *SweepNode) int {
	if a == b {
		return 0
	} else if c := s.tol.CompareSegments(a.Segment, b.Segment); c != 0 {
		return c
	}
	return cmp.Compare(a.id, b.id)
}

// Len returns the number of segments in the sweep status.
func (s *SweepStatus) Len() int {
	return s.tree.Len()
}

// Tree returns the underlying ordered tree.
func (s *SweepStatus) Tree() *Tree[*SweepNode] {
	return s.tree
}

// Insert adds n to the sweep status and links it between its in-order predecessor and successor.
func (s *SweepStatus) Insert(n *SweepNode) {
	s.tree.Insert(n)
	if prev := n.node.Prev(); prev != nil {
		hi := prev.Key.above
		link(prev.Key, n)
		link(n, hi)
	} else if next := n.node.Next(); next != nil {
		lo := next.Key.below
		link(lo, n)
		link(n, next.Key)
	} else {
		n.above, n.below = nil, nil
	}
}

// Remove removes n from the sweep status and links its former neighbours to each other.
func (s *SweepStatus) Remove(n *SweepNode) {
	if n.node == nil {
		return
	}
	s.tree.Remove(n.node)
	link(n.below, n.above)
	n.above, n.below, n.node = nil, nil, nil
}

// Swap exchanges the positions of a and b in the neighbour links after they crossed, without moving them in the tree.
func (s *SweepStatus) Swap(a, b *SweepNode) {
	if b.above == a {
		a, b = b, a
	}
	if a.above == b {
		// adjacent, a is below b
		lo, hi := a.below, b.above
		link(lo, b)
		link(b, a)
		link(a, hi)
		return
	}

	aLo, aHi := a.below, a.above
	bLo, bHi := b.below, b.above
	link(aLo, b)
	link(b, aHi)
	link(bLo, a)
	link(a, bHi)
}

// Bottom returns the lowest node following the neighbour links, or nil.
func (s *SweepStatus) Bottom() *SweepNode {
	n := s.tree.Min()
	if n == nil {
		return nil
	}
	bottom := n.Key
	for bottom.below != nil {
		bottom = bottom.below
	}
	return bottom
}

func (s *SweepStatus) String() string {
	sb := strings.Builder{}
	for n := s.Bottom(); n != nil; n = n.above {
		sb.WriteString(n.String())
		if n.above != nil {
			sb.WriteString(" < ")
		}
	}
	return sb.String()
}
