package sweepline

import "math/rand/v2"

// RandomSegments returns n segments with both endpoints in [0,10)x[0,10).
func RandomSegments(r *rand.Rand, n, group int) []*Segment {
	segs := make([]*Segment, 0, n)
	for len(segs) < n {
		a := Point{10.0 * r.Float64(), 10.0 * r.Float64()}
		b := Point{10.0 * r.Float64(), 10.0 * r.Float64()}
		if s, err := NewSegment(a, b, group); err == nil {
			segs = append(segs, s)
		}
	}
	return segs
}

// RandomHorizontals returns n horizontal segments at distinct heights in [0,10)x[0,10).
func RandomHorizontals(r *rand.Rand, n, group int) []*Segment {
	segs := make([]*Segment, n)
	for i, k := range r.Perm(n) {
		y := 10.0 * (float64(k) + 0.1 + 0.8*r.Float64()) / float64(n)
		x0, x1 := 5.0*r.Float64(), 5.0+5.0*r.Float64()
		segs[i] = MustSegment(x0, y, x1, y, group)
	}
	return segs
}

// RandomVerticals returns n vertical segments at distinct positions in [0,10)x[0,10).
func RandomVerticals(r *rand.Rand, n, group int) []*Segment {
	segs := make([]*Segment, n)
	for i, k := range r.Perm(n) {
		x := 10.0 * (float64(k) + 0.1 + 0.8*r.Float64()) / float64(n)
		y0, y1 := 5.0*r.Float64(), 5.0+5.0*r.Float64()
		segs[i] = MustSegment(x, y0, x, y1, group)
	}
	return segs
}

// RandomGroups returns n groups with up to m random segments each.
func RandomGroups(r *rand.Rand, n, m int) []Group {
	groups := make([]Group, n)
	for i := range groups {
		groups[i] = NewGroup(i, RandomSegments(r, 1+r.IntN(m), i)...)
	}
	return groups
}
