package sweepline

import (
	"fmt"
	"slices"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
)

// ErrDuplicateGroup is returned when two groups of one timestep have the same ID.
var ErrDuplicateGroup = errors.New("duplicate group")

// Group is a set of segments that belong together, such as the branches of one neuron. All segments are tagged with the group's ID.
type Group struct {
	ID       int
	Segments []*Segment
}

// NewGroup returns a group with the given ID and tags all segments with it.
func NewGroup(id int, segs ...*Segment) Group {
	for _, s := range segs {
		if s != nil {
			s.Group = id
		}
	}
	return Group{
		ID:       id,
		Segments: segs,
	}
}

func (g Group) String() string {
	return fmt.Sprintf("Group(%d, %d segments)", g.ID, len(g.Segments))
}

// Pair is the outcome of testing two groups against each other.
type Pair struct {
	A, B          int // group IDs
	Connected     bool
	Intersections []Intersection
}

// Report is the outcome of checking the groups of one timestep.
type Report struct {
	Pairs     []Pair // pairs that were tested
	Skipped   int    // pairs that were skipped since both groups were already connected
	Connected []int  // IDs of the connected groups, sorted
	Total     int    // number of groups
}

// Count returns the number of connected groups.
func (r Report) Count() int {
	return len(r.Connected)
}

// Fraction returns the fraction of groups that are connected.
func (r Report) Fraction() float64 {
	if r.Total == 0 {
		return 0.0
	}
	return float64(len(r.Connected)) / float64(r.Total)
}

// Fractions returns the connected fraction of every report.
func Fractions(reports []Report) []float64 {
	fs := make([]float64, len(reports))
	for i, r := range reports {
		fs[i] = r.Fraction()
	}
	return fs
}

////////////////////////////////////////////////////////////////

// Checker tests groups pairwise for intersections and keeps track of which groups are connected to any other group. The set of connected groups persists between calls, so that pairs of groups that are both connected already are not tested again.
type Checker struct {
	engine    *Engine
	workers   int
	connected map[int]bool
	runs      int
}

// NewChecker returns a connectivity checker for the given options.
func NewChecker(opts Options) *Checker {
	return &Checker{
		engine:    NewEngine(opts),
		workers:   opts.Workers,
		connected: map[int]bool{},
	}
}

// Runs returns the number of times the intersection engine was invoked.
func (c *Checker) Runs() int {
	return c.runs
}

// IsConnected returns true if the group with the given ID has been found to intersect another group.
func (c *Checker) IsConnected(id int) bool {
	return c.connected[id]
}

// Reset forgets all connected groups.
func (c *Checker) Reset() {
	clear(c.connected)
}

func validateGroups(groups []Group) error {
	ids := make(map[int]bool, len(groups))
	for _, g := range groups {
		if ids[g.ID] {
			return errors.Wrapf(ErrDuplicateGroup, "group %d", g.ID)
		}
		ids[g.ID] = true
		for i, s := range g.Segments {
			if s == nil {
				return errors.Wrapf(ErrNilSegment, "group %d segment %d", g.ID, i)
			} else if s.Group != g.ID {
				return errors.Wrapf(ErrGroupMismatch, "group %d segment %d is tagged %d", g.ID, i, s.Group)
			}
		}
	}
	return nil
}

// Check tests every pair of groups that are not both connected yet, and marks both groups as connected when they intersect.
func (c *Checker) Check(groups []Group) (Report, error) {
	if err := validateGroups(groups); err != nil {
		return Report{}, err
	}

	var pairs []Pair
	var skipped int
	var err error
	if c.workers < 2 {
		pairs, skipped, err = c.checkSequential(groups)
	} else {
		pairs, skipped, err = c.checkParallel(groups)
	}
	if err != nil {
		return Report{}, err
	}

	r := Report{
		Pairs:   pairs,
		Skipped: skipped,
		Total:   len(groups),
	}
	for _, g := range groups {
		if c.connected[g.ID] {
			r.Connected = append(r.Connected, g.ID)
		}
	}
	slices.Sort(r.Connected)
	return r, nil
}

func (c *Checker) test(a, b Group) (Pair, error) {
	res, err := c.engine.Intersect(a.Segments, b.Segments)
	if err != nil {
		return Pair{}, errors.Wrapf(err, "groups %d and %d", a.ID, b.ID)
	}
	return Pair{
		A:             a.ID,
		B:             b.ID,
		Connected:     res.Connected,
		Intersections: res.Intersections,
	}, nil
}

func (c *Checker) checkSequential(groups []Group) ([]Pair, int, error) {
	pairs := []Pair{}
	skipped := 0
	for i := range groups {
		for j := i + 1; j < len(groups); j++ {
			a, b := groups[i], groups[j]
			if c.connected[a.ID] && c.connected[b.ID] {
				skipped++
				continue
			}
			pair, err := c.test(a, b)
			c.runs++
			if err != nil {
				return nil, 0, err
			}
			if pair.Connected {
				c.connected[a.ID] = true
				c.connected[b.ID] = true
			}
			pairs = append(pairs, pair)
		}
	}
	return pairs, skipped, nil
}

// checkParallel tests all pairs that are pending at the start concurrently, and then merges the results in pair order as if they were tested sequentially.
func (c *Checker) checkParallel(groups []Group) ([]Pair, int, error) {
	type job struct {
		i, j int
	}
	jobs := []job{}
	for i := range groups {
		for j := i + 1; j < len(groups); j++ {
			if !c.connected[groups[i].ID] || !c.connected[groups[j].ID] {
				jobs = append(jobs, job{i, j})
			}
		}
	}

	results := make([]Pair, len(jobs))
	g := errgroup.Group{}
	g.SetLimit(c.workers)
	for k, jb := range jobs {
		g.Go(func() error {
			pair, err := c.test(groups[jb.i], groups[jb.j])
			if err != nil {
				return err
			}
			results[k] = pair
			return nil
		})
	}
	err := g.Wait()
	c.runs += len(jobs)
	if err != nil {
		return nil, 0, err
	}

	pairs := []Pair{}
	skipped := 0
	k := 0
	for i := range groups {
		for j := i + 1; j < len(groups); j++ {
			a, b := groups[i], groups[j]
			pending := k < len(jobs) && jobs[k].i == i && jobs[k].j == j
			if pending {
				k++
			}
			if c.connected[a.ID] && c.connected[b.ID] {
				skipped++
				continue
			}
			pair := results[k-1]
			if pair.Connected {
				c.connected[a.ID] = true
				c.connected[b.ID] = true
			}
			pairs = append(pairs, pair)
		}
	}
	return pairs, skipped, nil
}

// Analyze checks the groups of consecutive timesteps and returns a report per timestep. Groups that were connected in an earlier timestep remain connected.
func (c *Checker) Analyze(steps [][]Group) ([]Report, error) {
	reports := make([]Report, 0, len(steps))
	for i, groups := range steps {
		r, err := c.Check(groups)
		if err != nil {
			return nil, errors.Wrapf(err, "timestep %d", i)
		}
		reports = append(reports, r)
	}
	return reports, nil
}
