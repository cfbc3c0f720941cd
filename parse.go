package sweepline

import (
	"bufio"
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/strconv"
)

// ErrSyntax is returned for input that cannot be parsed.
var ErrSyntax = errors.New("syntax error")

var (
	timestepHeader = []byte("TIMESTEP")
	groupHeader    = []byte("Neuron")
)

func skipWhitespace(b []byte) int {
	i := 0
	for i < len(b) && parse.IsWhitespace(b[i]) {
		i++
	}
	return i
}

func parseNum(b []byte) (float64, int) {
	i := skipWhitespace(b)
	f, n := strconv.ParseFloat(b[i:])
	if n == 0 {
		return 0.0, 0
	}
	return f, i + n
}

// ParseDump parses a simulation dump into groups of segments per timestep. A line starting with TIMESTEP starts a new timestep and a line starting with Neuron starts a new group, all other non-empty lines hold a segment as "x1 y1 x2 y2". Lines before the first header belong to an implicit timestep and group. Groups without segments and timesteps without groups are dropped, and group IDs are the index of the group among the non-empty groups of its timestep.
func ParseDump(r io.Reader) ([][]Group, error) {
	steps := [][]Group{}
	newStep := func() {
		steps = append(steps, []Group{})
	}
	newGroup := func() {
		if len(steps) == 0 {
			newStep()
		}
		step := steps[len(steps)-1]
		steps[len(steps)-1] = append(step, Group{ID: len(step)})
	}

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := parse.TrimWhitespace(scanner.Bytes())
		if len(line) == 0 {
			continue
		} else if bytes.HasPrefix(line, timestepHeader) {
			newStep()
			continue
		} else if bytes.HasPrefix(line, groupHeader) {
			newGroup()
			continue
		}

		var coords [4]float64
		i := 0
		for k := range coords {
			f, n := parseNum(line[i:])
			if n == 0 {
				return nil, errors.Wrapf(ErrSyntax, "line %d: expected four numbers: %s", lineno, line)
			}
			coords[k] = f
			i += n
		}
		if i += skipWhitespace(line[i:]); i != len(line) {
			return nil, errors.Wrapf(ErrSyntax, "line %d: unexpected %q", lineno, line[i:])
		}

		if len(steps) == 0 || len(steps[len(steps)-1]) == 0 {
			newGroup()
		}
		step := steps[len(steps)-1]
		g := &step[len(step)-1]
		s, err := NewSegment(Point{coords[0], coords[1]}, Point{coords[2], coords[3]}, g.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineno)
		}
		g.Segments = append(g.Segments, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	out := [][]Group{}
	for _, step := range steps {
		groups := []Group{}
		for _, g := range step {
			if len(g.Segments) != 0 {
				groups = append(groups, NewGroup(len(groups), g.Segments...))
			}
		}
		if len(groups) != 0 {
			out = append(out, groups)
		}
	}
	return out, nil
}
