package sweepline

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/tdewolff/test"
)

func TestGeoJSON(t *testing.T) {
	groups := []Group{
		NewGroup(4, MustSegment(0, 0, 2, 2, 0), MustSegment(2, 2, 3, 0, 0)),
		NewGroup(9, MustSegment(0, 2, 2, 0, 0)),
	}
	res, err := NewEngine(DefaultOptions).Intersect(groups[0].Segments, groups[1].Segments)
	test.Error(t, err)

	data, err := GeoJSON(groups, res.Intersections)
	test.Error(t, err)

	groups2, err := ParseGeoJSON(data)
	test.Error(t, err)
	test.T(t, len(groups2), len(groups))
	for i, g := range groups2 {
		test.T(t, g.ID, groups[i].ID)
		test.T(t, len(g.Segments), len(groups[i].Segments))
		for j, s := range g.Segments {
			test.T(t, *s, *groups[i].Segments[j])
		}
	}
}

func TestParseGeoJSON(t *testing.T) {
	data := []byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[1,1],[1,1],[2,0]]},"properties":{}},
		{"type":"Feature","geometry":{"type":"MultiLineString","coordinates":[[[0,1],[2,1]],[[5,5],[6,6]]]},"properties":{"group":7}},
		{"type":"Feature","geometry":{"type":"Point","coordinates":[1,1]},"properties":{}}
	]}`)
	groups, err := ParseGeoJSON(data)
	test.Error(t, err)
	test.T(t, len(groups), 2)
	test.T(t, groups[0].ID, 0)
	test.T(t, len(groups[0].Segments), 2) // repeated vertex is skipped
	test.T(t, groups[1].ID, 7)
	test.T(t, len(groups[1].Segments), 2)
	test.T(t, groups[1].Segments[1].Group, 7)

	_, err = ParseGeoJSON([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]},"properties":{}}]}`))
	test.That(t, errors.Is(err, ErrSyntax), err)

	_, err = ParseGeoJSON([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"LineString","coordinates":[[0,0],[1,0]]},"properties":{"group":"a"}}]}`))
	test.That(t, errors.Is(err, ErrSyntax), err)

	_, err = ParseGeoJSON([]byte(`{`))
	test.That(t, errors.Is(err, ErrSyntax), err)
}
