package sweepline

import (
	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ParseGeoJSON parses a GeoJSON feature collection into groups. Every feature with a LineString or MultiLineString geometry is a group of the segments between consecutive points, its ID is taken from the integer property "group" or else is the index of the group. Point features are ignored.
func ParseGeoJSON(data []byte) ([]Group, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrapf(ErrSyntax, "geojson: %v", err)
	}

	groups := []Group{}
	for i, f := range fc.Features {
		var lines []orb.LineString
		switch g := f.Geometry.(type) {
		case orb.LineString:
			lines = []orb.LineString{g}
		case orb.MultiLineString:
			lines = g
		case orb.Point, orb.MultiPoint:
			continue
		default:
			return nil, errors.Wrapf(ErrSyntax, "feature %d: unsupported geometry %T", i, f.Geometry)
		}

		id := len(groups)
		if v, ok := f.Properties["group"]; ok {
			fid, ok := v.(float64)
			if !ok || fid != float64(int(fid)) {
				return nil, errors.Wrapf(ErrSyntax, "feature %d: group must be an integer", i)
			}
			id = int(fid)
		}

		group := Group{ID: id}
		for _, line := range lines {
			for j := 1; j < len(line); j++ {
				a := Point{line[j-1][0], line[j-1][1]}
				b := Point{line[j][0], line[j][1]}
				if a.Equals(b) {
					continue // repeated vertex
				}
				s, err := NewSegment(a, b, id)
				if err != nil {
					return nil, errors.Wrapf(err, "feature %d", i)
				}
				group.Segments = append(group.Segments, s)
			}
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// GeoJSON returns a GeoJSON feature collection with a MultiLineString feature per group and a Point feature per intersection.
func GeoJSON(groups []Group, zs []Intersection) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, g := range groups {
		mls := make(orb.MultiLineString, 0, len(g.Segments))
		for _, s := range g.Segments {
			mls = append(mls, orb.LineString{
				orb.Point{s.Left.X, s.Left.Y},
				orb.Point{s.Right.X, s.Right.Y},
			})
		}
		f := geojson.NewFeature(mls)
		f.Properties["group"] = g.ID
		fc.Append(f)
	}
	for _, z := range zs {
		f := geojson.NewFeature(orb.Point{z.X, z.Y})
		f.Properties["groups"] = []int{z.A.Group, z.B.Group}
		f.Properties["overlap"] = z.Overlap
		fc.Append(f)
	}
	return fc.MarshalJSON()
}
