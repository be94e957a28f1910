package shapefile

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/jonas-p/go-shp"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// toGeometry converts a shapefile polygon into a multipolygon. Null shapes
// become an empty multipolygon.
func toGeometry(s shp.Shape) (*geom.MultiPolygon, error) {
	var (
		parts  []int32
		points []shp.Point
	)
	switch p := s.(type) {
	case *shp.Null:
		return geom.NewMultiPolygon(geom.XY), nil
	case *shp.Polygon:
		parts, points = p.Parts, p.Points
	case *shp.PolygonZ:
		parts, points = p.Parts, p.Points
	case *shp.PolygonM:
		parts, points = p.Parts, p.Points
	default:
		return nil, fmt.Errorf("unsupported shape type %T", s)
	}

	rings, err := splitRings(parts, points)
	if err != nil {
		return nil, err
	}
	return geom.NewMultiPolygon(geom.XY).SetCoords(organizeRings(rings))
}

// splitRings cuts the flat point list at the part offsets and closes any ring
// whose last point differs from its first.
func splitRings(parts []int32, points []shp.Point) ([][]geom.Coord, error) {
	rings := make([][]geom.Coord, 0, len(parts))
	for i, start := range parts {
		end := int32(len(points))
		if i+1 < len(parts) {
			end = parts[i+1]
		}
		if start < 0 || start > end || int(end) > len(points) {
			return nil, fmt.Errorf("part %d: offsets [%d, %d) outside %d points", i, start, end, len(points))
		}
		if start == end {
			continue
		}

		ring := make([]geom.Coord, 0, end-start+1)
		for _, p := range points[start:end] {
			ring = append(ring, geom.Coord{p.X, p.Y})
		}
		if first, last := ring[0], ring[len(ring)-1]; !first.Equal(geom.XY, last) {
			ring = append(ring, geom.Coord{first[0], first[1]})
		}
		rings = append(rings, ring)
	}
	return rings, nil
}

// organizeRings groups rings into polygons. Clockwise rings are exteriors and
// counter-clockwise rings are holes. A hole goes to the smallest exterior that
// contains it; holes no exterior contains become exteriors themselves, as do
// all rings when none is clockwise.
func organizeRings(rings [][]geom.Coord) [][][]geom.Coord {
	var exteriors, holes [][]geom.Coord
	for _, r := range rings {
		if isClockwise(r) {
			exteriors = append(exteriors, r)
		} else {
			holes = append(holes, r)
		}
	}

	if len(exteriors) == 0 {
		polys := make([][][]geom.Coord, 0, len(holes))
		for _, h := range holes {
			polys = append(polys, [][]geom.Coord{h})
		}
		return polys
	}

	polys := make([][][]geom.Coord, len(exteriors))
	for i, e := range exteriors {
		polys[i] = [][]geom.Coord{e}
	}
	if len(exteriors) == 1 {
		polys[0] = append(polys[0], holes...)
		return polys
	}

	for _, h := range holes {
		i := owner(exteriors, h)
		if i < 0 {
			polys = append(polys, [][]geom.Coord{h})
			continue
		}
		polys[i] = append(polys[i], h)
	}
	return polys
}

// owner returns the index of the exterior that contains hole, or -1. Bounding
// boxes decide alone when only one exterior qualifies. Otherwise an interior
// sample of the hole picks among them, and the smallest containing exterior
// wins.
func owner(exteriors [][]geom.Coord, hole []geom.Coord) int {
	hb := bounds(hole)
	var candidates []int
	for i, e := range exteriors {
		if containsBounds(bounds(e), hb) {
			candidates = append(candidates, i)
		}
	}

	if len(candidates) > 1 {
		sample := ringSample(hole)
		candidates = slices.DeleteFunc(candidates, func(i int) bool {
			return !xy.IsPointInRing(geom.XY, sample, flatten(exteriors[i]))
		})
	}

	switch len(candidates) {
	case 0:
		return -1
	case 1:
		return candidates[0]
	}
	return slices.MinFunc(candidates, func(a, b int) int {
		return cmp.Compare(math.Abs(signedArea(exteriors[a])), math.Abs(signedArea(exteriors[b])))
	})
}

// ringSample returns a point strictly inside ring: the centroid of the first
// corner triangle that is not degenerate and winds the same way as the ring.
func ringSample(ring []geom.Coord) geom.Coord {
	if len(ring) < 3 {
		return ring[0]
	}
	cw := isClockwise(ring)

	tri := make([]geom.Coord, 0, 3)
	for _, p := range append(slices.Clone(ring), ring[1]) {
		if slices.ContainsFunc(tri, func(q geom.Coord) bool { return q.Equal(geom.XY, p) }) {
			continue
		}
		tri = append(tri, p)
		if len(tri) < 3 {
			continue
		}
		if a := signedArea([]geom.Coord{tri[0], tri[1], tri[2], tri[0]}); a != 0 && (a > 0) == cw {
			return geom.Coord{
				(tri[0][0] + tri[1][0] + tri[2][0]) / 3,
				(tri[0][1] + tri[1][1] + tri[2][1]) / 3,
			}
		}
		tri = append(tri[:0], tri[1:]...)
	}
	return ring[0]
}

// signedArea is the shoelace area, positive for clockwise rings.
func signedArea(ring []geom.Coord) float64 {
	if len(ring) < 3 {
		return 0
	}
	return xy.SignedArea(geom.XY, flatten(ring))
}

func isClockwise(ring []geom.Coord) bool {
	return signedArea(ring) > 0
}

func bounds(ring []geom.Coord) *geom.Bounds {
	return geom.NewLinearRing(geom.XY).MustSetCoords(ring).Bounds()
}

func containsBounds(outer, inner *geom.Bounds) bool {
	return outer.Min(0) <= inner.Min(0) && outer.Min(1) <= inner.Min(1) &&
		outer.Max(0) >= inner.Max(0) && outer.Max(1) >= inner.Max(1)
}

func flatten(ring []geom.Coord) []float64 {
	flat := make([]float64, 0, 2*len(ring))
	for _, c := range ring {
		flat = append(flat, c[0], c[1])
	}
	return flat
}
