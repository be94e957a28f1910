package projection

import (
	"errors"
	"fmt"
	"math"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

var (
	// ErrEmptyGeometry is returned for nil or empty geometries.
	ErrEmptyGeometry = errors.New("empty geometry")

	// ErrDegenerateGeometry is returned when no finite centroid exists.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

// minRingCoords is the smallest closed ring: a triangle plus its closing point.
const minRingCoords = 4

// Centroid computes the planar area centroid of g in its own coordinate
// system. Polygons and multipolygons use the area-weighted triangle
// decomposition, with holes subtracted; zero-area polygons fall back to the
// centroid of their edges.
func Centroid(g geom.T) (geom.Coord, error) {
	if g == nil || g.Empty() {
		return nil, ErrEmptyGeometry
	}
	if err := checkRings(g); err != nil {
		return nil, err
	}

	c, err := xy.Centroid(g)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(c.X()) || math.IsNaN(c.Y()) || math.IsInf(c.X(), 0) || math.IsInf(c.Y(), 0) {
		return nil, ErrDegenerateGeometry
	}
	return c, nil
}

// checkRings rejects polygon rings too short to have an orientation; the
// centroid calculator cannot handle them.
func checkRings(g geom.T) error {
	stride := g.Stride()
	switch t := g.(type) {
	case *geom.Polygon:
		return checkEnds(t.Ends(), stride, 0)
	case *geom.MultiPolygon:
		offset := 0
		for i, ends := range t.Endss() {
			if len(ends) == 0 {
				return fmt.Errorf("%w: polygon %d has no rings", ErrEmptyGeometry, i)
			}
			if err := checkEnds(ends, stride, offset); err != nil {
				return fmt.Errorf("polygon %d: %w", i, err)
			}
			offset = ends[len(ends)-1]
		}
	}
	return nil
}

func checkEnds(ends []int, stride, offset int) error {
	start := offset
	for i, end := range ends {
		if n := (end - start) / stride; n < minRingCoords {
			return fmt.Errorf("%w: ring %d has %d coordinates", ErrDegenerateGeometry, i, n)
		}
		start = end
	}
	return nil
}
