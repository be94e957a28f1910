package domain

import "github.com/twpayne/go-geom"

// Projector reduces a projected geometry to a single WGS-84 point.
type Projector interface {
	// Project returns the geographic position of the geometry's centroid.
	Project(g geom.T) (Geo, error)
}
