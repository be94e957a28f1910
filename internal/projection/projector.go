package projection

import (
	"fmt"

	"github.com/couchcryptid/barangay-centroids/internal/domain"
	"github.com/twpayne/go-geom"
)

// Projector implements domain.Projector: planar centroid in the source grid,
// then inverse UTM to WGS-84.
type Projector struct {
	grid *UTM
}

// NewProjector creates a Projector for geometries in the given UTM grid.
func NewProjector(grid *UTM) *Projector {
	return &Projector{grid: grid}
}

func (p *Projector) Project(g geom.T) (domain.Geo, error) {
	c, err := Centroid(g)
	if err != nil {
		return domain.Geo{}, fmt.Errorf("centroid: %w", err)
	}
	lat, lon := p.grid.Inverse(c.X(), c.Y())
	return domain.Geo{Lat: lat, Lon: lon}, nil
}
