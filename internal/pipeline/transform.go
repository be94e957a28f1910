package pipeline

import (
	"github.com/couchcryptid/barangay-centroids/internal/domain"
)

// CentroidTransformer implements Transformer using the domain row builder
// and a projector for the centroid.
type CentroidTransformer struct {
	projector domain.Projector
}

// NewTransformer creates a CentroidTransformer that locates kept features
// with projector.
func NewTransformer(projector domain.Projector) *CentroidTransformer {
	return &CentroidTransformer{projector: projector}
}

func (t *CentroidTransformer) Transform(rec domain.RawRecord) (domain.Row, bool, error) {
	return domain.BuildRow(rec, t.projector)
}
