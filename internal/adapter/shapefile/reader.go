// Package shapefile reads barangay features from an ESRI shapefile and writes
// small shapefiles for fixtures.
package shapefile

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/couchcryptid/barangay-centroids/internal/domain"
	"github.com/jonas-p/go-shp"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Attribute field names the reader requires. Matching is case-sensitive.
const (
	FieldRegion   = "adm1_psgc"
	FieldProvince = "adm2_psgc"
	FieldCityMuni = "adm3_psgc"
	FieldBarangay = "adm4_psgc"
	FieldName     = "adm4_en"
)

var requiredFields = []string{FieldRegion, FieldProvince, FieldCityMuni, FieldBarangay, FieldName}

// ErrMissingField is returned by Open when the attribute table lacks a
// required field.
var ErrMissingField = errors.New("missing required field")

// Reader iterates the features of a polygon shapefile. Text attributes are
// decoded as ISO-8859-1.
type Reader struct {
	path    string
	shp     *shp.Reader
	fields  map[string]int
	rows    int
	decoder *encoding.Decoder
	logger  *slog.Logger
}

// Open opens the .shp file at path together with its sibling .dbf and checks
// that every required attribute field is present.
func Open(path string, logger *slog.Logger) (*Reader, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".shp") {
		return nil, fmt.Errorf("open shapefile %s: expected a .shp path", path)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open shapefile: %w", err)
	}
	// go-shp opens the attribute table lazily and drops its error.
	dbfPath := path[:len(path)-3] + "dbf"
	if _, err := os.Stat(dbfPath); err != nil {
		return nil, fmt.Errorf("open attribute table: %w", err)
	}

	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile %s: %w", path, err)
	}

	fields := make(map[string]int)
	for i, f := range r.Fields() {
		fields[strings.TrimSpace(f.String())] = i
	}
	for _, name := range requiredFields {
		if _, ok := fields[name]; !ok {
			r.Close()
			return nil, fmt.Errorf("%s: %w %q", dbfPath, ErrMissingField, name)
		}
	}

	logger.Debug("shapefile opened",
		"path", path,
		"shape_type", int32(r.GeometryType),
		"attribute_rows", r.AttributeCount(),
		"fields", len(fields),
	)

	return &Reader{
		path:    path,
		shp:     r,
		fields:  fields,
		rows:    r.AttributeCount(),
		decoder: charmap.ISO8859_1.NewDecoder(),
		logger:  logger,
	}, nil
}

// Close releases the underlying files.
func (r *Reader) Close() error {
	return r.shp.Close()
}

// Records yields every feature in file order. Iteration stops after the first
// error. The sequence can be ranged over once.
func (r *Reader) Records() iter.Seq2[domain.RawRecord, error] {
	return func(yield func(domain.RawRecord, error) bool) {
		for r.shp.Next() {
			n, shape := r.shp.Shape()
			rec, err := r.record(n, shape)
			if !yield(rec, err) || err != nil {
				return
			}
		}
		if err := r.shp.Err(); err != nil {
			yield(domain.RawRecord{}, fmt.Errorf("read %s: %w", r.path, err))
		}
	}
}

func (r *Reader) record(n int, shape shp.Shape) (domain.RawRecord, error) {
	if n >= r.rows {
		return domain.RawRecord{}, fmt.Errorf("record %d: no attribute row (table has %d)", n, r.rows)
	}

	province, err := domain.ParseRawPSGC(r.attribute(n, FieldProvince))
	if err != nil {
		return domain.RawRecord{}, fmt.Errorf("record %d: %s: %w", n, FieldProvince, err)
	}
	rec := domain.RawRecord{Index: n, ProvinceCode: province}

	// The remaining codes are only validated for records that pass the
	// province filter.
	codes := []struct {
		field string
		dst   *int64
	}{
		{FieldRegion, &rec.RegionCode},
		{FieldCityMuni, &rec.CityMuniCode},
		{FieldBarangay, &rec.BarangayCode},
	}
	for _, c := range codes {
		v, err := domain.ParseRawPSGC(r.attribute(n, c.field))
		if err != nil && rec.CodeErr == nil {
			rec.CodeErr = fmt.Errorf("%s: %w", c.field, err)
		}
		*c.dst = v
	}

	name, err := r.decoder.String(r.attribute(n, FieldName))
	if err != nil {
		return domain.RawRecord{}, fmt.Errorf("record %d: %s: %w", n, FieldName, err)
	}
	rec.BarangayName = name

	g, err := toGeometry(shape)
	if err != nil {
		return domain.RawRecord{}, fmt.Errorf("record %d: geometry: %w", n, err)
	}
	rec.Geometry = g
	return rec, nil
}

func (r *Reader) attribute(row int, field string) string {
	return strings.Trim(r.shp.ReadAttribute(row, r.fields[field]), " \x00")
}
