package shapefile

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonas-p/go-shp"
	"github.com/twpayne/go-geom"
	"golang.org/x/text/encoding/charmap"
)

const (
	codeFieldSize = 11
	nameFieldSize = 64
)

// Feature is one polygon feature written by WriteFixture. Codes use the raw
// 10-digit source encoding.
type Feature struct {
	RegionCode   int64
	ProvinceCode int64
	CityMuniCode int64
	BarangayCode int64
	Name         string
	Rings        [][]geom.Coord
}

// WriteFixture writes features as a polygon shapefile at path (.shp, .shx and
// .dbf) with the attribute layout Open expects. Names are encoded as
// ISO-8859-1.
func WriteFixture(path string, features []Feature) error {
	w, err := createWriter(path)
	if err != nil {
		return err
	}
	werr := writeFeatures(w, features)
	if err := closeWriter(w, path); err != nil && werr == nil {
		return err
	}
	return werr
}

func createWriter(path string) (*shp.Writer, error) {
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return nil, fmt.Errorf("create shapefile %s: %w", path, err)
	}
	return w, nil
}

// closeWriter closes w and moves its attribute table next to the .shp.
// go-shp v0.1.1 names it "<base>dbf", without the dot.
func closeWriter(w *shp.Writer, path string) error {
	w.Close()
	base := path
	if strings.HasSuffix(strings.ToLower(base), ".shp") {
		base = base[:len(base)-4]
	}
	if err := os.Rename(base+"dbf", base+".dbf"); err != nil {
		return fmt.Errorf("move attribute table: %w", err)
	}
	return nil
}

func writeFeatures(w *shp.Writer, features []Feature) error {
	if err := w.SetFields([]shp.Field{
		shp.NumberField(FieldRegion, codeFieldSize),
		shp.NumberField(FieldProvince, codeFieldSize),
		shp.NumberField(FieldCityMuni, codeFieldSize),
		shp.NumberField(FieldBarangay, codeFieldSize),
		shp.StringField(FieldName, nameFieldSize),
	}); err != nil {
		return fmt.Errorf("set fields: %w", err)
	}

	encoder := charmap.ISO8859_1.NewEncoder()
	for i, f := range features {
		name, err := encoder.String(f.Name)
		if err != nil {
			return fmt.Errorf("feature %d: encode name %q: %w", i, f.Name, err)
		}

		parts := make([][]shp.Point, 0, len(f.Rings))
		for _, ring := range f.Rings {
			pts := make([]shp.Point, len(ring))
			for j, c := range ring {
				pts[j] = shp.Point{X: c[0], Y: c[1]}
			}
			parts = append(parts, pts)
		}
		poly := shp.Polygon(*shp.NewPolyLine(parts))
		row := int(w.Write(&poly))

		values := []any{
			int(f.RegionCode),
			int(f.ProvinceCode),
			int(f.CityMuniCode),
			int(f.BarangayCode),
			name,
		}
		for field, v := range values {
			if err := w.WriteAttribute(row, field, v); err != nil {
				return fmt.Errorf("feature %d: field %d: %w", i, field, err)
			}
		}
	}
	return nil
}
