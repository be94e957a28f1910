package domain

import "github.com/twpayne/go-geom"

// RawRecord is one shapefile feature: the raw attribute codes as stored in
// the DBF, the decoded barangay name, and the feature geometry.
type RawRecord struct {
	Index        int
	RegionCode   int64 // adm1_psgc
	ProvinceCode int64 // adm2_psgc
	CityMuniCode int64 // adm3_psgc
	BarangayCode int64 // adm4_psgc
	BarangayName string
	Geometry     geom.T // projected metres, UTM zone 51N

	// CodeErr holds a parse failure of a non-province code. It only
	// matters when the record survives the province filter.
	CodeErr error
}

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64
	Lon float64
}

// Row is an output record. Codes are canonical 9-character PSGCs and
// coordinates are fixed-point strings with six fractional digits.
type Row struct {
	RegionPSGC   string `validate:"len=9,numeric"`
	ProvincePSGC string `validate:"len=9,numeric"`
	CityMuniPSGC string `validate:"len=9,numeric"`
	BarangayPSGC string `validate:"len=9,numeric"`
	BarangayName string
	Latitude     string `validate:"required,latitude"`
	Longitude    string `validate:"required,longitude"`
}

// Header is the fixed CSV column order.
var Header = []string{
	"region_psgc",
	"province_psgc",
	"city_muni_psgc",
	"barangay_psgc",
	"barangay_name",
	"latitude",
	"longitude",
}

// Fields returns the row values in [Header] order.
func (r Row) Fields() []string {
	return []string{
		r.RegionPSGC,
		r.ProvincePSGC,
		r.CityMuniPSGC,
		r.BarangayPSGC,
		r.BarangayName,
		r.Latitude,
		r.Longitude,
	}
}

// RowFromFields is the inverse of [Row.Fields].
func RowFromFields(fields []string) (Row, bool) {
	if len(fields) != len(Header) {
		return Row{}, false
	}
	return Row{
		RegionPSGC:   fields[0],
		ProvincePSGC: fields[1],
		CityMuniPSGC: fields[2],
		BarangayPSGC: fields[3],
		BarangayName: fields[4],
		Latitude:     fields[5],
		Longitude:    fields[6],
	}, true
}
