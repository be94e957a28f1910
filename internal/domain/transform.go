package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
)

// coordinatePrecision is the number of fractional digits written for
// latitude and longitude.
const coordinatePrecision = 6

// BuildRow runs the per-record chain: normalize the province code, filter,
// project the geometry, then normalize the remaining codes. ok is false when
// the record lies outside the target provinces; such records are never
// projected, so their geometry and other codes are not checked.
func BuildRow(rec RawRecord, projector Projector) (row Row, ok bool, err error) {
	province, err := NormalizePSGC(rec.ProvinceCode)
	if err != nil {
		return Row{}, false, fmt.Errorf("record %d: adm2_psgc: %w", rec.Index, err)
	}
	if !IsTargetProvince(province) {
		return Row{}, false, nil
	}
	if rec.CodeErr != nil {
		return Row{}, false, fmt.Errorf("record %d: %w", rec.Index, rec.CodeErr)
	}

	geo, err := projector.Project(rec.Geometry)
	if err != nil {
		return Row{}, false, fmt.Errorf("record %d: %w", rec.Index, err)
	}

	row, err = rowFromRecord(rec, province, geo)
	if err != nil {
		return Row{}, false, err
	}
	return row, true, nil
}

func rowFromRecord(rec RawRecord, province string, geo Geo) (Row, error) {
	region, err := NormalizePSGC(rec.RegionCode)
	if err != nil {
		return Row{}, fmt.Errorf("record %d: adm1_psgc: %w", rec.Index, err)
	}
	cityMuni, err := NormalizePSGC(rec.CityMuniCode)
	if err != nil {
		return Row{}, fmt.Errorf("record %d: adm3_psgc: %w", rec.Index, err)
	}
	barangay, err := NormalizePSGC(rec.BarangayCode)
	if err != nil {
		return Row{}, fmt.Errorf("record %d: adm4_psgc: %w", rec.Index, err)
	}

	return Row{
		RegionPSGC:   region,
		ProvincePSGC: province,
		CityMuniPSGC: cityMuni,
		BarangayPSGC: barangay,
		BarangayName: rec.BarangayName,
		Latitude:     FormatCoordinate(geo.Lat),
		Longitude:    FormatCoordinate(geo.Lon),
	}, nil
}

// FormatCoordinate renders degrees as fixed-point with six fractional digits,
// rounded to nearest from the exact binary value.
func FormatCoordinate(deg float64) string {
	return strconv.FormatFloat(deg, 'f', coordinatePrecision, 64)
}

// CompareRows orders rows by province, then city/municipality, then barangay.
func CompareRows(a, b Row) int {
	return cmp.Or(
		cmp.Compare(a.ProvincePSGC, b.ProvincePSGC),
		cmp.Compare(a.CityMuniPSGC, b.CityMuniPSGC),
		cmp.Compare(a.BarangayPSGC, b.BarangayPSGC),
	)
}

// SortRows sorts rows in place with [CompareRows]. Rows with equal keys keep
// their input order.
func SortRows(rows []Row) {
	slices.SortStableFunc(rows, CompareRows)
}
