package domain

import (
	"cmp"
	"slices"
)

// Province is a target province with its canonical PSGC.
type Province struct {
	Code string
	Name string
}

// provinceSet is an immutable lookup built once at package init.
type provinceSet struct {
	byCode map[string]Province
	sorted []Province
}

func newProvinceSet(provinces ...Province) provinceSet {
	s := provinceSet{
		byCode: make(map[string]Province, len(provinces)),
		sorted: slices.Clone(provinces),
	}
	for _, p := range provinces {
		s.byCode[p.Code] = p
	}
	slices.SortFunc(s.sorted, func(a, b Province) int {
		return cmp.Compare(a.Code, b.Code)
	})
	return s
}

// CALABARZON (Region IV-A) plus Oriental Mindoro (MIMAROPA).
var targetProvinces = newProvinceSet(
	Province{Code: "041000000", Name: "Batangas"},
	Province{Code: "042100000", Name: "Cavite"},
	Province{Code: "043400000", Name: "Laguna"},
	Province{Code: "045600000", Name: "Quezon"},
	Province{Code: "045800000", Name: "Rizal"},
	Province{Code: "175200000", Name: "Oriental Mindoro"},
)

// IsTargetProvince reports whether a normalized province code is kept.
func IsTargetProvince(code string) bool {
	_, ok := targetProvinces.byCode[code]
	return ok
}

// ProvinceName returns the name of a target province, or "" for any other code.
func ProvinceName(code string) string {
	return targetProvinces.byCode[code].Name
}

// TargetProvinces returns the kept provinces ordered by code. The slice is a
// copy; callers may modify it freely.
func TargetProvinces() []Province {
	return slices.Clone(targetProvinces.sorted)
}
