// Package domain models Philippine Standard Geographic Code (PSGC) records for
// barangays and sub-municipalities.
//
// # Data Source
//
// Records originate from the PH_Adm4_BgySubMuns shapefile, one polygon per
// barangay, projected in UTM zone 51N (EPSG:32651). The attribute table
// carries the codes of every administrative level above the barangay:
//
//	adm1_psgc  region
//	adm2_psgc  province
//	adm3_psgc  city / municipality
//	adm4_psgc  barangay
//	adm4_en    barangay name (latin-1)
//
// # PSGC Encoding
//
// The canonical PSGC is a 9-digit string: RR PP MM BBB (region, province,
// city/municipality, barangay). The shapefile stores the newer 10-digit form,
// which widens the province segment by one digit, as a number, so leading
// zeros are lost:
//
//	raw        401000000  (stored)
//	padded    0401000000  (10 digits)
//	canonical  041000000  (third character dropped)
//
// [NormalizePSGC] applies this rule to all four levels. It is specific to this
// dataset: if the source switches encodings the rule has to change with it.
//
// # Coverage
//
// Only CALABARZON (Batangas, Cavite, Laguna, Quezon, Rizal) and Oriental
// Mindoro are kept. See [IsTargetProvince].
//
// # Coordinates
//
// Each barangay is reduced to the planar centroid of its polygon, projected to
// WGS84 and written with exactly six fractional digits (about 0.1 m).
package domain
