// Package projection reduces projected geometries to WGS-84 points.
//
// The inverse transverse Mercator uses the Krüger series to sixth order in the
// third flattening n (Karney, "Transverse Mercator with an accuracy of a few
// nanometers", J. Geodesy 85, 2011). Within a UTM zone the error is well under
// a millimetre, far below the six-decimal output precision.
package projection

import (
	"fmt"
	"math"
)

// WGS-84 ellipsoid and UTM grid constants.
const (
	semiMajorAxis = 6378137.0
	flattening    = 1 / 298.257223563
	scaleFactor   = 0.9996
	falseEasting  = 500000.0
	falseNorthing = 10000000.0 // southern hemisphere only
)

// UTM is a single zone of the Universal Transverse Mercator grid on WGS-84.
type UTM struct {
	zone  int
	north bool

	centralMeridian float64 // radians
	a               float64 // rectifying radius times scale factor
	beta            [6]float64
	ecc             float64
}

// NewUTM returns the grid for the given zone (1-60) and hemisphere.
func NewUTM(zone int, north bool) (*UTM, error) {
	if zone < 1 || zone > 60 {
		return nil, fmt.Errorf("utm zone %d out of range [1, 60]", zone)
	}

	n := flattening / (2 - flattening)
	n2 := n * n
	n3 := n2 * n
	n4 := n3 * n
	n5 := n4 * n
	n6 := n5 * n

	rectifying := semiMajorAxis / (1 + n) * (1 + n2/4 + n4/64 + n6/256)

	return &UTM{
		zone:            zone,
		north:           north,
		centralMeridian: float64(zone*6-183) * math.Pi / 180,
		a:               scaleFactor * rectifying,
		beta: [6]float64{
			n/2 - 2*n2/3 + 37*n3/96 - n4/360 - 81*n5/512 + 96199*n6/604800,
			n2/48 + n3/15 - 437*n4/1440 + 46*n5/105 - 1118711*n6/3870720,
			17*n3/480 - 37*n4/840 - 209*n5/4480 + 5569*n6/90720,
			4397*n4/161280 - 11*n5/504 - 830251*n6/7257600,
			4583*n5/161280 - 108847*n6/3991680,
			20648693 * n6 / 638668800,
		},
		ecc: math.Sqrt(flattening * (2 - flattening)),
	}, nil
}

// MustUTM is like NewUTM but panics on an invalid zone. For package-level
// grids with constant arguments.
func MustUTM(zone int, north bool) *UTM {
	u, err := NewUTM(zone, north)
	if err != nil {
		panic(err)
	}
	return u
}

// Zone51N is the grid the barangay shapefile is projected in (EPSG:32651).
var Zone51N = MustUTM(51, true)

// String returns the EPSG-style label, e.g. "UTM 51N".
func (u *UTM) String() string {
	hemi := "N"
	if !u.north {
		hemi = "S"
	}
	return fmt.Sprintf("UTM %d%s", u.zone, hemi)
}

// Inverse converts grid easting/northing in metres to geodetic latitude and
// longitude in degrees.
func (u *UTM) Inverse(easting, northing float64) (lat, lon float64) {
	y := northing
	if !u.north {
		y -= falseNorthing
	}

	xi := y / u.a
	eta := (easting - falseEasting) / u.a

	xiP, etaP := xi, eta
	for j, b := range u.beta {
		k := float64(2 * (j + 1))
		xiP -= b * math.Sin(k*xi) * math.Cosh(k*eta)
		etaP -= b * math.Cos(k*xi) * math.Sinh(k*eta)
	}

	sinhEta := math.Sinh(etaP)
	cosXi := math.Cos(xiP)
	tauP := math.Sin(xiP) / math.Hypot(sinhEta, cosXi)

	lat = math.Atan(u.tau(tauP)) * 180 / math.Pi
	lon = (u.centralMeridian + math.Atan2(sinhEta, cosXi)) * 180 / math.Pi
	return lat, lon
}

// tau solves tan(conformal latitude) = tauP for tan(geodetic latitude) by
// Newton iteration. Converges in two or three steps for any latitude.
func (u *UTM) tau(tauP float64) float64 {
	e2 := u.ecc * u.ecc
	t := tauP
	for range 10 {
		sigma := math.Sinh(u.ecc * math.Atanh(u.ecc*t/math.Sqrt(1+t*t)))
		ti := t*math.Sqrt(1+sigma*sigma) - sigma*math.Sqrt(1+t*t)
		dt := (tauP - ti) / math.Sqrt(1+ti*ti) * (1 + (1-e2)*t*t) / ((1 - e2) * math.Sqrt(1+t*t))
		t += dt
		if math.Abs(dt) < 1e-12 {
			break
		}
	}
	return t
}
