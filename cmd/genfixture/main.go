// Command genfixture writes a synthetic barangay shapefile in the layout the
// centroids command reads: UTM zone 51N polygons with the adm1..adm4 PSGC
// attributes. It covers every target province plus two provinces the
// pipeline filters out, so a fresh checkout can run end to end without the
// real boundary data.
//
// Usage:
//
//	go run ./cmd/genfixture \
//	  -out data/PH_Adm4/PH_Adm4_BgySubMuns.shp \
//	  -per-city 4 -cities 3 -seed 42
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/couchcryptid/barangay-centroids/internal/adapter/shapefile"
	"github.com/twpayne/go-geom"
)

// provinceDef anchors a province's synthetic barangays on the UTM grid.
type provinceDef struct {
	region   int64
	province int64
	name     string
	easting  float64
	northing float64
}

var provinces = []provinceDef{
	{region: 400000000, province: 401000000, name: "Batangas", easting: 290000, northing: 1530000},
	{region: 400000000, province: 402100000, name: "Cavite", easting: 280000, northing: 1580000},
	{region: 400000000, province: 403400000, name: "Laguna", easting: 310000, northing: 1570000},
	{region: 400000000, province: 405600000, name: "Quezon", easting: 380000, northing: 1560000},
	{region: 400000000, province: 405800000, name: "Rizal", easting: 310000, northing: 1610000},
	{region: 1700000000, province: 1705200000, name: "Oriental Mindoro", easting: 370000, northing: 1450000},
	// Filtered out by the pipeline.
	{region: 1300000000, province: 1307400000, name: "NCR", easting: 285000, northing: 1620000},
	{region: 1700000000, province: 1704000000, name: "Marinduque", easting: 400000, northing: 1480000},
}

var names = []string{"Poblacion", "San Isidro", "Santo Niño", "Bagong Silang", "San Roque", "Malabañan", "Dayap", "Bukal"}

const cellSize = 1500.0 // metres between barangay origins

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output .shp path (.shx and .dbf are written alongside)")
	cities := flag.Int("cities", 3, "cities/municipalities per province")
	perCity := flag.Int("per-city", 4, "barangays per city/municipality")
	seed := flag.Uint64("seed", 42, "random seed for polygon jitter")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}
	if *cities < 1 || *cities > 99 || *perCity < 1 || *perCity > 999 {
		return fmt.Errorf("-cities must be 1-99 and -per-city 1-999")
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	features := generate(rng, *cities, *perCity)

	if err := shapefile.WriteFixture(*out, features); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote %d features across %d provinces: %s", len(features), len(provinces), *out)
	return nil
}

func generate(rng *rand.Rand, cities, perCity int) []shapefile.Feature {
	features := make([]shapefile.Feature, 0, len(provinces)*cities*perCity)
	for _, p := range provinces {
		for c := 1; c <= cities; c++ {
			city := p.province + int64(c)*1000
			for b := 1; b <= perCity; b++ {
				x := p.easting + float64(b-1)*cellSize
				y := p.northing + float64(c-1)*cellSize
				features = append(features, shapefile.Feature{
					RegionCode:   p.region,
					ProvinceCode: p.province,
					CityMuniCode: city,
					BarangayCode: city + int64(b),
					Name:         names[(c*perCity+b)%len(names)],
					Rings:        rings(rng, x, y, b%3 == 0),
				})
			}
		}
	}
	return features
}

// rings returns a jittered clockwise quadrilateral, optionally with a
// counter-clockwise hole in its middle.
func rings(rng *rand.Rand, x, y float64, hole bool) [][]geom.Coord {
	size := 800 + rng.Float64()*400
	j := func() float64 { return rng.Float64()*100 - 50 }

	shell := []geom.Coord{
		{x + j(), y + j()},
		{x + j(), y + size + j()},
		{x + size + j(), y + size + j()},
		{x + size + j(), y + j()},
	}
	shell = append(shell, geom.Coord{shell[0][0], shell[0][1]})
	if !hole {
		return [][]geom.Coord{shell}
	}

	cx, cy, h := x+size/2, y+size/2, size/8
	inner := []geom.Coord{
		{cx - h, cy - h}, {cx + h, cy - h}, {cx + h, cy + h}, {cx - h, cy + h}, {cx - h, cy - h},
	}
	return [][]geom.Coord{shell, inner}
}
