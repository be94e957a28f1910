// Command validate performs integrity checks on a barangay centroid CSV:
// header layout, row schema, province allow-list, sort order, code
// uniqueness and geographic bounds. Given the source shapefile it also checks
// that every in-scope feature produced exactly one row.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -csv data/barangay-centroids.csv \
//	  -shapefile data/PH_Adm4/PH_Adm4_BgySubMuns.shp
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/couchcryptid/barangay-centroids/internal/adapter/shapefile"
	"github.com/couchcryptid/barangay-centroids/internal/config"
	"github.com/couchcryptid/barangay-centroids/internal/domain"
	"github.com/go-playground/validator/v10"
)

// Philippine bounding box, generous enough for every barangay centroid.
const (
	minLat = 4.0
	maxLat = 22.0
	minLon = 116.0
	maxLon = 127.0
)

var coordinatePattern = regexp.MustCompile(`^-?\d+\.\d{6}$`)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	csvPath := flag.String("csv", config.DefaultOutputPath, "path to the centroid CSV")
	shpPath := flag.String("shapefile", "", "optional source shapefile for the coverage check")
	flag.Parse()

	if code := run(*csvPath, *shpPath, os.Stdout, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

func run(csvPath, shpPath string, stdout, stderr io.Writer) int {
	fmt.Fprintln(stdout, "=== Barangay Centroid Validation ===")
	fmt.Fprintln(stdout)

	header, rows, err := loadCSV(csvPath)
	if err != nil {
		fmt.Fprintf(stderr, "FATAL: load CSV: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateHeader(header),
		validateSchema(rows),
		validateProvinces(rows),
		validateOrdering(rows),
		validateBounds(rows),
	}

	if shpPath != "" {
		expected, err := countInScope(shpPath)
		if err != nil {
			fmt.Fprintf(stderr, "FATAL: read shapefile: %v\n", err)
			return 1
		}
		phases = append(phases, validateCoverage(rows, expected))
	}

	fmt.Fprintln(stdout)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(stdout, "  %-42s %s\n", p.name, status)
	}

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "Rows: %d\n", len(rows))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(stdout, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(stdout, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(stdout, "\nAll validations passed.")
		return 0
	}
	fmt.Fprintln(stdout, "\nValidation FAILED.")
	return 1
}

// ── Data loading ──

// csvRow is a parsed data row with its 1-based line number.
type csvRow struct {
	lineNum int
	row     domain.Row
	width   int
}

func loadCSV(path string) ([]string, []csvRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("no header row in %s", path)
	}

	rows := make([]csvRow, 0, len(all)-1)
	for i, fields := range all[1:] {
		row, _ := domain.RowFromFields(fields)
		rows = append(rows, csvRow{lineNum: i + 2, row: row, width: len(fields)})
	}
	return all[0], rows, nil
}

func countInScope(path string) (int, error) {
	r, err := shapefile.Open(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		return 0, err
	}
	defer r.Close()

	n := 0
	for rec, err := range r.Records() {
		if err != nil {
			return 0, err
		}
		province, err := domain.NormalizePSGC(rec.ProvinceCode)
		if err != nil {
			return 0, fmt.Errorf("record %d: %w", rec.Index, err)
		}
		if domain.IsTargetProvince(province) {
			n++
		}
	}
	return n, nil
}

// ── Phase 1: Header ──

func validateHeader(header []string) *phase {
	p := &phase{name: "Phase 1: Header"}
	if !slices.Equal(header, domain.Header) {
		p.errorf("header = %q, want %q", strings.Join(header, ","), strings.Join(domain.Header, ","))
	}
	return p
}

// ── Phase 2: Row schema ──

func validateSchema(rows []csvRow) *phase {
	p := &phase{name: "Phase 2: Row Schema"}
	v := validator.New()

	for _, r := range rows {
		if r.width != len(domain.Header) {
			p.errorf("line %d: %d fields, want %d", r.lineNum, r.width, len(domain.Header))
			continue
		}
		if err := v.Struct(r.row); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				for _, fe := range verrs {
					p.errorf("line %d: %s %q fails %s", r.lineNum, fe.Field(), fe.Value(), fe.Tag())
				}
				continue
			}
			p.errorf("line %d: %v", r.lineNum, err)
		}
		for _, c := range []string{r.row.Latitude, r.row.Longitude} {
			if !coordinatePattern.MatchString(c) {
				p.errorf("line %d: coordinate %q is not fixed-point with six decimals", r.lineNum, c)
			}
		}
	}
	return p
}

// ── Phase 3: Province allow-list ──

func validateProvinces(rows []csvRow) *phase {
	p := &phase{name: "Phase 3: Province Allow-list"}
	for _, r := range rows {
		if !domain.IsTargetProvince(r.row.ProvincePSGC) {
			p.errorf("line %d: province %q is not a target province", r.lineNum, r.row.ProvincePSGC)
		}
		if !strings.HasPrefix(r.row.CityMuniPSGC, r.row.ProvincePSGC[:min(4, len(r.row.ProvincePSGC))]) {
			p.errorf("line %d: city/municipality %q outside province %q", r.lineNum, r.row.CityMuniPSGC, r.row.ProvincePSGC)
		}
	}
	return p
}

// ── Phase 4: Ordering and uniqueness ──

func validateOrdering(rows []csvRow) *phase {
	p := &phase{name: "Phase 4: Ordering & Uniqueness"}
	seen := make(map[string]int, len(rows))
	for i, r := range rows {
		if i > 0 && domain.CompareRows(rows[i-1].row, r.row) > 0 {
			p.errorf("line %d: out of order after line %d", r.lineNum, rows[i-1].lineNum)
		}
		if prev, ok := seen[r.row.BarangayPSGC]; ok {
			p.errorf("line %d: barangay %q already on line %d", r.lineNum, r.row.BarangayPSGC, prev)
			continue
		}
		seen[r.row.BarangayPSGC] = r.lineNum
	}
	return p
}

// ── Phase 5: Geographic bounds ──

func validateBounds(rows []csvRow) *phase {
	p := &phase{name: "Phase 5: Geographic Bounds"}
	for _, r := range rows {
		lat, errLat := strconv.ParseFloat(r.row.Latitude, 64)
		lon, errLon := strconv.ParseFloat(r.row.Longitude, 64)
		if errLat != nil || errLon != nil {
			continue // reported by the schema phase
		}
		if lat < minLat || lat > maxLat || lon < minLon || lon > maxLon {
			p.errorf("line %d: (%s, %s) outside the Philippines", r.lineNum, r.row.Latitude, r.row.Longitude)
		}
	}
	return p
}

// ── Phase 6: Coverage ──

func validateCoverage(rows []csvRow, expected int) *phase {
	p := &phase{name: "Phase 6: Coverage (CSV vs shapefile)"}
	if len(rows) != expected {
		p.errorf("row count = %d, shapefile has %d in-scope features", len(rows), expected)
	}
	return p
}
