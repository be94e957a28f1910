package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxRawPSGC is the largest value that fits the 10-digit source encoding.
const maxRawPSGC = 9_999_999_999

// NormalizePSGC converts a raw shapefile code into the canonical 9-character
// PSGC: zero-pad to 10 digits, then drop the third character.
func NormalizePSGC(raw int64) (string, error) {
	if raw < 0 || raw > maxRawPSGC {
		return "", fmt.Errorf("psgc %d out of range [0, %d]", raw, int64(maxRawPSGC))
	}
	padded := fmt.Sprintf("%010d", raw)
	return padded[:2] + padded[3:], nil
}

// ParseRawPSGC parses a DBF numeric attribute into a raw code. Integral
// floating values such as "401000000.0" are accepted.
func ParseRawPSGC(s string) (int64, error) {
	s = strings.Trim(s, " \x00")
	if s == "" {
		return 0, fmt.Errorf("parse psgc: empty value")
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse psgc %q: %w", s, err)
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("parse psgc %q: not an integer", s)
	}
	if f < 0 || f > maxRawPSGC {
		return 0, fmt.Errorf("parse psgc %q: out of range [0, %d]", s, int64(maxRawPSGC))
	}
	return int64(f), nil
}
