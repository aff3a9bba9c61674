package domain

import (
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// CategoryAverages carries the arithmetic mean of each well category.
// A category with no usable measurements reports 0, never NaN.
type CategoryAverages struct {
	Blank    float64
	Negative float64
	Test     float64
}

// Averages computes the per-category means over colored cells whose value
// parses as a real number. Empty and non-numeric values are skipped.
func Averages(s Store) CategoryAverages {
	var blank, negative, test []float64
	for _, cell := range s {
		category, ok := cell.Category()
		if !ok {
			continue
		}
		v, ok := parseValue(cell.Value)
		if !ok {
			continue
		}
		switch category {
		case CategoryBlank:
			blank = append(blank, v)
		case CategoryNegative:
			negative = append(negative, v)
		case CategoryTest:
			test = append(test, v)
		}
	}
	return CategoryAverages{
		Blank:    meanOrZero(blank),
		Negative: meanOrZero(negative),
		Test:     meanOrZero(test),
	}
}

// Normalize converts a raw measurement into a viability percentage relative
// to the blank and negative-control averages, fixed to two decimal places.
// ok is false when the value does not parse, the averages coincide, or the
// result is not finite.
func Normalize(value string, blankAvg, negativeAvg float64) (string, bool) {
	v, ok := parseValue(value)
	if !ok {
		return "", false
	}
	denom := negativeAvg - blankAvg
	if denom == 0 {
		return "", false
	}
	normalized := (v - blankAvg) / denom * 100
	if math.IsNaN(normalized) || math.IsInf(normalized, 0) {
		return "", false
	}
	return strconv.FormatFloat(normalized, 'f', 2, 64), true
}

// NormalizedValue returns the displayable viability percentage for one well.
// Only colored negative and test cells carry a normalized value; blank and
// untagged cells report ok=false.
func NormalizedValue(s Store, c Coord, avg CategoryAverages) (string, bool) {
	cell := s.Get(c)
	category, ok := cell.Category()
	if !ok || category == CategoryBlank {
		return "", false
	}
	return Normalize(cell.Value, avg.Blank, avg.Negative)
}

// parseValue parses a raw cell value as a real number.
func parseValue(value string) (float64, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// meanOrZero wraps stat.Mean with the empty-set default.
func meanOrZero(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
