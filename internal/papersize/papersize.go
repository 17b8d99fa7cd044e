// Package papersize classifies page dimensions against standard paper sizes
// and converts between PDF points and millimeters.
package papersize

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Size holds a standard paper size in millimeters, portrait orientation.
type Size struct {
	Name     string
	WidthMM  float64
	HeightMM float64
}

// matchSlackMM is the per-edge tolerance when classifying a page. Scanned and
// generated PDFs rarely land on exact ISO dimensions.
const matchSlackMM = 2.0

var sizes = map[string]Size{
	"A0":      {"A0", 841, 1189},
	"A1":      {"A1", 594, 841},
	"A2":      {"A2", 420, 594},
	"A3":      {"A3", 297, 420},
	"A4":      {"A4", 210, 297},
	"A5":      {"A5", 148, 210},
	"A6":      {"A6", 105, 148},
	"B0":      {"B0", 1000, 1414},
	"B1":      {"B1", 707, 1000},
	"B2":      {"B2", 500, 707},
	"B3":      {"B3", 353, 500},
	"B4":      {"B4", 250, 353},
	"B5":      {"B5", 176, 250},
	"Letter":  {"Letter", 216, 279},
	"Legal":   {"Legal", 216, 356},
	"Tabloid": {"Tabloid", 279, 432},
}

// PointsToMillimeters converts PDF points (1/72 inch) to millimeters.
func PointsToMillimeters(points float64) float64 {
	return points * 25.4 / 72
}

// MillimetersToPoints converts millimeters to PDF points.
func MillimetersToPoints(mm float64) float64 {
	return mm * 72 / 25.4
}

// Lookup resolves a paper size by name, case-insensitively.
func Lookup(name string) (Size, error) {
	for key, size := range sizes {
		if strings.EqualFold(key, strings.TrimSpace(name)) {
			return size, nil
		}
	}
	return Size{}, fmt.Errorf("unknown paper size %q", name)
}

// Names returns the supported paper size names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Classify returns the names of standard sizes matching the given page
// dimensions in either orientation, within a small slack. Dimensions are
// rounded to whole millimeters first, matching how scan tools report them.
func Classify(widthMM, heightMM float64) []string {
	w := math.Round(widthMM)
	h := math.Round(heightMM)

	var matches []string
	for _, name := range Names() {
		size := sizes[name]
		portrait := near(w, size.WidthMM) && near(h, size.HeightMM)
		landscape := near(w, size.HeightMM) && near(h, size.WidthMM)
		if portrait || landscape {
			matches = append(matches, name)
		}
	}
	return matches
}

func near(value, reference float64) bool {
	return math.Abs(value-reference) < matchSlackMM
}
