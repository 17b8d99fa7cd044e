package pdfops

import (
	"fmt"

	"pagepress/internal/fileutil"
	"pagepress/internal/papersize"
)

// Analysis aggregates size and dimension information for a PDF.
type Analysis struct {
	Path         string   `json:"path"`
	SizeBytes    int64    `json:"size_bytes"`
	Pages        int      `json:"pages"`
	WidthPoints  float64  `json:"width_points"`
	HeightPoints float64  `json:"height_points"`
	WidthMM      float64  `json:"width_mm"`
	HeightMM     float64  `json:"height_mm"`
	PaperSizes   []string `json:"paper_sizes"`
}

// Inspect reports file size, page count, first-page dimensions, and matching
// standard paper sizes for the PDF at path.
func Inspect(path string) (Analysis, error) {
	size, err := fileutil.FileSize(path)
	if err != nil {
		return Analysis{}, fmt.Errorf("stat pdf: %w", err)
	}

	dims, err := pageDims(path)
	if err != nil {
		return Analysis{}, fmt.Errorf("read page dimensions: %w", err)
	}
	if len(dims) == 0 {
		return Analysis{}, fmt.Errorf("pdf %s has no pages", path)
	}

	first := dims[0]
	analysis := Analysis{
		Path:         path,
		SizeBytes:    size,
		Pages:        len(dims),
		WidthPoints:  first.Width,
		HeightPoints: first.Height,
		WidthMM:      papersize.PointsToMillimeters(first.Width),
		HeightMM:     papersize.PointsToMillimeters(first.Height),
	}
	analysis.PaperSizes = papersize.Classify(analysis.WidthMM, analysis.HeightMM)
	return analysis, nil
}
