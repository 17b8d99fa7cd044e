package pdfops

import (
	"fmt"

	"pagepress/internal/papersize"
)

// ScaleToPaper rewrites the PDF so every page matches the named standard
// paper size, preserving aspect ratio.
func ScaleToPaper(inPath, outPath, paper string) (papersize.Size, error) {
	size, err := papersize.Lookup(paper)
	if err != nil {
		return papersize.Size{}, err
	}
	if err := resizePDF(inPath, outPath, "form:"+size.Name); err != nil {
		return papersize.Size{}, fmt.Errorf("scale %s to %s: %w", inPath, size.Name, err)
	}
	return size, nil
}
