package pdfops

import (
	"bytes"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// pdfcpu entry points are package-level variables so tests can substitute
// deterministic fakes without a PDF corpus.
var (
	pageDims    = defaultPageDims
	optimizePDF = defaultOptimize
	resizePDF   = defaultResize
	assemblePDF = defaultAssemble
)

func relaxedConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func defaultPageDims(path string) ([]types.Dim, error) {
	return api.PageDimsFile(path)
}

func defaultOptimize(inPath, outPath string) error {
	return api.OptimizeFile(inPath, outPath, relaxedConfiguration())
}

func defaultResize(inPath, outPath, description string) error {
	res, err := pdfcpu.ParseResizeConfig(description, types.POINTS)
	if err != nil {
		return err
	}
	return api.ResizeFile(inPath, outPath, nil, res, relaxedConfiguration())
}

// defaultAssemble builds a PDF from JPEG page payloads, one full-bleed image
// per page.
func defaultAssemble(pages [][]byte) ([]byte, error) {
	imp, err := api.Import("pos:full", types.POINTS)
	if err != nil {
		return nil, err
	}
	readers := make([]io.Reader, len(pages))
	for i, page := range pages {
		readers[i] = bytes.NewReader(page)
	}
	var buf bytes.Buffer
	if err := api.ImportImages(nil, &buf, readers, imp, relaxedConfiguration()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SetPDFEnginesForTests overrides the pdfcpu-backed helpers during tests.
// Nil arguments leave the current value in place.
func SetPDFEnginesForTests(
	dims func(string) ([]types.Dim, error),
	optimize func(string, string) error,
	resize func(string, string, string) error,
	assemble func([][]byte) ([]byte, error),
) func() {
	prevDims, prevOptimize, prevResize, prevAssemble := pageDims, optimizePDF, resizePDF, assemblePDF
	if dims != nil {
		pageDims = dims
	}
	if optimize != nil {
		optimizePDF = optimize
	}
	if resize != nil {
		resizePDF = resize
	}
	if assemble != nil {
		assemblePDF = assemble
	}
	return func() {
		pageDims, optimizePDF, resizePDF, assemblePDF = prevDims, prevOptimize, prevResize, prevAssemble
	}
}
