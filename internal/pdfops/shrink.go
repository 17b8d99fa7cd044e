package pdfops

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"pagepress/internal/config"
	"pagepress/internal/fileutil"
	"pagepress/internal/fitter"
	"pagepress/internal/imaging"
	"pagepress/internal/logging"
)

// Shrink methods, in order of preference.
const (
	MethodCopy      = "copy"
	MethodOptimize  = "optimize"
	MethodRasterFit = "raster-fit"
)

// ShrinkOutcome reports how a document reached (or approached) its target size.
type ShrinkOutcome struct {
	Method          string
	SizeBytes       int64
	Diff            int64
	Quality         int
	WithinTolerance bool
	Iterations      int
	Pages           int
}

// Shrinker drives a PDF toward a target byte size.
type Shrinker struct {
	cfg    *config.Config
	logger *slog.Logger
	raster PageRasterizer
}

// NewShrinker builds a shrinker. A nil rasterizer selects the exec-based one
// for the configured tool.
func NewShrinker(cfg *config.Config, logger *slog.Logger, raster PageRasterizer) *Shrinker {
	if raster == nil {
		raster = NewExecRasterizer(cfg, logger)
	}
	return &Shrinker{cfg: cfg, logger: logging.WithComponent(logger, "shrink"), raster: raster}
}

// Shrink writes a version of inPath at outPath whose size approaches
// targetBytes.
//
// Inputs already under the target are copied through untouched. A lossless
// optimize pass handles documents with redundant objects; everything else is
// rasterized and refit through the quality search. The rasterized path is
// lossy and flattens text to images, the same trade the target size demands.
func (s *Shrinker) Shrink(ctx context.Context, inPath, outPath string, targetBytes int64) (ShrinkOutcome, error) {
	if targetBytes <= 0 {
		return ShrinkOutcome{}, fmt.Errorf("target bytes must be positive, got %d", targetBytes)
	}

	currentSize, err := fileutil.FileSize(inPath)
	if err != nil {
		return ShrinkOutcome{}, fmt.Errorf("stat input: %w", err)
	}

	if currentSize <= targetBytes {
		if err := fileutil.CopyFile(inPath, outPath); err != nil {
			return ShrinkOutcome{}, fmt.Errorf("copy through: %w", err)
		}
		return ShrinkOutcome{
			Method:          MethodCopy,
			SizeBytes:       currentSize,
			Diff:            targetBytes - currentSize,
			WithinTolerance: true,
		}, nil
	}

	workDir, err := os.MkdirTemp(s.cfg.Paths.WorkDir, "shrink-*")
	if err != nil {
		return ShrinkOutcome{}, fmt.Errorf("create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	threshold := int64(s.cfg.Shrink.Tolerance * float64(targetBytes))

	optimized := filepath.Join(workDir, "optimized.pdf")
	if err := optimizePDF(inPath, optimized); err != nil {
		s.logger.Warn("lossless optimize failed, falling back to rasterization",
			logging.String(logging.FieldInput, inPath),
			logging.Error(err),
		)
	} else if optSize, err := fileutil.FileSize(optimized); err == nil {
		diff := optSize - targetBytes
		if diff < 0 {
			diff = -diff
		}
		if optSize <= targetBytes || diff <= threshold {
			if err := fileutil.CopyFile(optimized, outPath); err != nil {
				return ShrinkOutcome{}, fmt.Errorf("write optimized output: %w", err)
			}
			return ShrinkOutcome{
				Method:          MethodOptimize,
				SizeBytes:       optSize,
				Diff:            diff,
				WithinTolerance: true,
			}, nil
		}
		s.logger.Debug("lossless optimize insufficient",
			logging.Int64(logging.FieldSize, optSize),
			logging.Int64(logging.FieldTarget, targetBytes),
		)
	}

	pages, err := s.rasterPages(ctx, inPath, filepath.Join(workDir, "pages"))
	if err != nil {
		return ShrinkOutcome{}, err
	}

	res, err := fitter.Fit(ctx, func(_ context.Context, quality int) ([]byte, error) {
		return encodeDocument(pages, quality)
	}, fitter.Request{
		TargetBytes:   targetBytes,
		MinQuality:    s.cfg.Shrink.MinQuality,
		MaxQuality:    s.cfg.Shrink.MaxQuality,
		Tolerance:     s.cfg.Shrink.Tolerance,
		MaxIterations: s.cfg.Shrink.MaxIterations,
	})
	if err != nil {
		return ShrinkOutcome{}, fmt.Errorf("fit %s to %d bytes: %w", inPath, targetBytes, err)
	}

	if err := fileutil.WriteFileAtomic(outPath, res.Data, 0o644); err != nil {
		return ShrinkOutcome{}, fmt.Errorf("write fitted output: %w", err)
	}

	s.logger.Info("raster fit complete",
		logging.String(logging.FieldOutput, outPath),
		logging.Int(logging.FieldQuality, res.Best.Quality),
		logging.Int64(logging.FieldSize, res.Best.Size),
		logging.Int64(logging.FieldTarget, targetBytes),
		logging.Bool("within_tolerance", res.WithinTolerance),
	)

	return ShrinkOutcome{
		Method:          MethodRasterFit,
		SizeBytes:       res.Best.Size,
		Diff:            res.Best.Diff,
		Quality:         res.Best.Quality,
		WithinTolerance: res.WithinTolerance,
		Iterations:      res.Iterations,
		Pages:           len(pages),
	}, nil
}

func (s *Shrinker) rasterPages(ctx context.Context, inPath, rasterDir string) ([]image.Image, error) {
	paths, err := s.raster.Rasterize(ctx, inPath, rasterDir)
	if err != nil {
		return nil, fmt.Errorf("rasterize pages: %w", err)
	}
	pages := make([]image.Image, 0, len(paths))
	for _, path := range paths {
		img, _, err := imaging.DecodeFile(path)
		if err != nil {
			return nil, fmt.Errorf("decode raster page: %w", err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}

// encodeDocument re-encodes every page as JPEG at the given quality and
// assembles the result into a single PDF.
func encodeDocument(pages []image.Image, quality int) ([]byte, error) {
	encoded := make([][]byte, 0, len(pages))
	for _, page := range pages {
		data, err := imaging.Encode(page, imaging.FormatJPEG, quality)
		if err != nil {
			return nil, err
		}
		encoded = append(encoded, data)
	}
	return assemblePDF(encoded)
}
