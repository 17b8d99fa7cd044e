package imaging

import (
	"context"
	"fmt"
	"image"
	"math"

	"pagepress/internal/fitter"
)

// ShrinkRequest describes a target-size image transform.
type ShrinkRequest struct {
	TargetBytes    int64
	Format         Format
	MinQuality     int
	MaxQuality     int
	Tolerance      float64
	MaxIterations  int
	ConvertQuality int
}

// ShrinkOutcome reports what the transform produced.
type ShrinkOutcome struct {
	Data            []byte
	Quality         int
	Size            int64
	Diff            int64
	WithinTolerance bool
	Iterations      int
	Width           int
	Height          int
	Resized         bool
}

// Shrink re-encodes img so the output approaches req.TargetBytes.
//
// When the current payload already fits under the target, the image is
// re-encoded once at the convert quality: a format-conversion pass, no
// fitting. Otherwise the image is pre-scaled by sqrt(target/current), an
// estimate of the dimension change needed for the size change, and the
// remaining distance is closed by a quality search over the codec.
func Shrink(ctx context.Context, img image.Image, currentSize int64, req ShrinkRequest) (ShrinkOutcome, error) {
	if req.TargetBytes <= 0 {
		return ShrinkOutcome{}, fmt.Errorf("target bytes must be positive, got %d", req.TargetBytes)
	}

	bounds := img.Bounds()
	outcome := ShrinkOutcome{Width: bounds.Dx(), Height: bounds.Dy()}

	if currentSize > 0 && currentSize <= req.TargetBytes {
		quality := req.ConvertQuality
		if quality < 1 || quality > 100 {
			quality = 95
		}
		data, err := Encode(img, req.Format, quality)
		if err != nil {
			return ShrinkOutcome{}, err
		}
		outcome.Data = data
		outcome.Quality = quality
		outcome.Size = int64(len(data))
		outcome.Diff = req.TargetBytes - outcome.Size
		if outcome.Diff < 0 {
			outcome.Diff = -outcome.Diff
		}
		outcome.WithinTolerance = true
		outcome.Iterations = 1
		return outcome, nil
	}

	if currentSize > 0 {
		ratio := math.Sqrt(float64(req.TargetBytes) / float64(currentSize))
		width := int(float64(bounds.Dx()) * ratio)
		height := int(float64(bounds.Dy()) * ratio)
		img = Scale(img, width, height)
		scaled := img.Bounds()
		outcome.Width = scaled.Dx()
		outcome.Height = scaled.Dy()
		outcome.Resized = true
	}

	search := fitter.Request{
		TargetBytes:   req.TargetBytes,
		MinQuality:    req.MinQuality,
		MaxQuality:    req.MaxQuality,
		Tolerance:     req.Tolerance,
		MaxIterations: req.MaxIterations,
	}
	if !req.Format.HasQualityAxis() {
		// Single trial: the codec ignores quality, so searching is pointless.
		search.MinQuality = req.MaxQuality
		search.MaxIterations = 1
	}

	res, err := fitter.Fit(ctx, func(_ context.Context, quality int) ([]byte, error) {
		return Encode(img, req.Format, quality)
	}, search)
	if err != nil {
		return ShrinkOutcome{}, fmt.Errorf("fit image to %d bytes: %w", req.TargetBytes, err)
	}

	outcome.Data = res.Data
	outcome.Quality = res.Best.Quality
	outcome.Size = res.Best.Size
	outcome.Diff = res.Best.Diff
	outcome.WithinTolerance = res.WithinTolerance
	outcome.Iterations = res.Iterations
	return outcome, nil
}
