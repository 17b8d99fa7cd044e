package fitter

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameters indicates a malformed request. It is returned
	// before any encode attempt.
	ErrInvalidParameters = errors.New("invalid fit parameters")

	// ErrNoViableEncoding indicates every trial across the search failed or
	// produced unusable output.
	ErrNoViableEncoding = errors.New("no viable encoding")
)

// EncodeFunc produces encoded bytes for one quality level. Implementations may
// perform I/O internally but must treat each call as independent; the fitter
// never retries a failed quality.
type EncodeFunc func(ctx context.Context, quality int) ([]byte, error)

// Request describes one fitting run.
type Request struct {
	TargetBytes   int64
	MinQuality    int
	MaxQuality    int
	Tolerance     float64
	MaxIterations int
}

func (r Request) validate() error {
	switch {
	case r.MinQuality > r.MaxQuality:
		return fmt.Errorf("%w: min quality %d exceeds max quality %d", ErrInvalidParameters, r.MinQuality, r.MaxQuality)
	case r.TargetBytes <= 0:
		return fmt.Errorf("%w: target bytes must be positive, got %d", ErrInvalidParameters, r.TargetBytes)
	case r.Tolerance < 0 || r.Tolerance >= 1:
		return fmt.Errorf("%w: tolerance must be in [0, 1), got %g", ErrInvalidParameters, r.Tolerance)
	case r.MaxIterations < 1:
		return fmt.Errorf("%w: max iterations must be at least 1, got %d", ErrInvalidParameters, r.MaxIterations)
	}
	return nil
}

// Trial records one (quality, size) sample taken during the search.
type Trial struct {
	Quality int
	Size    int64
	Diff    int64
}

// Result reports the best trial found and the bytes that produced it.
type Result struct {
	Best            Trial
	Data            []byte
	Iterations      int
	WithinTolerance bool
}

// Fit bisects the quality range looking for output within
// Tolerance*TargetBytes of the target. Encode failures and empty outputs are
// treated as non-viable trials: the range narrows toward lower quality and the
// search continues. The returned result is the minimum-diff trial across all
// attempts; an unreachable target therefore yields the closest available
// encoding rather than an error. Cancellation is honored between iterations
// only.
func Fit(ctx context.Context, encode EncodeFunc, req Request) (Result, error) {
	if encode == nil {
		return Result{}, fmt.Errorf("%w: encode function is nil", ErrInvalidParameters)
	}
	if err := req.validate(); err != nil {
		return Result{}, err
	}

	var (
		res       Result
		haveBest  bool
		threshold = int64(req.Tolerance * float64(req.TargetBytes))
	)

	lo, hi := req.MinQuality, req.MaxQuality
	for lo <= hi && res.Iterations < req.MaxIterations {
		if err := ctx.Err(); err != nil {
			break
		}

		q := lo + (hi-lo)/2
		res.Iterations++

		data, err := encode(ctx, q)
		if err != nil || len(data) == 0 {
			// Non-viable quality: assume the codec choked on aggressive
			// settings and retreat toward smaller expected output.
			hi = q - 1
			continue
		}

		size := int64(len(data))
		diff := size - req.TargetBytes
		if diff < 0 {
			diff = -diff
		}

		if !haveBest || diff < res.Best.Diff {
			haveBest = true
			res.Best = Trial{Quality: q, Size: size, Diff: diff}
			res.Data = data
		}

		if diff <= threshold {
			res.WithinTolerance = true
			break
		}

		// Heuristic bisection: output size is assumed to grow with quality.
		// Real codecs violate this near quantization boundaries; the
		// best-seen bookkeeping above is what keeps overshoot harmless.
		if size > req.TargetBytes {
			hi = q - 1
		} else {
			lo = q + 1
		}
	}

	if !haveBest {
		return Result{Iterations: res.Iterations}, fmt.Errorf("%w: %d trials in quality range [%d, %d]",
			ErrNoViableEncoding, res.Iterations, req.MinQuality, req.MaxQuality)
	}
	return res, nil
}
