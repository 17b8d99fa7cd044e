package main

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"pagepress/internal/config"
)

// parseTargetSize parses human-friendly size expressions such as "500KB",
// "2.5 MiB", or plain byte counts.
func parseTargetSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, errors.New("target size is required (e.g. --size 500KB)")
	}
	parsed, err := humanize.ParseBytes(trimmed)
	if err != nil {
		return 0, fmt.Errorf("parse target size %q: %w", value, err)
	}
	if parsed == 0 {
		return 0, fmt.Errorf("target size %q must be positive", value)
	}
	if parsed > math.MaxInt64 {
		return 0, fmt.Errorf("target size %q is out of range", value)
	}
	return int64(parsed), nil
}

func formatBytes(size int64) string {
	if size < 0 {
		return "-" + humanize.Bytes(uint64(-size))
	}
	return humanize.Bytes(uint64(size))
}

// resolveInputPath expands and validates a user-supplied input path.
func resolveInputPath(arg string) (string, error) {
	path, err := config.ExpandPath(strings.TrimSpace(arg))
	if err != nil {
		return "", err
	}
	return path, nil
}

// defaultOutputPath places the output in the configured output directory
// under the input's base name, optionally swapping the extension. Without an
// output directory the result lands next to the input with a "resized-"
// prefix so the source is never overwritten.
func defaultOutputPath(cfg *config.Config, inputPath, newExt string) string {
	base := filepath.Base(inputPath)
	if newExt != "" {
		base = strings.TrimSuffix(base, filepath.Ext(base)) + "." + newExt
	}
	if cfg.Paths.OutputDir != "" {
		return filepath.Join(cfg.Paths.OutputDir, base)
	}
	return filepath.Join(filepath.Dir(inputPath), "resized-"+base)
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
