package config

import (
	"errors"
	"fmt"

	"pagepress/internal/papersize"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateShrink(); err != nil {
		return err
	}
	if err := c.validateRaster(); err != nil {
		return err
	}
	if err := c.validateImage(); err != nil {
		return err
	}
	if err := c.validateScale(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateShrink() error {
	if c.Shrink.MinQuality < 1 {
		return errors.New("shrink.min_quality must be at least 1")
	}
	if c.Shrink.MaxQuality > 100 {
		return errors.New("shrink.max_quality must not exceed 100")
	}
	if c.Shrink.MinQuality > c.Shrink.MaxQuality {
		return errors.New("shrink.min_quality must not exceed shrink.max_quality")
	}
	if c.Shrink.Tolerance < 0 || c.Shrink.Tolerance >= 1 {
		return errors.New("shrink.tolerance must be in [0, 1)")
	}
	if c.Shrink.MaxIterations < 1 {
		return errors.New("shrink.max_iterations must be at least 1")
	}
	return nil
}

func (c *Config) validateRaster() error {
	switch c.Raster.Tool {
	case "gs", "mutool":
	default:
		return fmt.Errorf("raster.tool must be gs or mutool, got %q", c.Raster.Tool)
	}
	if c.Raster.DPI < 36 || c.Raster.DPI > 600 {
		return errors.New("raster.dpi must be between 36 and 600")
	}
	if c.Raster.Timeout <= 0 {
		return errors.New("raster.timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateImage() error {
	switch c.Image.DefaultFormat {
	case "jpeg", "png":
	default:
		return fmt.Errorf("image.default_format must be jpeg or png, got %q", c.Image.DefaultFormat)
	}
	if c.Image.ConvertQuality < 1 || c.Image.ConvertQuality > 100 {
		return errors.New("image.convert_quality must be between 1 and 100")
	}
	return nil
}

func (c *Config) validateScale() error {
	if _, err := papersize.Lookup(c.Scale.DefaultPaper); err != nil {
		return fmt.Errorf("scale.default_paper: %w", err)
	}
	return nil
}

func (c *Config) validateBatch() error {
	if c.Batch.PollInterval <= 0 {
		return errors.New("batch.poll_interval must be positive (seconds)")
	}
	return nil
}
