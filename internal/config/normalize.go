package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRaster()
	c.normalizeImage()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.WorkDir, err = expandPath(strings.TrimSpace(c.Paths.WorkDir)); err != nil {
		return err
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return err
	}
	out := strings.TrimSpace(c.Paths.OutputDir)
	if out == "" {
		c.Paths.OutputDir = ""
		return nil
	}
	if c.Paths.OutputDir, err = expandPath(out); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeRaster() {
	c.Raster.Tool = strings.ToLower(strings.TrimSpace(c.Raster.Tool))
	if c.Raster.Tool == "" {
		c.Raster.Tool = defaultRasterTool
	}
}

func (c *Config) normalizeImage() {
	format := strings.ToLower(strings.TrimSpace(c.Image.DefaultFormat))
	if format == "jpg" {
		format = "jpeg"
	}
	if format == "" {
		format = defaultImageFormat
	}
	c.Image.DefaultFormat = format
}

func (c *Config) normalizeLogging() {
	if level, ok := os.LookupEnv("PAGEPRESS_LOG_LEVEL"); ok && strings.TrimSpace(level) != "" {
		c.Logging.Level = strings.TrimSpace(level)
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
