package config

const (
	defaultWorkDir       = "~/.local/share/pagepress/work"
	defaultLogDir        = "~/.local/share/pagepress/logs"
	defaultMinQuality    = 1
	defaultMaxQuality    = 100
	defaultTolerance     = 0.05
	defaultMaxIterations = 10
	defaultRasterTool    = "gs"
	defaultRasterDPI     = 150
	defaultRasterTimeout = 300
	defaultImageFormat   = "jpeg"
	defaultImageQuality  = 95
	defaultPaper         = "A4"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultPollInterval  = 2
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Shrink: Shrink{
			MinQuality:    defaultMinQuality,
			MaxQuality:    defaultMaxQuality,
			Tolerance:     defaultTolerance,
			MaxIterations: defaultMaxIterations,
		},
		Raster: Raster{
			Tool:    defaultRasterTool,
			DPI:     defaultRasterDPI,
			Timeout: defaultRasterTimeout,
		},
		Image: Image{
			DefaultFormat:  defaultImageFormat,
			ConvertQuality: defaultImageQuality,
		},
		Scale: Scale{
			DefaultPaper: defaultPaper,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Batch: Batch{
			PollInterval: defaultPollInterval,
		},
	}
}
