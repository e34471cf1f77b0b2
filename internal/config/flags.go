package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagInput      = flag.String("in", "", "Heightmap image to convert")
	flagOutput     = flag.String("out", "", "Destination STL file")
	flagPreview    = flag.String("preview", "", "Write a rendered PNG preview to this path")
	flagScale      = flag.Float64("scale", 0, "Vertical exaggeration factor")
	flagResolution = flag.Int("resolution", 0, "Maximum samples along the longer grid axis")
	flagNoSmooth   = flag.Bool("no-smooth", false, "Disable Gaussian smoothing")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagInput != "" {
		cfg.Input.Path = *flagInput
	}
	if *flagOutput != "" {
		cfg.Output.Path = *flagOutput
	}
	if *flagPreview != "" {
		cfg.Output.PreviewPath = *flagPreview
	}
	if *flagScale > 0 {
		cfg.Model.VerticalScale = *flagScale
	}
	if *flagResolution > 0 {
		cfg.Model.TargetResolution = *flagResolution
	}
	if *flagNoSmooth {
		cfg.Model.Smoothing = false
	}
}
