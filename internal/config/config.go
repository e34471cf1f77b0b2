// Package config handles pipeline configuration loading and management.
package config

// Config holds all pipeline settings.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Model   ModelConfig   `yaml:"model"`
	Print   PrintConfig   `yaml:"print"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig holds heightmap ingestion settings.
type InputConfig struct {
	Path      string  `yaml:"path"`       // Heightmap image (grayscale PNG or JPEG)
	CellSize  float64 `yaml:"cell_size"`  // Ground distance between samples, mm
	MinHeight float64 `yaml:"min_height"` // Elevation mapped to black pixels, m
	MaxHeight float64 `yaml:"max_height"` // Elevation mapped to white pixels, m
	NoData    float64 `yaml:"no_data"`    // Sentinel marking missing samples
}

// OutputConfig holds result file settings.
type OutputConfig struct {
	Path        string `yaml:"path"`         // Destination STL file
	PreviewPath string `yaml:"preview_path"` // Optional rendered PNG, empty disables
}

// ModelConfig holds mesh generation settings.
type ModelConfig struct {
	VerticalScale    float64 `yaml:"vertical_scale"`
	TargetResolution int     `yaml:"target_resolution"`
	Smoothing        bool    `yaml:"smoothing"`
	KernelRadius     int     `yaml:"kernel_radius"`
	Sigma            float64 `yaml:"sigma"`
}

// PrintConfig holds printability limits.
type PrintConfig struct {
	MinWallThicknessMM float64 `yaml:"min_wall_thickness_mm"`
	MinDimensionMM     float64 `yaml:"min_dimension_mm"`
	MaxDimensionMM     float64 `yaml:"max_dimension_mm"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			CellSize:  1.0,
			MinHeight: 0,
			MaxHeight: 1000,
			NoData:    -9999,
		},
		Output: OutputConfig{
			Path: "terrain.stl",
		},
		Model: ModelConfig{
			VerticalScale:    1.0,
			TargetResolution: 512,
			Smoothing:        true,
			KernelRadius:     2,
			Sigma:            1.0,
		},
		Print: PrintConfig{
			MinWallThicknessMM: 0.8,
			MinDimensionMM:     10,
			MaxDimensionMM:     200,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
