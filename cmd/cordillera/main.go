// Package main is the entry point for the cordillera terrain-to-STL converter.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/svallejo/cordillera/internal/config"
	"github.com/svallejo/cordillera/internal/heightmap"
	"github.com/svallejo/cordillera/internal/logger"
	"github.com/svallejo/cordillera/pkg/pipeline"
	"github.com/svallejo/cordillera/pkg/preview"
	"github.com/svallejo/cordillera/pkg/validate"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Input.Path == "" {
		logger.Log.Error("no input heightmap given, use -in or the input.path config key")
		os.Exit(1)
	}

	logger.Log.Info("loading heightmap", zap.String("path", cfg.Input.Path))
	grid, err := heightmap.Load(cfg.Input.Path, heightmap.Options{
		CellSize:  cfg.Input.CellSize,
		MinHeight: cfg.Input.MinHeight,
		MaxHeight: cfg.Input.MaxHeight,
		NoData:    cfg.Input.NoData,
	})
	if err != nil {
		logger.Log.Error("failed to load heightmap", zap.Error(err))
		os.Exit(1)
	}
	logger.Log.Info("heightmap loaded",
		zap.Int("rows", grid.Rows),
		zap.Int("cols", grid.Cols))

	opts := pipeline.DefaultOptions()
	opts.VerticalScale = cfg.Model.VerticalScale
	opts.TargetResolution = cfg.Model.TargetResolution
	opts.SmoothingEnabled = cfg.Model.Smoothing
	opts.KernelRadius = cfg.Model.KernelRadius
	opts.Sigma = cfg.Model.Sigma
	opts.Limits = validate.Limits{
		MinWallThicknessMM: cfg.Print.MinWallThicknessMM,
		MinDimensionMM:     cfg.Print.MinDimensionMM,
		MaxDimensionMM:     cfg.Print.MaxDimensionMM,
	}
	opts.Logger = logger.Log

	res, err := pipeline.Run(grid, opts)
	if err != nil {
		logger.Log.Error("pipeline failed", zap.Error(err))
		os.Exit(1)
	}

	report := res.Report
	logger.Log.Info("solid built",
		zap.Int("triangles", res.Solid.TriangleCount()),
		zap.Bool("manifold", report.IsManifold),
		zap.Float64("width_mm", report.Dimensions.X),
		zap.Float64("depth_mm", report.Dimensions.Y),
		zap.Float64("height_mm", report.Dimensions.Z),
		zap.Float64("volume_mm3", report.Volume))
	for _, w := range report.Warnings {
		logger.Log.Warn(w)
	}

	if err := os.WriteFile(cfg.Output.Path, res.STL, 0644); err != nil {
		logger.Log.Error("failed to write STL", zap.Error(err))
		os.Exit(1)
	}
	logger.Log.Info("STL written",
		zap.String("path", cfg.Output.Path),
		zap.Int("bytes", len(res.STL)))

	if cfg.Output.PreviewPath != "" {
		if err := preview.Save(cfg.Output.PreviewPath, res.Solid, preview.DefaultOptions()); err != nil {
			logger.Log.Error("failed to write preview", zap.Error(err))
			os.Exit(1)
		}
		logger.Log.Info("preview written", zap.String("path", cfg.Output.PreviewPath))
	}
}
