// Package validate inspects a closed terrain mesh for printability:
// manifoldness, physical dimensions, wall thickness and best-effort
// self-intersection. Checks never fail the pipeline; everything lands in
// a report so the caller makes the accept/reject call.
package validate

import "gonum.org/v1/gonum/spatial/r3"

// Limits are the printability thresholds supplied by the caller, in
// output millimeters.
type Limits struct {
	MinWallThicknessMM float64
	MinDimensionMM     float64
	MaxDimensionMM     float64
}

// DefaultLimits matches a common FDM printer with PLA: 200 mm bed,
// 10 mm minimum sensible model size, 0.8 mm walls.
func DefaultLimits() Limits {
	return Limits{
		MinWallThicknessMM: 0.8,
		MinDimensionMM:     10,
		MaxDimensionMM:     200,
	}
}

// Report is the immutable outcome of validating one mesh.
type Report struct {
	IsManifold       bool
	NonManifoldEdges [][2]int // unordered vertex pairs, sorted for stable output
	Dimensions       r3.Vec   // axis-aligned bounding box extents

	// MinWallThickness approximates the thinnest printed feature by the
	// smallest horizontal vertex spacing in the mesh. It is a grid-spacing
	// heuristic, not an offset-surface distance.
	MinWallThickness float64

	SurfaceArea     float64
	Volume          float64
	DegenerateFaces int
	OverhangFaces   int // faces tilted more than maxOverhangDeg from vertical
	Intersections   int // self-intersecting triangle pairs found (best effort)

	Warnings []string
}
