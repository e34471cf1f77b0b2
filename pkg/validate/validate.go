package validate

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/svallejo/cordillera/pkg/mesh"
)

const (
	// maxOverhangDeg is the steepest face FDM printers handle without
	// support material.
	maxOverhangDeg = 45.0

	// degenerateArea is the face area below which a triangle is counted
	// as degenerate.
	degenerateArea = 1e-10

	// horizontalEps filters the vertical wall edges out of the
	// wall-thickness estimate.
	horizontalEps = 1e-9
)

// Validate inspects a mesh against the given limits and returns a report.
// A non-manifold mesh is reported, never rejected: repairing or discarding
// is the caller's decision.
func Validate(m *mesh.Mesh, limits Limits) *Report {
	r := &Report{}

	r.NonManifoldEdges = nonManifoldEdges(m)
	r.IsManifold = len(r.NonManifoldEdges) == 0

	min, max := m.Bounds()
	r.Dimensions = max.Sub(min)
	r.MinWallThickness = minHorizontalSpacing(m)
	r.SurfaceArea, r.Volume, r.DegenerateFaces, r.OverhangFaces = faceStatistics(m)
	r.Intersections = countSelfIntersections(m)

	r.Warnings = buildWarnings(r, limits)
	return r
}

// nonManifoldEdges returns every unordered edge whose triangle incidence
// is not exactly two, sorted for deterministic reporting.
func nonManifoldEdges(m *mesh.Mesh) [][2]int {
	counts := make(map[[2]int]int, 3*m.TriangleCount()/2)
	for _, tri := range m.Triangles {
		for e := 0; e < 3; e++ {
			u, v := tri[e], tri[(e+1)%3]
			if u > v {
				u, v = v, u
			}
			counts[[2]int{u, v}]++
		}
	}
	var bad [][2]int
	for edge, n := range counts {
		if n != 2 {
			bad = append(bad, edge)
		}
	}
	sort.Slice(bad, func(i, j int) bool {
		if bad[i][0] != bad[j][0] {
			return bad[i][0] < bad[j][0]
		}
		return bad[i][1] < bad[j][1]
	})
	return bad
}

// minHorizontalSpacing scans every edge's extent in the xy plane and
// returns the smallest nonzero one. For a heightfield solid this is the
// decimated grid spacing, which stands in for true wall thickness.
func minHorizontalSpacing(m *mesh.Mesh) float64 {
	best := math.Inf(1)
	for _, tri := range m.Triangles {
		for e := 0; e < 3; e++ {
			a := m.Vertices[tri[e]]
			b := m.Vertices[tri[(e+1)%3]]
			d := math.Hypot(b.X-a.X, b.Y-a.Y)
			if d > horizontalEps && d < best {
				best = d
			}
		}
	}
	if math.IsInf(best, 1) {
		return 0
	}
	return best
}

func faceStatistics(m *mesh.Mesh) (area, volume float64, degenerate, overhang int) {
	cosLimit := math.Cos(maxOverhangDeg * math.Pi / 180)
	baseZ := m.MinZ()
	for _, tri := range m.Triangles {
		n := m.FaceNormal(tri)
		faceArea := 0.5 * r3.Norm(n)
		area += faceArea
		if faceArea < degenerateArea {
			degenerate++
			continue
		}
		// Downward-tilted faces steeper than the overhang limit need
		// support, except the base plate itself which rests on the bed.
		if n.Z/r3.Norm(n) < -cosLimit && !onPlane(m, tri, baseZ) {
			overhang++
		}
		v0 := m.Vertices[tri[0]]
		v1 := m.Vertices[tri[1]]
		v2 := m.Vertices[tri[2]]
		volume += r3.Dot(v0, r3.Cross(v1, v2)) / 6
	}
	return area, math.Abs(volume), degenerate, overhang
}

// onPlane reports whether every vertex of tri sits at elevation z.
func onPlane(m *mesh.Mesh, tri mesh.Triangle, z float64) bool {
	const eps = 1e-9
	for _, idx := range tri {
		if math.Abs(m.Vertices[idx].Z-z) > eps {
			return false
		}
	}
	return true
}

func buildWarnings(r *Report, limits Limits) []string {
	var warnings []string

	maxDim := math.Max(r.Dimensions.X, math.Max(r.Dimensions.Y, r.Dimensions.Z))
	minDim := math.Min(r.Dimensions.X, math.Min(r.Dimensions.Y, r.Dimensions.Z))
	if limits.MaxDimensionMM > 0 && maxDim > limits.MaxDimensionMM {
		warnings = append(warnings, fmt.Sprintf(
			"model is too large for the print bed (%.1fmm, limit %.1fmm); apply a scale factor",
			maxDim, limits.MaxDimensionMM))
	}
	if limits.MinDimensionMM > 0 && minDim < limits.MinDimensionMM {
		warnings = append(warnings, fmt.Sprintf(
			"model dimension %.1fmm is below the %.1fmm minimum and may not print reliably",
			minDim, limits.MinDimensionMM))
	}
	if limits.MinWallThicknessMM > 0 && r.MinWallThickness > 0 && r.MinWallThickness < limits.MinWallThicknessMM {
		warnings = append(warnings, fmt.Sprintf(
			"estimated wall thickness %.2fmm is below the %.2fmm minimum (grid-spacing heuristic, not an exact offset distance)",
			r.MinWallThickness, limits.MinWallThicknessMM))
	}
	if r.DegenerateFaces > 0 {
		warnings = append(warnings, fmt.Sprintf("%d degenerate faces with near-zero area", r.DegenerateFaces))
	}
	if r.OverhangFaces > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d downward-facing faces exceed the %.0f° overhang limit and may need support material", r.OverhangFaces, maxOverhangDeg))
	}
	if !r.IsManifold {
		warnings = append(warnings, fmt.Sprintf(
			"mesh is not manifold: %d edges are not shared by exactly two triangles", len(r.NonManifoldEdges)))
	}
	if r.Intersections > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d self-intersecting triangle pairs found (best-effort scan)", r.Intersections))
	}
	return warnings
}
