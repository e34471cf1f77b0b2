// Package mesh triangulates elevation grids into open surfaces and closes
// them into watertight solids suitable for printing.
package mesh

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle references three vertices of a Mesh arena by index. The winding
// order determines the outward face normal via the right-hand rule.
type Triangle [3]int

// Mesh owns a single contiguous vertex arena; triangles hold only indices
// into it and never duplicate vertex storage. A mesh is immutable once
// returned by a pipeline stage — stages build new meshes instead of
// editing their input.
type Mesh struct {
	Vertices  []r3.Vec
	Triangles []Triangle
}

// BoundaryLoop is the ordered, closed perimeter of an open heightfield
// surface: the last vertex connects back to the first. It only exists
// between triangulation and closure.
type BoundaryLoop []int

// VertexCount returns the number of vertices in the arena.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Triangles) }

// FaceNormal returns the unnormalized face normal of triangle t.
func (m *Mesh) FaceNormal(t Triangle) r3.Vec {
	a := m.Vertices[t[0]]
	e1 := m.Vertices[t[1]].Sub(a)
	e2 := m.Vertices[t[2]].Sub(a)
	return r3.Cross(e1, e2)
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (m *Mesh) Bounds() (min, max r3.Vec) {
	if len(m.Vertices) == 0 {
		return r3.Vec{}, r3.Vec{}
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		min.Z = math.Min(min.Z, v.Z)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
		max.Z = math.Max(max.Z, v.Z)
	}
	return min, max
}

// MinZ returns the lowest vertex elevation.
func (m *Mesh) MinZ() float64 {
	lo := math.Inf(1)
	for _, v := range m.Vertices {
		lo = math.Min(lo, v.Z)
	}
	return lo
}
