package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultBaseMargin is how far the base plate sits below the lowest
// surface point, in output units. Matches the 2 mm plate most slicers
// expect for bed adhesion.
const DefaultBaseMargin = 2.0

// DefaultBaseZ returns the base elevation used when the caller has no
// explicit preference: strictly below the lowest surface vertex.
func DefaultBaseZ(surface *Mesh) float64 {
	return surface.MinZ() - DefaultBaseMargin
}

// Close extrudes an open heightfield surface into a watertight solid. One
// base vertex is added per boundary vertex at z = baseZ; each consecutive
// boundary pair gets a vertical wall quad wound outward, and the base
// polygon is ear-clipped and wound downward. Boundary vertices are shared
// between surface and walls, never duplicated. The input mesh is left
// untouched.
func Close(surface *Mesh, loop BoundaryLoop, baseZ float64) (*Mesh, error) {
	n := len(loop)
	if n < 3 {
		return nil, &NonSimpleBoundaryError{Detail: "loop has fewer than 3 vertices"}
	}
	for _, idx := range loop {
		if idx < 0 || idx >= surface.VertexCount() {
			return nil, &NonSimpleBoundaryError{Detail: "loop references a vertex outside the surface arena"}
		}
	}

	solid := &Mesh{
		Vertices:  make([]r3.Vec, 0, surface.VertexCount()+n),
		Triangles: make([]Triangle, 0, surface.TriangleCount()+2*n+(n-2)),
	}
	solid.Vertices = append(solid.Vertices, surface.Vertices...)
	solid.Triangles = append(solid.Triangles, surface.Triangles...)

	// Base vertices mirror the loop in (x,y) at the base elevation.
	baseStart := surface.VertexCount()
	for _, idx := range loop {
		v := surface.Vertices[idx]
		solid.Vertices = append(solid.Vertices, r3.Vec{X: v.X, Y: v.Y, Z: baseZ})
	}

	// Walls. The loop runs counterclockwise seen from above, so for a
	// travel edge a->b the outward direction is edge x +z; both triangles
	// below are wound to face that way.
	for k := 0; k < n; k++ {
		next := (k + 1) % n
		a := loop[k]
		b := loop[next]
		aBase := baseStart + k
		bBase := baseStart + next
		solid.Triangles = append(solid.Triangles,
			Triangle{a, aBase, bBase},
			Triangle{a, bBase, b},
		)
	}

	// Base plate: ear-clip the projected loop, then flip the winding so
	// the plate faces -z.
	basePoly := make([]point2, n)
	for k := 0; k < n; k++ {
		v := surface.Vertices[loop[k]]
		basePoly[k] = point2{x: v.X, y: v.Y}
	}
	ears, err := earClip(basePoly)
	if err != nil {
		return nil, err
	}
	for _, e := range ears {
		solid.Triangles = append(solid.Triangles, Triangle{
			baseStart + e[0],
			baseStart + e[2],
			baseStart + e[1],
		})
	}

	return solid, nil
}

type point2 struct{ x, y float64 }

// cross2 returns the z component of (b-a) x (c-a).
func cross2(a, b, c point2) float64 {
	return (b.x-a.x)*(c.y-a.y) - (b.y-a.y)*(c.x-a.x)
}

// inTriangleInclusive reports whether p lies inside triangle (a,b,c) or on
// its boundary. Edge contact counts: clipping an ear whose edge passes
// through another loop vertex would leave a T-junction in the base.
func inTriangleInclusive(p, a, b, c point2) bool {
	const eps = 1e-12
	return cross2(a, b, p) >= -eps &&
		cross2(b, c, p) >= -eps &&
		cross2(c, a, p) >= -eps
}

// earClip triangulates a counterclockwise simple polygon using only its
// own vertices, returning index triples into the input slice with
// counterclockwise winding. Collinear vertices (common on grid perimeters)
// are never clipped as ears, so no degenerate triangle is emitted and
// every polygon edge ends up in exactly one triangle.
func earClip(poly []point2) ([][3]int, error) {
	const eps = 1e-12
	ring := make([]int, len(poly))
	for i := range ring {
		ring[i] = i
	}

	tris := make([][3]int, 0, len(poly)-2)
	for len(ring) > 3 {
		clipped := false
		for k := 0; k < len(ring); k++ {
			prev := ring[(k+len(ring)-1)%len(ring)]
			cur := ring[k]
			next := ring[(k+1)%len(ring)]

			// Strictly convex corners only; collinear triples have zero
			// area and stay in the ring until a neighbor is removed.
			if cross2(poly[prev], poly[cur], poly[next]) <= eps {
				continue
			}
			if earContainsOther(poly, ring, prev, cur, next) {
				continue
			}

			tris = append(tris, [3]int{prev, cur, next})
			ring = append(ring[:k], ring[k+1:]...)
			clipped = true
			break
		}
		if !clipped {
			return nil, &NonSimpleBoundaryError{Detail: "no clippable ear found"}
		}
	}
	if cross2(poly[ring[0]], poly[ring[1]], poly[ring[2]]) <= eps {
		return nil, &NonSimpleBoundaryError{Detail: "remaining triangle is degenerate"}
	}
	tris = append(tris, [3]int{ring[0], ring[1], ring[2]})
	return tris, nil
}

func earContainsOther(poly []point2, ring []int, prev, cur, next int) bool {
	for _, other := range ring {
		if other == prev || other == cur || other == next {
			continue
		}
		if inTriangleInclusive(poly[other], poly[prev], poly[cur], poly[next]) {
			return true
		}
	}
	return false
}
