package validate

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/svallejo/cordillera/pkg/mesh"
)

// aabbPad keeps rtreego rectangles non-degenerate for axis-aligned
// triangles and absorbs float noise in the broad phase.
const aabbPad = 1e-9

// triEntry is one triangle indexed in the broad-phase R-tree.
type triEntry struct {
	idx  int
	rect *rtreego.Rect
}

func (e *triEntry) Bounds() *rtreego.Rect { return e.rect }

// countSelfIntersections runs a best-effort self-intersection scan: a
// broad phase over an R-tree of triangle bounding boxes, then an exact
// edge-against-triangle test for candidate pairs. Pairs sharing a vertex
// are topological neighbors and skipped; fully coplanar overlaps are not
// detected. Returns the number of distinct intersecting pairs.
func countSelfIntersections(m *mesh.Mesh) int {
	if m.TriangleCount() < 2 {
		return 0
	}

	tree := rtreego.NewTree(3, 25, 50)
	entries := make([]*triEntry, m.TriangleCount())
	for i, tri := range m.Triangles {
		entries[i] = &triEntry{idx: i, rect: triangleRect(m, tri)}
		tree.Insert(entries[i])
	}

	seen := make(map[[2]int]struct{})
	for i, tri := range m.Triangles {
		for _, hit := range tree.SearchIntersect(entries[i].rect) {
			j := hit.(*triEntry).idx
			if j <= i || sharesVertex(tri, m.Triangles[j]) {
				continue
			}
			if trianglesIntersect(m, tri, m.Triangles[j]) {
				seen[[2]int{i, j}] = struct{}{}
			}
		}
	}
	return len(seen)
}

func triangleRect(m *mesh.Mesh, tri mesh.Triangle) *rtreego.Rect {
	lo := m.Vertices[tri[0]]
	hi := lo
	for _, idx := range tri[1:] {
		v := m.Vertices[idx]
		lo.X = math.Min(lo.X, v.X)
		lo.Y = math.Min(lo.Y, v.Y)
		lo.Z = math.Min(lo.Z, v.Z)
		hi.X = math.Max(hi.X, v.X)
		hi.Y = math.Max(hi.Y, v.Y)
		hi.Z = math.Max(hi.Z, v.Z)
	}
	rect, err := rtreego.NewRect(
		rtreego.Point{lo.X - aabbPad, lo.Y - aabbPad, lo.Z - aabbPad},
		[]float64{
			hi.X - lo.X + 2*aabbPad,
			hi.Y - lo.Y + 2*aabbPad,
			hi.Z - lo.Z + 2*aabbPad,
		})
	if err != nil {
		// Lengths are strictly positive by construction.
		panic(err)
	}
	return rect
}

func sharesVertex(a, b mesh.Triangle) bool {
	for _, u := range a {
		for _, v := range b {
			if u == v {
				return true
			}
		}
	}
	return false
}

// trianglesIntersect tests each edge of one triangle against the face of
// the other, both ways.
func trianglesIntersect(m *mesh.Mesh, a, b mesh.Triangle) bool {
	return anyEdgeHits(m, a, b) || anyEdgeHits(m, b, a)
}

func anyEdgeHits(m *mesh.Mesh, edges, face mesh.Triangle) bool {
	p0 := m.Vertices[face[0]]
	p1 := m.Vertices[face[1]]
	p2 := m.Vertices[face[2]]
	for e := 0; e < 3; e++ {
		orig := m.Vertices[edges[e]]
		dest := m.Vertices[edges[(e+1)%3]]
		if segmentHitsTriangle(orig, dest, p0, p1, p2) {
			return true
		}
	}
	return false
}

// segmentHitsTriangle is the Möller-Trumbore ray test restricted to the
// segment's interior. Endpoint grazes and parallel segments do not count,
// which keeps shared-boundary neighbors quiet.
func segmentHitsTriangle(orig, dest, p0, p1, p2 r3.Vec) bool {
	const eps = 1e-12
	dir := dest.Sub(orig)
	e1 := p1.Sub(p0)
	e2 := p2.Sub(p0)
	pvec := r3.Cross(dir, e2)
	det := r3.Dot(e1, pvec)
	if math.Abs(det) < eps {
		return false
	}
	inv := 1 / det
	tvec := orig.Sub(p0)
	u := r3.Dot(tvec, pvec) * inv
	if u < eps || u > 1-eps {
		return false
	}
	qvec := r3.Cross(tvec, e1)
	v := r3.Dot(dir, qvec) * inv
	if v < eps || u+v > 1-eps {
		return false
	}
	t := r3.Dot(e2, qvec) * inv
	return t > eps && t < 1-eps
}
