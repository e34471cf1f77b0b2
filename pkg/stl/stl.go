// Package stl writes triangle meshes as binary STL. Output is
// bit-reproducible: a zeroed 80-byte header, a little-endian triangle
// count and one 50-byte record per triangle in mesh order, nothing
// environment-dependent.
package stl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/svallejo/cordillera/pkg/mesh"
)

// recordSize is the fixed on-disk size of one STL triangle.
const recordSize = 50

// minNormalLength rejects triangles whose winding cannot produce a unit
// facet normal.
const minNormalLength = 1e-12

// DegenerateTriangleError reports a zero-area triangle met during
// serialization. STL has no valid encoding for it; emitting a zero normal
// instead would break downstream slicers.
type DegenerateTriangleError struct {
	Index int
}

func (e *DegenerateTriangleError) Error() string {
	return fmt.Sprintf("triangle %d has zero area and no facet normal", e.Index)
}

// stlHeader is the fixed file prefix: 80 free-form bytes (zeroed here)
// and the triangle count.
type stlHeader struct {
	_     [80]uint8
	Count uint32
}

// stlTriangle is the 50-byte record layout of a single facet.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // attribute byte count, always zero
}

func (t stlTriangle) put(b []byte) {
	if len(b) < recordSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

// Marshal serializes the mesh and returns the STL bytes.
func Marshal(m *mesh.Mesh) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(84 + recordSize*m.TriangleCount())
	if err := Write(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write streams the mesh to w in binary STL format. The facet normal of
// each record is the unit normal implied by the triangle's winding.
func Write(w io.Writer, m *mesh.Mesh) error {
	header := stlHeader{Count: uint32(m.TriangleCount())}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}

	var b [recordSize]byte
	for i, tri := range m.Triangles {
		n := m.FaceNormal(tri)
		length := r3.Norm(n)
		if length < minNormalLength {
			return &DegenerateTriangleError{Index: i}
		}
		n = r3.Scale(1/length, n)

		d := stlTriangle{
			Normal:  toF32(n),
			Vertex1: toF32(m.Vertices[tri[0]]),
			Vertex2: toF32(m.Vertices[tri[1]]),
			Vertex3: toF32(m.Vertices[tri[2]]),
		}
		if bad3F32(d.Normal) || bad3F32(d.Vertex1) || bad3F32(d.Vertex2) || bad3F32(d.Vertex3) {
			return fmt.Errorf("triangle %d has a non-finite coordinate", i)
		}
		d.put(b[:])
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

func toF32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}
