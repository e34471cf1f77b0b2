package mesh

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/svallejo/cordillera/pkg/terrain"
)

// Triangulate converts an elevation grid into an open triangulated surface
// and the ordered loop of its perimeter vertices.
//
// Vertex (i,j) sits at (origin.x + j*cellX, origin.y + i*cellY, elevation).
// Every cell is split along the same corner-to-corner diagonal — never
// alternated per cell, which would show as seams in the print — and wound
// so face normals point toward +z.
func Triangulate(g *terrain.Grid) (*Mesh, BoundaryLoop, error) {
	if g.Rows < 2 || g.Cols < 2 {
		return nil, nil, &DegenerateGridError{Rows: g.Rows, Cols: g.Cols}
	}

	m := &Mesh{
		Vertices:  make([]r3.Vec, 0, g.Rows*g.Cols),
		Triangles: make([]Triangle, 0, 2*(g.Rows-1)*(g.Cols-1)),
	}
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			m.Vertices = append(m.Vertices, r3.Vec{
				X: g.OriginX + float64(j)*g.CellX,
				Y: g.OriginY + float64(i)*g.CellY,
				Z: g.At(i, j),
			})
		}
	}

	for i := 0; i < g.Rows-1; i++ {
		for j := 0; j < g.Cols-1; j++ {
			v00 := g.Index(i, j)
			v01 := g.Index(i, j+1)
			v10 := g.Index(i+1, j)
			v11 := g.Index(i+1, j+1)
			m.Triangles = append(m.Triangles,
				Triangle{v00, v01, v10},
				Triangle{v01, v11, v10},
			)
		}
	}

	return m, perimeterLoop(g.Rows, g.Cols), nil
}

// perimeterLoop walks the grid edge counterclockwise as seen from +z:
// first row left to right, last column downward, last row right to left,
// first column back up.
func perimeterLoop(rows, cols int) BoundaryLoop {
	loop := make(BoundaryLoop, 0, 2*(rows+cols-2))
	for j := 0; j < cols; j++ {
		loop = append(loop, j)
	}
	for i := 1; i < rows; i++ {
		loop = append(loop, i*cols+cols-1)
	}
	for j := cols - 2; j >= 0; j-- {
		loop = append(loop, (rows-1)*cols+j)
	}
	for i := rows - 2; i >= 1; i-- {
		loop = append(loop, i*cols)
	}
	return loop
}
