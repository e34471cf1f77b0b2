package mesh

import "fmt"

// DegenerateGridError reports a grid too small to triangulate.
type DegenerateGridError struct {
	Rows, Cols int
}

func (e *DegenerateGridError) Error() string {
	return fmt.Sprintf("grid %dx%d is too small to triangulate: need at least 2x2", e.Rows, e.Cols)
}

// NonSimpleBoundaryError reports a boundary loop that self-intersects when
// projected onto the base plane. Loops produced by the heightfield
// triangulator are rectangular and cannot trigger it; the check is
// defensive for hand-built input.
type NonSimpleBoundaryError struct {
	Detail string
}

func (e *NonSimpleBoundaryError) Error() string {
	return fmt.Sprintf("boundary loop is not a simple polygon: %s", e.Detail)
}
