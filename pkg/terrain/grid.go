package terrain

import "fmt"

// Elevation bounds for terrain in and around the Ecuadorian Andes, in
// meters. Samples outside this range are treated like no-data cells and
// repaired at the same point in the pipeline.
const (
	MinValidElevation = -500.0
	MaxValidElevation = 7000.0
)

// DefaultNoData is the sentinel used by most SRTM-derived rasters.
const DefaultNoData = -9999.0

// Grid is an immutable elevation raster. Values holds Rows*Cols samples in
// row-major order. Valid is a same-shape mask: the no-data sentinel and the
// valid-elevation bounds are resolved once at construction, so the stage
// hot loops never compare against sentinels.
type Grid struct {
	Rows, Cols   int
	CellX, CellY float64 // geographic units per cell along x (columns) and y (rows)
	OriginX      float64 // world position of cell (0,0)
	OriginY      float64
	Values       []float64
	Valid        []bool
}

// NewGrid builds a grid from raw raster samples, resolving the no-data
// sentinel into the validity mask. Cells equal to noData or outside
// [MinValidElevation, MaxValidElevation] are marked invalid.
func NewGrid(rows, cols int, cellX, cellY, originX, originY float64, values []float64, noData float64) (*Grid, error) {
	if rows < 2 || cols < 2 {
		return nil, &InvalidParameterError{Name: "rows/cols", Value: fmt.Sprintf("%dx%d", rows, cols), Reason: "grid must be at least 2x2"}
	}
	if cellX <= 0 || cellY <= 0 {
		return nil, &InvalidParameterError{Name: "cellSize", Value: fmt.Sprintf("%gx%g", cellX, cellY), Reason: "cell size must be positive"}
	}
	if len(values) != rows*cols {
		return nil, &InvalidParameterError{Name: "values", Value: len(values), Reason: fmt.Sprintf("want %d samples", rows*cols)}
	}

	g := &Grid{
		Rows:    rows,
		Cols:    cols,
		CellX:   cellX,
		CellY:   cellY,
		OriginX: originX,
		OriginY: originY,
		Values:  make([]float64, len(values)),
		Valid:   make([]bool, len(values)),
	}
	copy(g.Values, values)
	for i, v := range values {
		g.Valid[i] = v != noData && v >= MinValidElevation && v <= MaxValidElevation
	}
	return g, nil
}

// Index returns the row-major offset of cell (i, j).
func (g *Grid) Index(i, j int) int { return i*g.Cols + j }

// At returns the elevation of cell (i, j).
func (g *Grid) At(i, j int) float64 { return g.Values[i*g.Cols+j] }

// AllValid reports whether every cell carries a usable elevation.
func (g *Grid) AllValid() bool {
	for _, ok := range g.Valid {
		if !ok {
			return false
		}
	}
	return true
}

// clone returns a deep copy sharing no storage with the receiver.
func (g *Grid) clone() *Grid {
	out := &Grid{
		Rows:    g.Rows,
		Cols:    g.Cols,
		CellX:   g.CellX,
		CellY:   g.CellY,
		OriginX: g.OriginX,
		OriginY: g.OriginY,
		Values:  make([]float64, len(g.Values)),
		Valid:   make([]bool, len(g.Valid)),
	}
	copy(out.Values, g.Values)
	copy(out.Valid, g.Valid)
	return out
}
