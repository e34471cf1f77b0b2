package terrain

// Vertical exaggeration outside this range makes the printed relief either
// unreadable or structurally fragile.
const (
	MinVerticalScale = 0.0 // exclusive
	MaxVerticalScale = 10.0
)

// Normalize prepares a raw elevation grid for meshing. It repairs invalid
// cells by interpolating from the nearest valid neighbors, multiplies every
// elevation by verticalScale and, when the grid is larger than
// targetResolution along its major axis, decimates it by strided
// resampling. Decimation keeps original samples untouched; it never blends
// neighboring elevations. The input grid is not modified.
func Normalize(g *Grid, verticalScale float64, targetResolution int) (*Grid, error) {
	if verticalScale <= MinVerticalScale || verticalScale > MaxVerticalScale {
		return nil, &InvalidParameterError{Name: "verticalScale", Value: verticalScale, Reason: "must be in (0, 10]"}
	}
	if targetResolution < 2 {
		return nil, &InvalidParameterError{Name: "targetResolution", Value: targetResolution, Reason: "must be at least 2"}
	}

	out := g.clone()
	if err := repair(out); err != nil {
		return nil, err
	}
	if verticalScale != 1.0 {
		for i := range out.Values {
			out.Values[i] *= verticalScale
		}
	}
	if longest := max(out.Rows, out.Cols); targetResolution < longest {
		stride := (longest + targetResolution - 1) / targetResolution
		// A stride larger than the shorter axis would drop it below the
		// two samples a grid must keep along each axis.
		if maxStride := min(out.Rows, out.Cols) - 1; stride > maxStride {
			stride = maxStride
		}
		out = decimate(out, stride)
	}
	return out, nil
}

// repair fills every invalid cell in place by interpolating linearly along
// its row and its column between the nearest valid samples, averaging the
// two axis estimates. Estimates read only originally-valid cells, so the
// result does not depend on cell visiting order. Fails when an entire row
// or column carries no valid data.
func repair(g *Grid) error {
	for i := 0; i < g.Rows; i++ {
		if !anyValid(g.Valid[i*g.Cols : (i+1)*g.Cols]) {
			return &InsufficientDataError{Axis: "row", Index: i}
		}
	}
	for j := 0; j < g.Cols; j++ {
		ok := false
		for i := 0; i < g.Rows && !ok; i++ {
			ok = g.Valid[g.Index(i, j)]
		}
		if !ok {
			return &InsufficientDataError{Axis: "column", Index: j}
		}
	}

	repaired := make([]float64, 0, 64) // (index, value) pairs flattened
	indices := make([]int, 0, 64)
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			idx := g.Index(i, j)
			if g.Valid[idx] {
				continue
			}
			rowEst := interpolateAxis(g, i, j, false)
			colEst := interpolateAxis(g, i, j, true)
			indices = append(indices, idx)
			repaired = append(repaired, (rowEst+colEst)/2)
		}
	}
	for k, idx := range indices {
		g.Values[idx] = repaired[k]
		g.Valid[idx] = true
	}
	return nil
}

// interpolateAxis estimates cell (i,j) from the nearest valid cells along
// one axis. With valid neighbors on both sides it interpolates linearly by
// distance; with one side only it extends that value.
func interpolateAxis(g *Grid, i, j int, vertical bool) float64 {
	limit := g.Cols
	if vertical {
		limit = g.Rows
	}
	pos := j
	if vertical {
		pos = i
	}
	at := func(k int) (float64, bool) {
		var idx int
		if vertical {
			idx = g.Index(k, j)
		} else {
			idx = g.Index(i, k)
		}
		return g.Values[idx], g.Valid[idx]
	}

	var (
		loVal, hiVal float64
		loDist       = -1
		hiDist       = -1
	)
	for k := pos - 1; k >= 0; k-- {
		if v, ok := at(k); ok {
			loVal, loDist = v, pos-k
			break
		}
	}
	for k := pos + 1; k < limit; k++ {
		if v, ok := at(k); ok {
			hiVal, hiDist = v, k-pos
			break
		}
	}

	switch {
	case loDist >= 0 && hiDist >= 0:
		return (loVal*float64(hiDist) + hiVal*float64(loDist)) / float64(loDist+hiDist)
	case loDist >= 0:
		return loVal
	default:
		return hiVal
	}
}

// decimate keeps every stride-th sample along both axes so that output
// vertices stay exactly on original cell centers.
func decimate(g *Grid, stride int) *Grid {
	if stride <= 1 {
		return g
	}
	rows := (g.Rows-1)/stride + 1
	cols := (g.Cols-1)/stride + 1
	out := &Grid{
		Rows:    rows,
		Cols:    cols,
		CellX:   g.CellX * float64(stride),
		CellY:   g.CellY * float64(stride),
		OriginX: g.OriginX,
		OriginY: g.OriginY,
		Values:  make([]float64, rows*cols),
		Valid:   make([]bool, rows*cols),
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			src := g.Index(i*stride, j*stride)
			dst := i*cols + j
			out.Values[dst] = g.Values[src]
			out.Valid[dst] = g.Valid[src]
		}
	}
	return out
}

func anyValid(mask []bool) bool {
	for _, ok := range mask {
		if ok {
			return true
		}
	}
	return false
}
