package terrain

import (
	"errors"
	"math"
	"testing"
)

// mustGrid builds a grid from row-major values, failing the test on error.
func mustGrid(t *testing.T, rows, cols int, values []float64) *Grid {
	t.Helper()
	g, err := NewGrid(rows, cols, 1, 1, 0, 0, values, DefaultNoData)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	return g
}

func TestNewGridResolvesSentinel(t *testing.T) {
	g := mustGrid(t, 2, 3, []float64{10, DefaultNoData, 30, 8000, -600, 60})
	want := []bool{true, false, true, false, false, true}
	for i, ok := range want {
		if g.Valid[i] != ok {
			t.Errorf("Valid[%d] = %v, want %v", i, g.Valid[i], ok)
		}
	}
}

func TestNewGridRejectsBadShape(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		values     []float64
	}{
		{"one row", 1, 3, []float64{1, 2, 3}},
		{"one col", 3, 1, []float64{1, 2, 3}},
		{"length mismatch", 2, 2, []float64{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.rows, tt.cols, 1, 1, 0, 0, tt.values, DefaultNoData)
			var perr *InvalidParameterError
			if !errors.As(err, &perr) {
				t.Fatalf("NewGrid error = %v, want InvalidParameterError", err)
			}
		})
	}
}

func TestNormalizeScaleBounds(t *testing.T) {
	g := mustGrid(t, 2, 2, []float64{1, 2, 3, 4})
	tests := []struct {
		name  string
		scale float64
		ok    bool
	}{
		{"zero rejected", 0, false},
		{"negative rejected", -1, false},
		{"eleven rejected", 11, false},
		{"ten accepted", 10, true},
		{"unity accepted", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(g, tt.scale, 100)
			if tt.ok && err != nil {
				t.Fatalf("Normalize(scale=%g) error = %v, want nil", tt.scale, err)
			}
			if !tt.ok {
				var perr *InvalidParameterError
				if !errors.As(err, &perr) {
					t.Fatalf("Normalize(scale=%g) error = %v, want InvalidParameterError", tt.scale, err)
				}
			}
		})
	}
}

func TestNormalizeIdentityOnValidGrid(t *testing.T) {
	values := []float64{10, 20, 30, 40, 50, 60}
	g := mustGrid(t, 2, 3, values)
	out, err := Normalize(g, 1.0, 100)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	for i, v := range values {
		if out.Values[i] != v {
			t.Errorf("Values[%d] = %g, want %g unchanged", i, out.Values[i], v)
		}
	}
	// The output must be a fresh grid, not an alias of the input.
	out.Values[0] = -1
	if g.Values[0] != 10 {
		t.Error("Normalize aliased the input grid storage")
	}
}

func TestNormalizeVerticalScale(t *testing.T) {
	g := mustGrid(t, 2, 2, []float64{1, 2, 3, 4})
	out, err := Normalize(g, 2.5, 100)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	want := []float64{2.5, 5, 7.5, 10}
	for i := range want {
		if out.Values[i] != want[i] {
			t.Errorf("Values[%d] = %g, want %g", i, out.Values[i], want[i])
		}
	}
}

func TestNormalizeRepairsHole(t *testing.T) {
	// Center cell missing; row neighbors average 20, column neighbors 20.
	g := mustGrid(t, 3, 3, []float64{
		10, 20, 30,
		10, DefaultNoData, 30,
		10, 20, 30,
	})
	out, err := Normalize(g, 1.0, 100)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got := out.At(1, 1); math.Abs(got-20) > 1e-12 {
		t.Errorf("repaired center = %g, want 20", got)
	}
	if !out.AllValid() {
		t.Error("repaired grid still carries invalid cells")
	}
}

func TestNormalizeRepairEdgeCell(t *testing.T) {
	// Top-left corner missing: row estimate extends from (0,1), column
	// estimate from (1,0); repaired value is their average.
	g := mustGrid(t, 2, 2, []float64{DefaultNoData, 40, 20, 40})
	out, err := Normalize(g, 1.0, 100)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got := out.At(0, 0); math.Abs(got-30) > 1e-12 {
		t.Errorf("repaired corner = %g, want 30", got)
	}
}

func TestNormalizeFailsOnDeadRow(t *testing.T) {
	g := mustGrid(t, 3, 2, []float64{
		1, 2,
		DefaultNoData, DefaultNoData,
		5, 6,
	})
	_, err := Normalize(g, 1.0, 100)
	var derr *InsufficientDataError
	if !errors.As(err, &derr) {
		t.Fatalf("Normalize error = %v, want InsufficientDataError", err)
	}
	if derr.Axis != "row" || derr.Index != 1 {
		t.Errorf("got %s %d, want row 1", derr.Axis, derr.Index)
	}
}

func TestNormalizeFailsOnDeadColumn(t *testing.T) {
	g := mustGrid(t, 2, 3, []float64{
		1, DefaultNoData, 3,
		4, DefaultNoData, 6,
	})
	_, err := Normalize(g, 1.0, 100)
	var derr *InsufficientDataError
	if !errors.As(err, &derr) {
		t.Fatalf("Normalize error = %v, want InsufficientDataError", err)
	}
	if derr.Axis != "column" || derr.Index != 1 {
		t.Errorf("got %s %d, want column 1", derr.Axis, derr.Index)
	}
}

func TestNormalizeDecimatesByStride(t *testing.T) {
	// 5x5 grid decimated to target 3: stride ceil(5/3)=2, keeps samples
	// 0, 2 and 4 on each axis with doubled cell spacing.
	values := make([]float64, 25)
	for i := range values {
		values[i] = float64(i)
	}
	g := mustGrid(t, 5, 5, values)
	out, err := Normalize(g, 1.0, 3)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if out.Rows != 3 || out.Cols != 3 {
		t.Fatalf("decimated to %dx%d, want 3x3", out.Rows, out.Cols)
	}
	if out.CellX != 2 || out.CellY != 2 {
		t.Errorf("cell spacing = %gx%g, want 2x2", out.CellX, out.CellY)
	}
	want := []float64{0, 2, 4, 10, 12, 14, 20, 22, 24}
	for i := range want {
		if out.Values[i] != want[i] {
			t.Errorf("Values[%d] = %g, want %g (original sample, no blending)", i, out.Values[i], want[i])
		}
	}
}

func TestNormalizeKeepsBothAxesOnSkinnyGrid(t *testing.T) {
	// 3x100 grid with target 2: the raw stride ceil(100/2)=50 would leave a
	// single row, so it is capped at 2 and the short axis keeps 2 samples.
	values := make([]float64, 300)
	for i := range values {
		values[i] = float64(i % 100)
	}
	g := mustGrid(t, 3, 100, values)
	out, err := Normalize(g, 1.0, 2)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if out.Rows < 2 || out.Cols < 2 {
		t.Fatalf("decimated to %dx%d, both axes must keep at least 2 samples", out.Rows, out.Cols)
	}
	if out.Rows != 2 || out.Cols != 50 {
		t.Errorf("decimated to %dx%d, want 2x50", out.Rows, out.Cols)
	}

	// Default smoothing settings must terminate on the decimated grid.
	sm, err := Smooth(out, 2, 1.0)
	if err != nil {
		t.Fatalf("Smooth failed: %v", err)
	}
	if sm.Rows != out.Rows || sm.Cols != out.Cols {
		t.Errorf("smoothing changed shape to %dx%d", sm.Rows, sm.Cols)
	}
}

func TestNormalizeMinimalAxisNeverDecimated(t *testing.T) {
	// A 2-sample axis cannot be thinned at all; the stride cap degrades
	// decimation to a no-op regardless of the target.
	values := make([]float64, 200)
	for i := range values {
		values[i] = float64(i)
	}
	g := mustGrid(t, 2, 100, values)
	out, err := Normalize(g, 1.0, 2)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if out.Rows != 2 || out.Cols != 100 {
		t.Errorf("decimated to %dx%d, want unchanged 2x100", out.Rows, out.Cols)
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	g := mustGrid(t, 3, 3, []float64{
		10, DefaultNoData, 30,
		DefaultNoData, 50, 60,
		70, 80, DefaultNoData,
	})
	a, err := Normalize(g, 1.5, 100)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	b, err := Normalize(g, 1.5, 100)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			t.Fatalf("run mismatch at %d: %v != %v", i, a.Values[i], b.Values[i])
		}
	}
}
