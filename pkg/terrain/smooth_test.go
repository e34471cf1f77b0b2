package terrain

import (
	"errors"
	"math"
	"testing"
)

func TestSmoothZeroRadiusIsIdentity(t *testing.T) {
	values := []float64{5, 1, 9, 2, 8, 3, 7, 4, 6}
	g := mustGrid(t, 3, 3, values)
	out, err := Smooth(g, 0, 123.4)
	if err != nil {
		t.Fatalf("Smooth failed: %v", err)
	}
	for i, v := range values {
		if out.Values[i] != v {
			t.Errorf("Values[%d] = %g, want %g unchanged", i, out.Values[i], v)
		}
	}
}

func TestSmoothParameterDomain(t *testing.T) {
	g := mustGrid(t, 2, 2, []float64{1, 2, 3, 4})
	tests := []struct {
		name   string
		radius int
		sigma  float64
	}{
		{"negative radius", -1, 1.0},
		{"zero sigma", 2, 0},
		{"negative sigma", 2, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Smooth(g, tt.radius, tt.sigma)
			var perr *InvalidParameterError
			if !errors.As(err, &perr) {
				t.Fatalf("Smooth error = %v, want InvalidParameterError", err)
			}
		})
	}
}

func TestSmoothPreservesConstantGrid(t *testing.T) {
	values := make([]float64, 16)
	for i := range values {
		values[i] = 42
	}
	g := mustGrid(t, 4, 4, values)
	out, err := Smooth(g, 2, 1.0)
	if err != nil {
		t.Fatalf("Smooth failed: %v", err)
	}
	for i, v := range out.Values {
		if math.Abs(v-42) > 1e-9 {
			t.Errorf("Values[%d] = %g, want 42 (normalized kernel, mirrored edges)", i, v)
		}
	}
}

func TestSmoothKeepsShapeAndSpacing(t *testing.T) {
	g, err := NewGrid(3, 4, 30, 25, 7, -3, make([]float64, 12), DefaultNoData)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	out, err := Smooth(g, 1, 0.8)
	if err != nil {
		t.Fatalf("Smooth failed: %v", err)
	}
	if out.Rows != 3 || out.Cols != 4 || out.CellX != 30 || out.CellY != 25 {
		t.Errorf("smoothing changed grid geometry: %dx%d cell %gx%g", out.Rows, out.Cols, out.CellX, out.CellY)
	}
}

func TestSmoothFlattensPeak(t *testing.T) {
	g := mustGrid(t, 3, 3, []float64{
		0, 0, 0,
		0, 9, 0,
		0, 0, 0,
	})
	out, err := Smooth(g, 1, 1.0)
	if err != nil {
		t.Fatalf("Smooth failed: %v", err)
	}
	peak := out.At(1, 1)
	if peak >= 9 || peak <= 0 {
		t.Errorf("smoothed peak = %g, want strictly between 0 and 9", peak)
	}
	// Mass spreads symmetrically around the center.
	if math.Abs(out.At(0, 1)-out.At(2, 1)) > 1e-12 || math.Abs(out.At(1, 0)-out.At(1, 2)) > 1e-12 {
		t.Error("smoothing is not symmetric around the peak")
	}
}

func TestSmoothDeterministicAcrossRuns(t *testing.T) {
	values := make([]float64, 64*64)
	for i := range values {
		values[i] = float64((i*37)%101) * 3.25
	}
	g := mustGrid(t, 64, 64, values)
	a, err := Smooth(g, 3, 1.5)
	if err != nil {
		t.Fatalf("Smooth failed: %v", err)
	}
	b, err := Smooth(g, 3, 1.5)
	if err != nil {
		t.Fatalf("Smooth failed: %v", err)
	}
	for i := range a.Values {
		if a.Values[i] != b.Values[i] {
			t.Fatalf("parallel smoothing not deterministic at %d", i)
		}
	}
}

func TestReflectIndex(t *testing.T) {
	tests := []struct {
		idx, n, want int
	}{
		{-1, 5, 1},
		{-2, 5, 2},
		{5, 5, 3},
		{6, 5, 2},
		{2, 5, 2},
		{0, 5, 0},
		{0, 1, 0},
		{-3, 1, 0},
		{5, 1, 0},
	}
	for _, tt := range tests {
		if got := reflect(tt.idx, tt.n); got != tt.want {
			t.Errorf("reflect(%d, %d) = %d, want %d", tt.idx, tt.n, got, tt.want)
		}
	}
}
