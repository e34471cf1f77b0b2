package terrain

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Smooth applies a separable Gaussian blur to the elevation values: one 1D
// pass along rows, then one along columns. The perimeter is handled by
// mirror reflection so the grid keeps its extent without edge artifacts.
// kernelRadius zero is an identity pass. Grid dimensions, spacing and the
// validity mask are unchanged; the input grid is not modified.
//
// Rows and columns are filtered in parallel. Each output cell depends only
// on the input snapshot, so the result is identical for any worker count.
func Smooth(g *Grid, kernelRadius int, sigma float64) (*Grid, error) {
	if kernelRadius < 0 {
		return nil, &InvalidParameterError{Name: "kernelRadius", Value: kernelRadius, Reason: "must not be negative"}
	}
	if sigma <= 0 || math.IsNaN(sigma) {
		return nil, &InvalidParameterError{Name: "sigma", Value: sigma, Reason: "must be positive"}
	}
	if kernelRadius == 0 {
		return g.clone(), nil
	}

	kernel := gaussianKernel(kernelRadius, sigma)

	out := g.clone()
	tmp := make([]float64, len(g.Values))
	convolveRows(g.Values, tmp, g.Rows, g.Cols, kernel)
	convolveCols(tmp, out.Values, g.Rows, g.Cols, kernel)
	return out, nil
}

// gaussianKernel returns the normalized symmetric kernel of the given
// radius, indexed from -radius..radius as kernel[offset+radius].
func gaussianKernel(radius int, sigma float64) []float64 {
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		w := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = w
		sum += w
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// reflect mirrors an out-of-range index back into [0, n) without repeating
// the edge sample. Kernels wider than the grid keep folding. A single-sample
// axis has nothing to mirror against, so every index maps to it.
func reflect(idx, n int) int {
	if n == 1 {
		return 0
	}
	for idx < 0 || idx >= n {
		if idx < 0 {
			idx = -idx
		}
		if idx >= n {
			idx = 2*n - 2 - idx
		}
	}
	return idx
}

func convolveRows(src, dst []float64, rows, cols int, kernel []float64) {
	radius := len(kernel) / 2
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < rows; i++ {
		in := src[i*cols : (i+1)*cols]
		out := dst[i*cols : (i+1)*cols]
		eg.Go(func() error {
			for j := 0; j < cols; j++ {
				acc := 0.0
				for k := -radius; k <= radius; k++ {
					acc += kernel[k+radius] * in[reflect(j+k, cols)]
				}
				out[j] = acc
			}
			return nil
		})
	}
	// Workers never fail; the group is used only to bound and join them.
	_ = eg.Wait()
}

func convolveCols(src, dst []float64, rows, cols int, kernel []float64) {
	radius := len(kernel) / 2
	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for j := 0; j < cols; j++ {
		j := j
		eg.Go(func() error {
			for i := 0; i < rows; i++ {
				acc := 0.0
				for k := -radius; k <= radius; k++ {
					acc += kernel[k+radius] * src[reflect(i+k, rows)*cols+j]
				}
				dst[i*cols+j] = acc
			}
			return nil
		})
	}
	_ = eg.Wait()
}
