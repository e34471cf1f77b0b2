// Package terrain defines the elevation grid model and the grid-level
// pipeline stages: no-data repair, vertical exaggeration, stride
// decimation and Gaussian smoothing. Every stage returns a freshly
// allocated grid and leaves its input untouched.
package terrain
