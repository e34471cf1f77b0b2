// Package heightmap converts grayscale heightmap images into elevation grids.
package heightmap

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/nfnt/resize"

	"github.com/svallejo/cordillera/pkg/terrain"
)

// Options controls how pixel luminance maps to elevation.
type Options struct {
	// CellSize is the ground distance between adjacent samples.
	CellSize float64

	// MinHeight and MaxHeight bound the elevation range: black pixels map
	// to MinHeight, white pixels to MaxHeight.
	MinHeight float64
	MaxHeight float64

	// NoData is the sentinel stored for fully transparent pixels.
	NoData float64

	// MaxInputSize caps the decoded image size before sampling. Larger
	// images are downscaled with Lanczos resampling. Zero disables the cap.
	MaxInputSize int
}

// DefaultOptions returns a mapping suitable for typical 8-bit heightmaps.
func DefaultOptions() Options {
	return Options{
		CellSize:  1.0,
		MinHeight: 0,
		MaxHeight: 1000,
		NoData:    terrain.DefaultNoData,
	}
}

// Load decodes the image at path and converts it to an elevation grid.
func Load(path string, opts Options) (*terrain.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening heightmap: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding heightmap %s: %w", path, err)
	}
	return FromImage(img, opts)
}

// FromImage converts a decoded image to an elevation grid. Luminance maps
// linearly onto [MinHeight, MaxHeight]; fully transparent pixels become
// no-data samples.
func FromImage(img image.Image, opts Options) (*terrain.Grid, error) {
	if opts.MaxHeight <= opts.MinHeight {
		return nil, &terrain.InvalidParameterError{
			Name:   "maxHeight",
			Value:  opts.MaxHeight,
			Reason: "must exceed minHeight",
		}
	}
	if opts.CellSize <= 0 {
		return nil, &terrain.InvalidParameterError{
			Name:   "cellSize",
			Value:  opts.CellSize,
			Reason: "must be positive",
		}
	}

	img = capSize(img, opts.MaxInputSize)

	bounds := img.Bounds()
	cols := bounds.Dx()
	rows := bounds.Dy()

	values := make([]float64, rows*cols)
	span := opts.MaxHeight - opts.MinHeight
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			r, g, b, a := c.RGBA()
			if a == 0 {
				values[y*cols+x] = opts.NoData
				continue
			}
			// ITU-R BT.601 luma over 16-bit channels.
			luma := (299*float64(r) + 587*float64(g) + 114*float64(b)) / 1000 / 65535
			values[y*cols+x] = opts.MinHeight + luma*span
		}
	}

	return terrain.NewGrid(rows, cols, opts.CellSize, opts.CellSize, 0, 0, values, opts.NoData)
}

// capSize downscales img so neither axis exceeds max, preserving aspect.
func capSize(img image.Image, max int) image.Image {
	if max <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= max && b.Dy() <= max {
		return img
	}
	if b.Dx() >= b.Dy() {
		return resize.Resize(uint(max), 0, img, resize.Lanczos3)
	}
	return resize.Resize(0, uint(max), img, resize.Lanczos3)
}
