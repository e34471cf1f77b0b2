package heightmap

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/svallejo/cordillera/pkg/terrain"
)

func grayRamp(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / (w - 1))})
		}
	}
	return img
}

func TestFromImageLuminanceMapping(t *testing.T) {
	opts := DefaultOptions()
	opts.MinHeight = 100
	opts.MaxHeight = 600

	g, err := FromImage(grayRamp(5, 3), opts)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if g.Rows != 3 || g.Cols != 5 {
		t.Fatalf("grid shape = %dx%d, want 3x5", g.Rows, g.Cols)
	}
	if got := g.Values[0]; got != 100 {
		t.Errorf("black pixel elevation = %g, want 100", got)
	}
	last := g.Values[4]
	if last < 599 || last > 600 {
		t.Errorf("white pixel elevation = %g, want ~600", last)
	}
	// Monotone left to right on every row.
	for y := 0; y < g.Rows; y++ {
		for x := 1; x < g.Cols; x++ {
			if g.Values[y*g.Cols+x] < g.Values[y*g.Cols+x-1] {
				t.Fatalf("row %d not monotone at col %d", y, x)
			}
		}
	}
}

func TestFromImageTransparentIsNoData(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}
	img.SetNRGBA(1, 1, color.NRGBA{}) // fully transparent center

	g, err := FromImage(img, DefaultOptions())
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if g.Valid[4] {
		t.Error("transparent pixel should be marked invalid")
	}
	for i, ok := range g.Valid {
		if i != 4 && !ok {
			t.Errorf("opaque pixel %d marked invalid", i)
		}
	}
}

func TestFromImageRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"inverted height range", func(o *Options) { o.MaxHeight = o.MinHeight }},
		{"zero cell size", func(o *Options) { o.CellSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			_, err := FromImage(grayRamp(4, 4), opts)
			var perr *terrain.InvalidParameterError
			if !errors.As(err, &perr) {
				t.Fatalf("FromImage error = %v, want InvalidParameterError", err)
			}
		})
	}
}

func TestFromImageDownscalesLargeInput(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxInputSize = 16

	g, err := FromImage(grayRamp(64, 32), opts)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if g.Cols != 16 {
		t.Errorf("cols = %d, want 16", g.Cols)
	}
	if g.Rows != 8 {
		t.Errorf("rows = %d, want 8", g.Rows)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ramp.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating file: %v", err)
	}
	if err := png.Encode(f, grayRamp(8, 8)); err != nil {
		t.Fatalf("encoding png: %v", err)
	}
	f.Close()

	g, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if g.Rows != 8 || g.Cols != 8 {
		t.Errorf("grid shape = %dx%d, want 8x8", g.Rows, g.Cols)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/dem.png", DefaultOptions()); err == nil {
		t.Error("expected error for missing file")
	}
}
