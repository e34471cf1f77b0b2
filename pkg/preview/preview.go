// Package preview renders solids to PNG images for quick visual inspection
// before printing.
package preview

import (
	"image"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"

	"github.com/svallejo/cordillera/pkg/mesh"
)

// Options controls the rendered view.
type Options struct {
	Width  int
	Height int

	// Supersample renders at a multiple of the output size and downsamples
	// for antialiasing. Values below 1 are treated as 1.
	Supersample int

	Background string // hex color
	Surface    string // hex color
}

// DefaultOptions returns a landscape view with mild antialiasing.
func DefaultOptions() Options {
	return Options{
		Width:       1024,
		Height:      768,
		Supersample: 2,
		Background:  "#FFF8E3",
		Surface:     "#8C6646",
	}
}

// Render draws the solid from an isometric viewpoint with z up.
func Render(m *mesh.Mesh, opts Options) image.Image {
	scale := opts.Supersample
	if scale < 1 {
		scale = 1
	}

	const (
		fovy = 30 // vertical field of view in degrees
		near = 1
		far  = 10
	)

	var (
		eye    = fauxgl.V(2.0, -2.0, 1.4) // camera position
		center = fauxgl.V(0, 0, 0)        // view center position
		up     = fauxgl.V(0, 0, 1)        // z is elevation
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)

	fm := toFauxgl(m)
	// fit mesh in a bi-unit cube centered at the origin
	fm.BiUnitCube()

	context := fauxgl.NewContext(opts.Width*scale, opts.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor(opts.Background))

	aspect := float64(opts.Width) / float64(opts.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, near, far)

	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor(opts.Surface)
	context.Shader = shader
	context.DrawMesh(fm)

	img := context.Image()
	if scale > 1 {
		// downsample for antialiasing
		img = resize.Resize(uint(opts.Width), uint(opts.Height), img, resize.Bilinear)
	}
	return img
}

// Save renders the solid and writes it as a PNG file.
func Save(path string, m *mesh.Mesh, opts Options) error {
	return fauxgl.SavePNG(path, Render(m, opts))
}

func toFauxgl(m *mesh.Mesh) *fauxgl.Mesh {
	tris := make([]*fauxgl.Triangle, 0, len(m.Triangles))
	for _, t := range m.Triangles {
		a := m.Vertices[t[0]]
		b := m.Vertices[t[1]]
		c := m.Vertices[t[2]]
		tris = append(tris, fauxgl.NewTriangleForPoints(
			fauxgl.V(a.X, a.Y, a.Z),
			fauxgl.V(b.X, b.Y, b.Z),
			fauxgl.V(c.X, c.Y, c.Z),
		))
	}
	return fauxgl.NewTriangleMesh(tris)
}
