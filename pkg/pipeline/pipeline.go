// Package pipeline chains the terrain-to-mesh stages into one ordered,
// fail-fast run: normalize, optional smoothing, triangulation, solid
// closure, validation and STL serialization. Every stage is a pure
// function from an immutable input to a fresh output; the first stage
// error aborts the rest.
package pipeline

import (
	"time"

	"go.uber.org/zap"

	"github.com/svallejo/cordillera/pkg/mesh"
	"github.com/svallejo/cordillera/pkg/stl"
	"github.com/svallejo/cordillera/pkg/terrain"
	"github.com/svallejo/cordillera/pkg/validate"
)

// Options is the configuration surface the surrounding CLI hands to the
// core. All values are checked once at pipeline entry, before any stage
// runs.
type Options struct {
	VerticalScale    float64
	TargetResolution int

	SmoothingEnabled bool
	KernelRadius     int
	Sigma            float64

	// BaseZ pins the base plate elevation. Nil picks the default: the
	// lowest surface point minus the base margin.
	BaseZ *float64

	Limits validate.Limits

	// Logger receives per-stage progress. Nil means silent.
	Logger *zap.Logger
}

// DefaultOptions mirror the settings the desktop build ships with.
func DefaultOptions() Options {
	return Options{
		VerticalScale:    1.0,
		TargetResolution: 512,
		SmoothingEnabled: true,
		KernelRadius:     2,
		Sigma:            1.0,
		Limits:           validate.DefaultLimits(),
	}
}

// Validate rejects any option outside its documented domain.
func (o *Options) Validate() error {
	if o.VerticalScale <= 0 || o.VerticalScale > terrain.MaxVerticalScale {
		return &terrain.InvalidParameterError{Name: "verticalScale", Value: o.VerticalScale, Reason: "must be in (0, 10]"}
	}
	if o.TargetResolution < 2 {
		return &terrain.InvalidParameterError{Name: "targetResolution", Value: o.TargetResolution, Reason: "must be at least 2"}
	}
	if o.KernelRadius < 0 {
		return &terrain.InvalidParameterError{Name: "kernelRadius", Value: o.KernelRadius, Reason: "must not be negative"}
	}
	if o.Sigma <= 0 {
		return &terrain.InvalidParameterError{Name: "sigma", Value: o.Sigma, Reason: "must be positive"}
	}
	if o.Limits.MinWallThicknessMM <= 0 {
		return &terrain.InvalidParameterError{Name: "minWallThicknessMM", Value: o.Limits.MinWallThicknessMM, Reason: "must be positive"}
	}
	if o.Limits.MinDimensionMM <= 0 || o.Limits.MaxDimensionMM <= 0 {
		return &terrain.InvalidParameterError{Name: "dimensionMM", Value: o.Limits, Reason: "dimension bounds must be positive"}
	}
	if o.Limits.MinDimensionMM >= o.Limits.MaxDimensionMM {
		return &terrain.InvalidParameterError{Name: "dimensionMM", Value: o.Limits, Reason: "minimum dimension must be below maximum"}
	}
	return nil
}

// Result carries everything the last stage run produced. The final grid
// and solid are kept so callers can inspect or preview them.
type Result struct {
	Grid   *terrain.Grid
	Solid  *mesh.Mesh
	Report *validate.Report
	STL    []byte
}

// stageKind enumerates the fixed pipeline stages in execution order.
type stageKind int

const (
	stageNormalize stageKind = iota
	stageSmooth
	stageTriangulate
	stageClose
	stageValidate
	stageSerialize
)

func (k stageKind) String() string {
	switch k {
	case stageNormalize:
		return "normalize"
	case stageSmooth:
		return "smooth"
	case stageTriangulate:
		return "triangulate"
	case stageClose:
		return "close"
	case stageValidate:
		return "validate"
	case stageSerialize:
		return "serialize"
	default:
		return "unknown"
	}
}

// stage is one descriptor in the fixed pipeline: a kind, an enabled flag
// and the pure function it dispatches to.
type stage struct {
	kind    stageKind
	enabled bool
	run     func(*state) error
}

// state is the baton handed from stage to stage. Each stage replaces the
// fields it owns with freshly built values and never mutates inputs.
type state struct {
	grid    *terrain.Grid
	surface *mesh.Mesh
	loop    mesh.BoundaryLoop
	solid   *mesh.Mesh
	report  *validate.Report
	stlData []byte
}

// Run executes the pipeline on grid and returns the final solid, its
// validation report and the serialized STL bytes. Identical input and
// options always produce byte-identical STL output.
func Run(grid *terrain.Grid, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	stages := []stage{
		{kind: stageNormalize, enabled: true, run: func(s *state) error {
			out, err := terrain.Normalize(s.grid, opts.VerticalScale, opts.TargetResolution)
			if err != nil {
				return err
			}
			s.grid = out
			return nil
		}},
		{kind: stageSmooth, enabled: opts.SmoothingEnabled, run: func(s *state) error {
			out, err := terrain.Smooth(s.grid, opts.KernelRadius, opts.Sigma)
			if err != nil {
				return err
			}
			s.grid = out
			return nil
		}},
		{kind: stageTriangulate, enabled: true, run: func(s *state) error {
			surface, loop, err := mesh.Triangulate(s.grid)
			if err != nil {
				return err
			}
			s.surface, s.loop = surface, loop
			return nil
		}},
		{kind: stageClose, enabled: true, run: func(s *state) error {
			baseZ := mesh.DefaultBaseZ(s.surface)
			if opts.BaseZ != nil {
				baseZ = *opts.BaseZ
			}
			solid, err := mesh.Close(s.surface, s.loop, baseZ)
			if err != nil {
				return err
			}
			s.solid = solid
			s.surface, s.loop = nil, nil // closure owns the geometry now
			return nil
		}},
		{kind: stageValidate, enabled: true, run: func(s *state) error {
			s.report = validate.Validate(s.solid, opts.Limits)
			return nil
		}},
		{kind: stageSerialize, enabled: true, run: func(s *state) error {
			data, err := stl.Marshal(s.solid)
			if err != nil {
				return err
			}
			s.stlData = data
			return nil
		}},
	}

	s := &state{grid: grid}
	for _, st := range stages {
		if !st.enabled {
			log.Debug("stage skipped", zap.Stringer("stage", st.kind))
			continue
		}
		start := time.Now()
		if err := st.run(s); err != nil {
			log.Error("stage failed", zap.Stringer("stage", st.kind), zap.Error(err))
			return nil, err
		}
		log.Debug("stage done", zap.Stringer("stage", st.kind), zap.Duration("took", time.Since(start)))
	}

	return &Result{
		Grid:   s.grid,
		Solid:  s.solid,
		Report: s.report,
		STL:    s.stlData,
	}, nil
}
