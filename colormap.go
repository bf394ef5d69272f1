package viscm

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Coord is a coordinate in a perceptually uniform color space: a
// lightness-like channel L plus the two chroma-like channels taken from the
// control curve.
type Coord struct {
	L  float64
	C1 float64
	C2 float64
}

// RGB is a display color with channels nominally in [0, 1]. Out-of-gamut
// samples returned by [Colormap.Colors] have all three channels set to NaN.
type RGB struct {
	R float64
	G float64
	B float64
}

// IsNaN reports whether any channel is the out-of-gamut sentinel.
func (c RGB) IsNaN() bool {
	return math.IsNaN(c.R) || math.IsNaN(c.G) || math.IsNaN(c.B)
}

// ConvertFunc converts a perceptually uniform coordinate to a display
// color. Channels outside [0, 1] mark the coordinate as out of the display
// gamut; implementations must not clamp.
type ConvertFunc func(Coord) RGB

// LabToSRGB is the default [ConvertFunc]: it interprets the coordinate as
// CIE L*a*b* with L in [0, 100] and the chroma axes in roughly [−50, 50],
// and converts to linear-light-correct sRGB under D65 without clamping.
func LabToSRGB(c Coord) RGB {
	col := colorful.Lab(c.L/100, c.C1/100, c.C2/100)
	return RGB{R: col.R, G: col.G, B: col.B}
}

// Default lightness ramp bounds.
const (
	DefaultMinLightness = 15
	DefaultMaxLightness = 95
)

// defaultSamples is the dense table size per topology. The cyclic grid
// drops the closing sample, since position 1 wraps back onto position 0.
func defaultSamples(t Topology) int {
	switch t {
	case Diverging:
		return 511
	case Cyclic:
		return 510
	default:
		return 256
	}
}

// Config holds the construction-time options of a [Colormap]. The zero
// value selects the Bézier method, the default lightness ramp, the
// [LabToSRGB] conversion, and sensible numerical defaults.
type Config struct {
	// Method selects the spline evaluation algorithm.
	Method SplineMethod

	// MinLightness and MaxLightness bound the linear lightness ramp. If
	// both are zero the defaults 15 and 95 are used.
	MinLightness float64
	MaxLightness float64

	// Convert maps perceptual coordinates to display colors. Nil selects
	// [LabToSRGB].
	Convert ConvertFunc

	// Grid is the dense parameter grid resolution for arc length tables.
	// Zero selects 1000.
	Grid int

	// Samples is the size of the precomputed coordinate table. Zero
	// selects 256 for sequential, 511 for diverging, and 510 for cyclic
	// topology.
	Samples int

	// BalanceTolerance is how close to 1 the cyclic halves' length ratio
	// must come before balancing stops. Zero selects 1e−5.
	BalanceTolerance float64

	// BalanceMaxIters caps the cyclic balancing loop. Zero selects 64; a
	// negative value means zero iterations are allowed.
	BalanceMaxIters int
}

// Colormap derives perceptual coordinates and display colors from a
// [Store]. It holds no state of its own beyond a cached sample table that
// is invalidated whenever the store changes and recomputed lazily on the
// next read.
type Colormap struct {
	store   *Store
	curve   curveModel
	convert ConvertFunc
	minL    float64
	maxL    float64
	samples int

	trigger  trigger
	stale    bool
	table    []Coord
	tableErr error
}

// New builds a colormap model over store. Structural configuration
// problems (an unknown spline method, a negative sample count) are
// reported as errors; the caller must not use the model in that case.
func New(store *Store, cfg Config) (*Colormap, error) {
	switch cfg.Method {
	case Bezier, CatmullClark:
	default:
		return nil, fmt.Errorf("viscm: unknown spline method %d", int(cfg.Method))
	}
	if cfg.Samples < 0 {
		return nil, fmt.Errorf("viscm: negative sample count %d", cfg.Samples)
	}

	minL, maxL := cfg.MinLightness, cfg.MaxLightness
	if minL == 0 && maxL == 0 {
		minL, maxL = DefaultMinLightness, DefaultMaxLightness
	}
	convert := cfg.Convert
	if convert == nil {
		convert = LabToSRGB
	}
	grid := cfg.Grid
	if grid == 0 {
		grid = denseGrid
	}
	samples := cfg.Samples
	if samples == 0 {
		samples = defaultSamples(store.Topology())
	}

	cm := &Colormap{
		store:   store,
		convert: convert,
		minL:    minL,
		maxL:    maxL,
		samples: samples,
		stale:   true,
	}
	if store.Topology() == Sequential {
		cm.curve = &singleCurve{store: store, method: cfg.Method, grid: grid}
	} else {
		tol := cfg.BalanceTolerance
		if tol == 0 {
			tol = 1e-5
		}
		maxIter := cfg.BalanceMaxIters
		switch {
		case maxIter == 0:
			maxIter = 64
		case maxIter < 0:
			maxIter = 0
		}
		cm.curve = &dualCurve{store: store, method: cfg.Method, grid: grid, tol: tol, maxIter: maxIter}
	}
	store.Watch(cm.invalidate)
	return cm, nil
}

// Store returns the control point store the colormap derives from.
func (cm *Colormap) Store() *Store {
	return cm.store
}

// Watch registers a callback fired whenever the colormap's output may have
// changed, either because the store mutated or because the lightness ramp
// was reconfigured.
func (cm *Colormap) Watch(fn func()) {
	cm.trigger.watch(fn)
}

// LightnessBounds returns the current ramp bounds.
func (cm *Colormap) LightnessBounds() (minL, maxL float64) {
	return cm.minL, cm.maxL
}

// SetLightnessBounds reconfigures the lightness ramp and notifies
// watchers.
func (cm *Colormap) SetLightnessBounds(minL, maxL float64) {
	cm.minL = minL
	cm.maxL = maxL
	cm.invalidate()
}

func (cm *Colormap) invalidate() {
	cm.stale = true
	cm.trigger.fire()
}

// positions returns the normalized sample grid for the precomputed table.
func (cm *Colormap) positions() []float64 {
	if cm.store.Topology() == Cyclic {
		return linspaceOpen(0, 1, cm.samples)
	}
	return linspace(0, 1, cm.samples)
}

// lightness maps a normalized position to the ramp. For two-segment
// topologies the position is folded around the midpoint so both halves
// share the same lightness range, symmetric about the anchor(s).
func (cm *Colormap) lightness(pos float64) float64 {
	if cm.store.Topology() != Sequential {
		pos = math.Abs(1 - 2*pos)
	}
	return cm.minL + (cm.maxL-cm.minL)*pos
}

// refresh recomputes the coordinate table if a change invalidated it.
func (cm *Colormap) refresh() error {
	if !cm.stale {
		return cm.tableErr
	}
	at := cm.positions()
	pts, err := cm.curve.pointsAt(at)
	table := make([]Coord, len(pts))
	for i, p := range pts {
		table[i] = Coord{L: cm.lightness(at[i]), C1: p.X, C2: p.Y}
	}
	cm.table = table
	cm.tableErr = err
	cm.stale = false
	return err
}

// Coordinates returns the dense table of perceptual coordinates. For
// two-segment topologies a balancing diagnostic may be returned alongside
// best-effort coordinates; the table is still usable.
func (cm *Colormap) Coordinates() ([]Coord, error) {
	err := cm.refresh()
	out := make([]Coord, len(cm.table))
	copy(out, cm.table)
	return out, err
}

// Colors converts the coordinate table to display colors. The boolean mask
// marks out-of-gamut samples; their color channels are set to NaN rather
// than clamped, so renderers can make invalid regions visible.
func (cm *Colormap) Colors() ([]RGB, []bool, error) {
	err := cm.refresh()
	colors := make([]RGB, len(cm.table))
	oog := make([]bool, len(cm.table))
	nan := math.NaN()
	for i, c := range cm.table {
		v := cm.convert(c)
		if v.R < 0 || v.R > 1 || v.G < 0 || v.G > 1 || v.B < 0 || v.B > 1 {
			oog[i] = true
			v = RGB{R: nan, G: nan, B: nan}
		}
		colors[i] = v
	}
	return colors, oog, err
}

// At returns the perceptual coordinate at an arbitrary normalized position
// in [0, 1], by linear interpolation over the precomputed table. Meant for
// interactive single-point probes; it does not re-evaluate the curve.
func (cm *Colormap) At(pos float64) (Coord, error) {
	err := cm.refresh()
	n := len(cm.table)
	if n == 0 {
		return Coord{}, err
	}
	u := pos * float64(n-1)
	i := int(math.Floor(u))
	if i < 0 {
		return cm.table[0], err
	}
	if i >= n-1 {
		return cm.table[n-1], err
	}
	t := u - float64(i)
	a, b := cm.table[i], cm.table[i+1]
	return Coord{
		L:  a.L + t*(b.L-a.L),
		C1: a.C1 + t*(b.C1-a.C1),
		C2: a.C2 + t*(b.C2-a.C2),
	}, err
}

// AddPointNearest inserts a control point via [Store.InsertNearest], using
// the current lightness ramp direction to resolve the sentinel
// coordinates.
func (cm *Colormap) AddPointNearest(p Point) {
	cm.store.InsertNearest(p, cm.minL < cm.maxL)
}
