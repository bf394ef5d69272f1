package viscm

// denseGrid is the default parameter grid resolution for arc length tables.
const denseGrid = 1000

// arcLengths evaluates the curve on a dense uniform parameter grid and
// returns the cumulative piecewise-linear arc length at each grid point.
// The first entry is always 0.
func arcLengths(method SplineMethod, pts []Point, grid int) []float64 {
	if grid < 2 {
		return []float64{0}
	}
	samples := evalSpline(method, pts, linspace(0, 1, grid))
	acc := make([]float64, len(samples))
	for i := 1; i < len(samples); i++ {
		acc[i] = acc[i-1] + samples[i].Distance(samples[i-1])
	}
	return acc
}

// totalArcLength returns the approximate length of the whole curve.
func totalArcLength(method SplineMethod, pts []Point, grid int) float64 {
	acc := arcLengths(method, pts, grid)
	return acc[len(acc)-1]
}

// reparameterize evaluates the curve at normalized arc-length positions.
//
// The raw curve parameter t does not vary linearly with distance traveled
// along the curve, so uniform steps in t bunch samples where the curve is
// slow. This builds the cumulative t → arclength table on a dense grid,
// normalizes it to [0, 1], inverts it by monotone interpolation, and
// evaluates the curve at the looked-up t values, so equal steps in at
// correspond to equal distances along the curve.
//
// An empty request returns an empty result. A curve of zero total length
// (all control points coincident) passes the positions through unscaled.
func reparameterize(method SplineMethod, pts []Point, at []float64, grid int) []Point {
	if len(at) == 0 {
		return nil
	}
	t := linspace(0, 1, grid)
	acc := arcLengths(method, pts, grid)
	total := acc[len(acc)-1]

	ts := make([]float64, len(at))
	if total == 0 {
		copy(ts, at)
	} else {
		for i := range acc {
			acc[i] /= total
		}
		for i, a := range at {
			ts[i] = interp(a, acc, t)
		}
	}
	return evalSpline(method, pts, ts)
}
