package viscm

import (
	"math"
	"sort"
)

// evalSpline evaluates the curve defined by the control polygon at the given
// parameter values, which normally but not necessarily lie in [0, 1]. Both
// methods interpolate the polygon's endpoints exactly: t=0 yields the first
// control point and t=1 the last. The output has one point per parameter.
func evalSpline(method SplineMethod, pts []Point, at []float64) []Point {
	switch method {
	case Bezier:
		return evalBezier(pts, at)
	case CatmullClark:
		return evalSubdivision(pts, at)
	default:
		panic("viscm: unknown spline method")
	}
}

// evalBezier evaluates the degree n−1 Bézier curve through all n control
// points via the Bernstein basis.
func evalBezier(pts []Point, at []float64) []Point {
	n := len(pts) - 1
	coef := binomialRow(n)
	out := make([]Point, len(at))
	for k, t := range at {
		var x, y float64
		for i, p := range pts {
			w := coef[i] * math.Pow(t, float64(i)) * math.Pow(1-t, float64(n-i))
			x += w * p.X
			y += w * p.Y
		}
		out[k] = Pt(x, y)
	}
	return out
}

// binomialRow returns row n of Pascal's triangle as floats. The iterative
// product avoids factorial overflow, though the polygons here are small
// enough that it hardly matters.
func binomialRow(n int) []float64 {
	row := make([]float64, n+1)
	row[0] = 1
	for i := 1; i <= n; i++ {
		row[i] = row[i-1] * float64(n-i+1) / float64(i)
	}
	return row
}

// evalSubdivision evaluates by corner-cutting: the polygon is doubled with
// 1/4–3/4 blends of each consecutive pair (endpoints preserved) until it has
// at least as many points as requested samples, then the x and y series are
// independently resampled against a uniform [0, 1] index grid.
func evalSubdivision(pts []Point, at []float64) []Point {
	for len(pts) < len(at) {
		next := make([]Point, 2*len(pts))
		next[0] = pts[0]
		next[len(next)-1] = pts[len(pts)-1]
		for i := 0; i < len(pts)-1; i++ {
			next[1+2*i] = pts[i].Lerp(pts[i+1], 0.25)
			next[2+2*i] = pts[i].Lerp(pts[i+1], 0.75)
		}
		pts = next
	}

	grid := linspace(0, 1, len(pts))
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		ys[i] = p.Y
	}
	out := make([]Point, len(at))
	for i, t := range at {
		out[i] = Pt(interp(t, grid, xs), interp(t, grid, ys))
	}
	return out
}

// linspace returns n evenly spaced values from lo to hi inclusive.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	// Land on hi exactly, despite rounding in step.
	out[n-1] = hi
	return out
}

// linspaceOpen returns n evenly spaced values from lo up to but excluding
// hi, for sample grids over logically closed curves.
func linspaceOpen(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// interp looks up x in the monotone non-decreasing series xs and linearly
// interpolates the corresponding ys value. Outside the range of xs the
// nearest end value is returned.
func interp(x float64, xs, ys []float64) float64 {
	if x <= xs[0] {
		return ys[0]
	}
	n := len(xs)
	if x >= xs[n-1] {
		return ys[n-1]
	}
	// First index with xs[j] >= x; xs[j-1] < x is then guaranteed.
	j := sort.SearchFloat64s(xs, x)
	if xs[j] == x {
		return ys[j]
	}
	i := j - 1
	t := (x - xs[i]) / (xs[j] - xs[i])
	return ys[i] + t*(ys[j]-ys[i])
}
