// Package viscm implements the numerical core of a perceptual colormap
// designer: smooth color gradients built from a small, editable set of 2D
// control points.
//
// A colormap is produced in four stages. A spline is fit through the control
// points, using either a classic Bézier curve over the whole polygon or a
// Catmull–Clark style corner-cutting subdivision (see [SplineMethod]). The
// spline is then reparameterized by arc length, so that equal steps along the
// colormap correspond to equal distances traveled along the curve. For
// two-sided colormap types — diverging and cyclic (see [Topology]) — the two
// curve segments meeting at the fixed anchor point(s) are balanced so that
// both have matched perceptual length. Finally each curve sample, interpreted
// as the chroma plane of a perceptually uniform color space, is combined with
// a linear lightness ramp and converted to a display color, flagging samples
// that fall outside the displayable gamut.
//
// # Models
//
// [Store] owns the control points. It is mutated in place by point editing
// operations and notifies watchers synchronously on every change. [Colormap]
// is a derived model: it subscribes to its store and lazily recomputes a
// dense table of perceptual coordinates on the next read after a change.
//
// Interactive front ends (point editors, plotting views, file import/export)
// are deliberately not part of this package. They consume the control point
// list plus change notifications on one side, and coordinate/color tables on
// the other.
//
// The default perceptual space is CIE L*a*b*, converted to sRGB with
// [github.com/lucasb-eyer/go-colorful]; any other perceptually uniform space
// can be plugged in through [ConvertFunc].
package viscm
