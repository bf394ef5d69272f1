package viscm

import "fmt"

// Topology is the colormap type. It is fixed when a [Store] is constructed
// and determines how many curve segments exist and how they share endpoints.
type Topology int

const (
	// Sequential is a single curve with no fixed points.
	Sequential Topology = iota
	// Diverging has a single fixed interior point splitting the control
	// polygon into two curve segments that share that one point.
	Diverging
	// Cyclic has two fixed points splitting the control polygon into two
	// segments that share both endpoints. The polygon is logically closed:
	// the last point connects back to the first.
	Cyclic
)

func (t Topology) String() string {
	switch t {
	case Sequential:
		return "sequential"
	case Diverging:
		return "diverging"
	case Cyclic:
		return "cyclic"
	default:
		return fmt.Sprintf("Topology(%d)", int(t))
	}
}

// anchorCount returns how many fixed point indices the topology requires.
func (t Topology) anchorCount() int {
	switch t {
	case Diverging:
		return 1
	case Cyclic:
		return 2
	default:
		return 0
	}
}

// ParseTopology maps a topology tag to its [Topology]. Unknown tags are a
// configuration error and must not be used to build a model.
func ParseTopology(tag string) (Topology, error) {
	switch tag {
	case "sequential":
		return Sequential, nil
	case "diverging":
		return Diverging, nil
	case "cyclic":
		return Cyclic, nil
	default:
		return 0, fmt.Errorf("viscm: unknown topology %q", tag)
	}
}

// SplineMethod selects the curve evaluation algorithm. The choice is fixed
// when a [Colormap] is constructed; changing methods means rebuilding the
// model.
type SplineMethod int

const (
	// Bezier evaluates a single polynomial Bézier curve of degree n−1 over
	// all n control points, via the Bernstein basis. Numerically naive for
	// large n, which is fine for the small control polygons in play.
	Bezier SplineMethod = iota
	// CatmullClark evaluates by corner-cutting subdivision: the point count
	// is repeatedly doubled with 1/4–3/4 blends until it covers the
	// requested sample count, then resampled linearly. The result is C¹
	// continuous and hugs the control polygon more closely than the Bézier.
	CatmullClark
)

func (m SplineMethod) String() string {
	switch m {
	case Bezier:
		return "bezier"
	case CatmullClark:
		return "catmull-clark"
	default:
		return fmt.Sprintf("SplineMethod(%d)", int(m))
	}
}

// ParseSplineMethod maps a method tag to its [SplineMethod]. Unknown tags
// are a configuration error.
func ParseSplineMethod(tag string) (SplineMethod, error) {
	switch tag {
	case "bezier":
		return Bezier, nil
	case "catmull-clark":
		return CatmullClark, nil
	default:
		return 0, fmt.Errorf("viscm: unknown spline method %q", tag)
	}
}
