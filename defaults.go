package viscm

// DefaultControlPoints returns the seed control polygon and anchor indices
// for a fresh editing session with the given method and topology. The
// polygons differ per method because the two splines pull toward the
// polygon with different strength; each pair yields a reasonable in-gamut
// starting colormap under the default lightness ramp.
func DefaultControlPoints(method SplineMethod, topology Topology) ([]Point, []int) {
	var pts []Point
	switch method {
	case Bezier:
		switch topology {
		case Sequential:
			pts = []Point{
				Pt(-2.0591553836234482, -25.664893617021221),
				Pt(59.377014829142524, -21.941489361702082),
				Pt(43.552546744036135, 38.874113475177353),
				Pt(4.7670857511283202, 20.567375886524871),
				Pt(-9.5059638942617539, 32.047872340425585),
			}
		default:
			pts = []Point{
				Pt(-9, -5), Pt(-15, 20), Pt(43, 20), Pt(30, -21),
				Pt(0, 0),
				Pt(-20, 21), Pt(-30, -38), Pt(20, -20), Pt(1, -5),
			}
		}
	default:
		switch topology {
		case Sequential:
			pts = []Point{
				Pt(-2, -25), Pt(20, -21), Pt(23, 18), Pt(5, 10), Pt(-9, 12),
			}
		default:
			pts = []Point{
				Pt(-9, -5), Pt(-15, -8), Pt(-10, -20), Pt(0, -10),
				Pt(0, 0),
				Pt(5, 2), Pt(10, 8), Pt(15, 15), Pt(2, 5),
			}
		}
	}

	switch topology {
	case Diverging:
		return pts, []int{4}
	case Cyclic:
		return pts, []int{0, 4}
	default:
		return pts, nil
	}
}
