package viscm

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestArcLengthsCumulative(t *testing.T) {
	pts := testPolygons[1]
	for _, method := range []SplineMethod{Bezier, CatmullClark} {
		acc := arcLengths(method, pts, denseGrid)
		if len(acc) != denseGrid {
			t.Fatalf("%v: got %d entries, want %d", method, len(acc), denseGrid)
		}
		if acc[0] != 0 {
			t.Errorf("%v: cumulative length starts at %v, want 0", method, acc[0])
		}
		for i := 1; i < len(acc); i++ {
			if acc[i] < acc[i-1] {
				t.Fatalf("%v: cumulative length decreases at %d", method, i)
			}
		}
		if acc[len(acc)-1] <= 0 {
			t.Errorf("%v: total length %v, want > 0", method, acc[len(acc)-1])
		}
	}
}

func TestArcLengthLineExact(t *testing.T) {
	// A straight chord has arc length equal to the endpoint distance, and
	// the piecewise-linear approximation is exact on it.
	pts := []Point{Pt(0, 0), Pt(3, 4)}
	for _, method := range []SplineMethod{Bezier, CatmullClark} {
		if got := totalArcLength(method, pts, denseGrid); math.Abs(got-5) > 1e-9 {
			t.Errorf("%v: length %v, want 5", method, got)
		}
	}
}

func TestReparameterizeUniformSpacing(t *testing.T) {
	// After reparameterization, equal position steps travel equal
	// distances along the curve.
	pts := testPolygons[1]
	for _, method := range []SplineMethod{Bezier, CatmullClark} {
		samples := reparameterize(method, pts, linspace(0, 1, 64), denseGrid)
		var dists []float64
		for i := 1; i < len(samples); i++ {
			dists = append(dists, samples[i].Distance(samples[i-1]))
		}
		mean := 0.0
		for _, d := range dists {
			mean += d
		}
		mean /= float64(len(dists))
		for i, d := range dists {
			if math.Abs(d-mean) > 0.05*mean {
				t.Errorf("%v: step %d has length %v, mean is %v", method, i, d, mean)
			}
		}
	}
}

func TestReparameterizeIdempotent(t *testing.T) {
	pts := testPolygons[1]
	at := []float64{0, 0.1, 0.33, 0.5, 0.9, 1}
	for _, method := range []SplineMethod{Bezier, CatmullClark} {
		first := reparameterize(method, pts, at, denseGrid)
		second := reparameterize(method, pts, at, denseGrid)
		diff(t, first, second)
	}
}

func TestReparameterizeEndpoints(t *testing.T) {
	for _, method := range []SplineMethod{Bezier, CatmullClark} {
		for _, pts := range testPolygons {
			got := reparameterize(method, pts, []float64{0, 1}, denseGrid)
			diff(t, pts[0], got[0])
			diff(t, pts[len(pts)-1], got[1])
		}
	}
}

func TestReparameterizeEmpty(t *testing.T) {
	got := reparameterize(CatmullClark, testPolygons[1], nil, denseGrid)
	if len(got) != 0 {
		t.Errorf("got %d samples for an empty request", len(got))
	}
}

func TestReparameterizeDegenerate(t *testing.T) {
	// All control points coincident: the curve has zero length, and the
	// request must still produce well-defined samples.
	pts := []Point{Pt(3, 3), Pt(3, 3), Pt(3, 3)}
	for _, method := range []SplineMethod{Bezier, CatmullClark} {
		got := reparameterize(method, pts, linspace(0, 1, 5), denseGrid)
		for _, p := range got {
			diff(t, Pt(3, 3), p, cmpopts.EquateApprox(0, 1e-9))
		}
	}
}
