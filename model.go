package viscm

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

// ErrBalance reports that cyclic curve balancing hit its iteration cap
// before the two halves' arc lengths matched. The samples returned
// alongside it are the best effort of the last iteration.
var ErrBalance = errors.New("viscm: curve balancing did not converge")

// curveModel maps normalized arc-length positions in [0, 1] to curve
// points. The single- and dual-segment variants are chosen by topology.
type curveModel interface {
	pointsAt(at []float64) ([]Point, error)
}

// singleCurve evaluates the whole control polygon as one arc-length
// reparameterized curve. Used for sequential topology.
type singleCurve struct {
	store  *Store
	method SplineMethod
	grid   int
}

func (c *singleCurve) pointsAt(at []float64) ([]Point, error) {
	pts, _ := c.store.Points()
	return reparameterize(c.method, pts, at, c.grid), nil
}

// dualCurve splits the control polygon at its anchors into a low and a high
// half, balances their perceptual lengths, and reparameterizes each half
// independently. Positions below 0.5 address the low half, positions at or
// above 0.5 the high half; the output concatenates low-half samples before
// high-half samples.
type dualCurve struct {
	store   *Store
	method  SplineMethod
	grid    int
	tol     float64
	maxIter int
}

// split returns the two halves of the control polygon. In the diverging
// case they share the single anchor; in the cyclic case the high half wraps
// around the closed polygon so both halves share both anchors.
func (c *dualCurve) split() (low, high []Point) {
	pts, fixed := c.store.Points()
	if c.store.Topology() == Diverging {
		f := fixed[0]
		return pts[:f+1], pts[f:]
	}
	f0, f1 := fixed[0], fixed[1]
	low = pts[f0 : f1+1]
	high = append(slices.Clone(pts[f1:]), pts[:f0+1]...)
	return low, high
}

func (c *dualCurve) pointsAt(at []float64) ([]Point, error) {
	low, high := c.split()

	var lowAt, highAt []float64
	for _, a := range at {
		if a < 0.5 {
			lowAt = append(lowAt, a)
		} else {
			highAt = append(highAt, a)
		}
	}

	lowLen := totalArcLength(c.method, low, c.grid)
	highLen := totalArcLength(c.method, high, c.grid)
	sf := scaleFactor(lowLen, highLen)

	var err error
	if c.store.Topology() == Diverging {
		// The halves share only one point, so there is no center to scale
		// geometry toward. Instead the sampling domain of the longer half
		// is compressed by sf, stretching its sample density to match the
		// shorter half.
		if highLen < lowLen {
			for i, a := range highAt {
				highAt[i] = a*2 - 1
			}
			for i, a := range lowAt {
				lowAt[i] = (0.5 - (0.5-a)*sf) * 2
			}
		} else {
			for i, a := range highAt {
				highAt[i] = (0.5+(a-0.5)*sf)*2 - 1
			}
			for i, a := range lowAt {
				lowAt[i] = a * 2
			}
		}
	} else {
		low, high, err = c.balance(low, high, lowLen, highLen, sf)
		for i, a := range highAt {
			highAt[i] = a*2 - 1
		}
		for i, a := range lowAt {
			lowAt[i] = a * 2
		}
	}

	out := reparameterize(c.method, low, lowAt, c.grid)
	out = append(out, reparameterize(c.method, high, highAt, c.grid)...)
	return out, err
}

// balance equalizes the two halves of a cyclic polygon geometrically:
// interior points of the longer half are scaled toward the midpoint of the
// two anchors until the length ratio is within tol of 1. Shrinking the
// longer half lowers the ratio target monotonically, so the loop converges;
// the iteration cap only guards degenerate polygons.
func (c *dualCurve) balance(low, high []Point, lowLen, highLen, sf float64) ([]Point, []Point, error) {
	low = slices.Clone(low)
	high = slices.Clone(high)
	mid := low[0].Midpoint(low[len(low)-1])
	for iter := 0; !(math.Abs(sf-1) <= c.tol); iter++ {
		if iter >= c.maxIter {
			return low, high, fmt.Errorf("%w after %d iterations (scale factor %v)", ErrBalance, c.maxIter, sf)
		}
		longer := high
		if highLen < lowLen {
			longer = low
		}
		for i := 1; i < len(longer)-1; i++ {
			longer[i] = mid.Lerp(longer[i], sf)
		}
		lowLen = totalArcLength(c.method, low, c.grid)
		highLen = totalArcLength(c.method, high, c.grid)
		sf = scaleFactor(lowLen, highLen)
	}
	return low, high, nil
}

func scaleFactor(lowLen, highLen float64) float64 {
	return math.Min(lowLen, highLen) / math.Max(lowLen, highLen)
}
