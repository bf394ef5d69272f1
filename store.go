package viscm

import (
	"fmt"
	"math"
	"slices"
)

// Sentinel coordinates recognized by [Store.InsertNearest]. Editors send
// these to request placement at the dark or light end of the colormap
// instead of at a literal location.
var (
	DarkSentinel  = Pt(0, 0)
	LightSentinel = Pt(-1.91200895, -1.15144878)
)

// chordSamples is how densely each chord of the control polygon is sampled
// when searching for the nearest insertion segment.
const chordSamples = 100

// anchorSet tracks the fixed control point indices across structural
// mutations of the point sequence. Diverging topologies carry one anchor,
// cyclic topologies two (ascending); sequential topologies carry none.
type anchorSet struct {
	idx [2]int
	n   int
}

func (a *anchorSet) contains(i int) bool {
	for _, f := range a.idx[:a.n] {
		if f == i {
			return true
		}
	}
	return false
}

// insertAt shifts anchors for a point inserted at index i.
func (a *anchorSet) insertAt(i int) {
	for j, f := range a.idx[:a.n] {
		if i <= f {
			a.idx[j] = f + 1
		}
	}
}

// removeAt shifts anchors for a point removed from index i. Removing an
// anchor itself is forbidden upstream.
func (a *anchorSet) removeAt(i int) {
	for j, f := range a.idx[:a.n] {
		if i < f {
			a.idx[j] = f - 1
		}
	}
}

func (a *anchorSet) indices() []int {
	if a.n == 0 {
		return nil
	}
	return slices.Clone(a.idx[:a.n])
}

// Store owns the ordered control point sequence of one editing session,
// together with the colormap topology and the fixed anchor indices the
// topology requires. All mutating operations notify watchers synchronously
// before returning.
type Store struct {
	points   []Point
	anchors  anchorSet
	topology Topology
	locked   bool
	trigger  trigger
}

// NewStore validates and builds a control point store. points must hold at
// least two entries; fixed must name exactly the anchor indices the topology
// requires: none for [Sequential], one interior index for [Diverging], two
// ascending in-range indices for [Cyclic].
func NewStore(topology Topology, points []Point, fixed ...int) (*Store, error) {
	switch topology {
	case Sequential, Diverging, Cyclic:
	default:
		return nil, fmt.Errorf("viscm: unknown topology %d", int(topology))
	}
	if len(points) < 2 {
		return nil, fmt.Errorf("viscm: control polygon needs at least 2 points, got %d", len(points))
	}
	if len(fixed) != topology.anchorCount() {
		return nil, fmt.Errorf("viscm: topology %v needs %d fixed indices, got %d",
			topology, topology.anchorCount(), len(fixed))
	}
	s := &Store{
		points:   slices.Clone(points),
		topology: topology,
		locked:   true,
	}
	switch topology {
	case Diverging:
		f := fixed[0]
		if f <= 0 || f >= len(points)-1 {
			return nil, fmt.Errorf("viscm: diverging fixed index %d is not interior to %d points", f, len(points))
		}
		s.anchors = anchorSet{idx: [2]int{f}, n: 1}
	case Cyclic:
		f0, f1 := fixed[0], fixed[1]
		if f0 < 0 || f1 >= len(points) || f0 >= f1 {
			return nil, fmt.Errorf("viscm: cyclic fixed indices (%d, %d) invalid for %d points", f0, f1, len(points))
		}
		s.anchors = anchorSet{idx: [2]int{f0, f1}, n: 2}
	}
	return s, nil
}

// Topology returns the colormap type the store was built with.
func (s *Store) Topology() Topology {
	return s.topology
}

// Len returns the number of control points.
func (s *Store) Len() int {
	return len(s.points)
}

// Points returns a copy of the control point sequence plus the fixed anchor
// indices (nil for sequential, one index for diverging, two for cyclic).
// For cyclic topology the sequence is implicitly closed: the first point
// conceptually repeats after the last when the curve is evaluated.
func (s *Store) Points() ([]Point, []int) {
	return slices.Clone(s.points), s.anchors.indices()
}

// Watch registers a change callback. Every mutation fires all callbacks in
// registration order before returning.
func (s *Store) Watch(fn func()) {
	s.trigger.watch(fn)
}

// SetLocked toggles whether anchor points refuse [Store.MovePoint]. Stores
// start locked; editors unlock temporarily for deliberate anchor drags.
func (s *Store) SetLocked(locked bool) {
	s.locked = locked
}

// AddPoint inserts p at index i, shifting later points and any anchors at or
// after i. The index is the caller's responsibility and is not range
// checked here.
func (s *Store) AddPoint(i int, p Point) {
	s.points = slices.Insert(s.points, i, p)
	s.anchors.insertAt(i)
	s.trigger.fire()
}

// RemovePoint deletes the point at index i. Anchor points are never
// removed; the call is a silent no-op for them.
func (s *Store) RemovePoint(i int) {
	if s.anchors.contains(i) {
		return
	}
	s.points = slices.Delete(s.points, i, i+1)
	s.anchors.removeAt(i)
	s.trigger.fire()
}

// MovePoint overwrites the coordinates of the point at index i. Moving an
// anchor while the store is locked is a silent no-op.
func (s *Store) MovePoint(i int, p Point) {
	if s.locked && s.anchors.contains(i) {
		return
	}
	s.points[i] = p
	s.trigger.fire()
}

// SetPoints bulk-replaces the point sequence and anchors, with the same
// validation as [NewStore]. Used for programmatic reconfiguration; on error
// the store is unchanged and no notification fires.
func (s *Store) SetPoints(points []Point, fixed ...int) error {
	next, err := NewStore(s.topology, points, fixed...)
	if err != nil {
		return err
	}
	s.points = next.points
	s.anchors = next.anchors
	s.trigger.fire()
	return nil
}

// InsertNearest places p relative to the existing polygon. [DarkSentinel]
// and [LightSentinel] request the minimum- and maximum-lightness ends:
// sequential stores insert at the corresponding end of the sequence
// (ascending says whether lightness rises with index), while diverging and
// cyclic stores overwrite the matching anchor's coordinates in place. Any
// other coordinate is inserted after the nearest point of the nearest chord
// between consecutive control points (including the closing chord for
// cyclic topology).
func (s *Store) InsertNearest(p Point, ascending bool) {
	switch p {
	case DarkSentinel:
		s.insertSentinel(p, 0, ascending)
	case LightSentinel:
		s.insertSentinel(p, 1, ascending)
	default:
		s.AddPoint(s.nearestChordIndex(p), p)
	}
}

func (s *Store) insertSentinel(p Point, end int, ascending bool) {
	if s.topology != Sequential {
		i := s.anchors.idx[min(end, s.anchors.n-1)]
		s.points[i] = p
		s.trigger.fire()
		return
	}
	at := 0
	if (end == 1) == ascending {
		at = len(s.points)
	}
	s.AddPoint(at, p)
}

func (s *Store) nearestChordIndex(p Point) int {
	chords := len(s.points) - 1
	if s.topology == Cyclic {
		chords++
	}
	best := 0
	bestDist := math.Inf(1)
	for i := 0; i < chords; i++ {
		a := s.points[i]
		b := s.points[(i+1)%len(s.points)]
		for j := 0; j < chordSamples; j++ {
			t := float64(j) / float64(chordSamples-1)
			d := p.DistanceSquared(a.Lerp(b, t))
			if d < bestDist {
				bestDist = d
				// Landing on the chord's own start point means the new
				// point goes before it; anywhere else, after.
				if j == 0 {
					best = i
				} else {
					best = i + 1
				}
			}
		}
	}
	return best
}
