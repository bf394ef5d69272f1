package viscm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnchorSetBookkeeping(t *testing.T) {
	a := anchorSet{idx: [2]int{2, 5}, n: 2}

	assert.True(t, a.contains(2))
	assert.True(t, a.contains(5))
	assert.False(t, a.contains(3))

	a.insertAt(2) // at an anchor: both shift
	assert.Equal(t, []int{3, 6}, a.indices())
	a.insertAt(4) // between: only the later one shifts
	assert.Equal(t, []int{3, 7}, a.indices())
	a.insertAt(9) // after both: no shift
	assert.Equal(t, []int{3, 7}, a.indices())

	a.removeAt(0)
	assert.Equal(t, []int{2, 6}, a.indices())
	a.removeAt(4)
	assert.Equal(t, []int{2, 5}, a.indices())
	a.removeAt(6)
	assert.Equal(t, []int{2, 5}, a.indices())
}

func TestAnchorSetEmpty(t *testing.T) {
	var a anchorSet
	assert.False(t, a.contains(0))
	assert.Nil(t, a.indices())
	a.insertAt(0)
	a.removeAt(0)
	assert.Nil(t, a.indices())
}

func TestNewStoreValidation(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0), Pt(4, 0)}

	_, err := NewStore(Sequential, pts)
	assert.NoError(t, err)
	_, err = NewStore(Diverging, pts, 2)
	assert.NoError(t, err)
	_, err = NewStore(Cyclic, pts, 0, 3)
	assert.NoError(t, err)

	_, err = NewStore(Topology(42), pts)
	assert.Error(t, err, "unknown topology")
	_, err = NewStore(Sequential, pts[:1])
	assert.Error(t, err, "too few points")
	_, err = NewStore(Sequential, pts, 2)
	assert.Error(t, err, "sequential takes no fixed index")
	_, err = NewStore(Diverging, pts)
	assert.Error(t, err, "diverging needs a fixed index")
	_, err = NewStore(Diverging, pts, 0)
	assert.Error(t, err, "diverging fixed index must be interior")
	_, err = NewStore(Diverging, pts, 4)
	assert.Error(t, err, "diverging fixed index must be interior")
	_, err = NewStore(Cyclic, pts, 3, 3)
	assert.Error(t, err, "cyclic fixed indices must ascend")
	_, err = NewStore(Cyclic, pts, 1, 5)
	assert.Error(t, err, "cyclic fixed index out of range")
}

func TestAddRemoveRoundTrip(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0), Pt(4, 0)}
	s, err := NewStore(Diverging, pts, 2)
	require.NoError(t, err)

	s.AddPoint(1, Pt(0.5, 0.5))
	got, fixed := s.Points()
	assert.Len(t, got, 6)
	assert.Equal(t, []int{3}, fixed, "anchor shifts up past the insertion")

	s.RemovePoint(1)
	got, fixed = s.Points()
	assert.Equal(t, pts, got)
	assert.Equal(t, []int{2}, fixed)
}

func TestRemoveAnchorIgnored(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0), Pt(4, 0)}
	s, err := NewStore(Cyclic, pts, 0, 3)
	require.NoError(t, err)

	s.RemovePoint(0)
	s.RemovePoint(3)
	got, fixed := s.Points()
	assert.Equal(t, pts, got)
	assert.Equal(t, []int{0, 3}, fixed)

	s.RemovePoint(4)
	got, _ = s.Points()
	assert.Equal(t, pts[:4], got)
}

func TestMoveRespectsLock(t *testing.T) {
	pts := []Point{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0), Pt(4, 0)}
	s, err := NewStore(Diverging, pts, 2)
	require.NoError(t, err)

	s.MovePoint(2, Pt(9, 9))
	got, _ := s.Points()
	assert.Equal(t, Pt(2, 0), got[2], "anchor is locked by default")

	s.MovePoint(1, Pt(9, 9))
	got, _ = s.Points()
	assert.Equal(t, Pt(9, 9), got[1], "free points always move")

	s.SetLocked(false)
	s.MovePoint(2, Pt(8, 8))
	got, _ = s.Points()
	assert.Equal(t, Pt(8, 8), got[2], "unlocked anchors move")
}

func TestSetPoints(t *testing.T) {
	s, err := NewStore(Diverging, []Point{Pt(0, 0), Pt(1, 0), Pt(2, 0)}, 1)
	require.NoError(t, err)

	next := []Point{Pt(5, 5), Pt(6, 6), Pt(7, 7), Pt(8, 8)}
	require.NoError(t, s.SetPoints(next, 2))
	got, fixed := s.Points()
	assert.Equal(t, next, got)
	assert.Equal(t, []int{2}, fixed)

	assert.Error(t, s.SetPoints(next, 0), "validation applies to bulk replace")
	got, fixed = s.Points()
	assert.Equal(t, next, got, "store unchanged after failed replace")
	assert.Equal(t, []int{2}, fixed)
}

func TestWatchOrderAndSynchrony(t *testing.T) {
	s, err := NewStore(Sequential, []Point{Pt(0, 0), Pt(1, 1)})
	require.NoError(t, err)

	var order []string
	s.Watch(func() { order = append(order, "first") })
	s.Watch(func() { order = append(order, "second") })

	s.AddPoint(1, Pt(0.5, 0.5))
	assert.Equal(t, []string{"first", "second"}, order)

	order = nil
	s.RemovePoint(1)
	s.MovePoint(0, Pt(0, 1))
	require.NoError(t, s.SetPoints([]Point{Pt(0, 0), Pt(1, 1)}))
	assert.Equal(t, []string{"first", "second", "first", "second", "first", "second"}, order)
}

func TestNoNotificationOnIgnoredMutation(t *testing.T) {
	s, err := NewStore(Diverging, []Point{Pt(0, 0), Pt(1, 0), Pt(2, 0)}, 1)
	require.NoError(t, err)

	fired := 0
	s.Watch(func() { fired++ })
	s.RemovePoint(1) // anchor: no-op
	s.MovePoint(1, Pt(9, 9))
	assert.Equal(t, 0, fired)
}

func TestInsertNearestChord(t *testing.T) {
	s, err := NewStore(Sequential, []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10)})
	require.NoError(t, err)

	// Closest to the middle of the first chord: insert after point 0.
	s.InsertNearest(Pt(5, 1), true)
	got, _ := s.Points()
	require.Len(t, got, 4)
	assert.Equal(t, Pt(5, 1), got[1])

	// Closest to the second chord: insert between the old points 2 and 3.
	s.InsertNearest(Pt(11, 5), true)
	got, _ = s.Points()
	require.Len(t, got, 5)
	assert.Equal(t, Pt(11, 5), got[3])
}

func TestInsertNearestClosingChord(t *testing.T) {
	// For cyclic topology the chord from the last point back to the first
	// participates in the search.
	s, err := NewStore(Cyclic, []Point{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(0, 10)}, 0, 2)
	require.NoError(t, err)

	s.InsertNearest(Pt(-1, 5), true)
	got, fixed := s.Points()
	require.Len(t, got, 5)
	assert.Equal(t, Pt(-1, 5), got[4], "nearest to the closing chord inserts after the last point")
	assert.Equal(t, []int{0, 2}, fixed)
}

func TestInsertNearestSentinelsSequential(t *testing.T) {
	base := []Point{Pt(3, 3), Pt(7, 7)}

	s, err := NewStore(Sequential, base)
	require.NoError(t, err)
	s.InsertNearest(DarkSentinel, true)
	s.InsertNearest(LightSentinel, true)
	got, _ := s.Points()
	require.Len(t, got, 4)
	assert.Equal(t, DarkSentinel, got[0], "ascending ramp: dark end is the start")
	assert.Equal(t, LightSentinel, got[3])

	s, err = NewStore(Sequential, base)
	require.NoError(t, err)
	s.InsertNearest(DarkSentinel, false)
	s.InsertNearest(LightSentinel, false)
	got, _ = s.Points()
	require.Len(t, got, 4)
	assert.Equal(t, LightSentinel, got[0], "descending ramp: light end is the start")
	assert.Equal(t, DarkSentinel, got[3])
}

func TestInsertNearestSentinelsAnchored(t *testing.T) {
	pts := []Point{Pt(1, 1), Pt(2, 2), Pt(3, 3), Pt(4, 4), Pt(5, 5)}

	// Diverging: both sentinels overwrite the single anchor, never insert.
	s, err := NewStore(Diverging, pts, 2)
	require.NoError(t, err)
	s.InsertNearest(DarkSentinel, true)
	got, _ := s.Points()
	require.Len(t, got, 5)
	assert.Equal(t, DarkSentinel, got[2])

	// Cyclic: the dark sentinel lands on the first anchor, the light
	// sentinel on the second.
	s, err = NewStore(Cyclic, pts, 1, 3)
	require.NoError(t, err)
	s.InsertNearest(DarkSentinel, true)
	s.InsertNearest(LightSentinel, true)
	got, _ = s.Points()
	require.Len(t, got, 5)
	assert.Equal(t, DarkSentinel, got[1])
	assert.Equal(t, LightSentinel, got[3])
}
