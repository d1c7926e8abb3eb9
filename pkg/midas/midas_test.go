package midas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterminism(t *testing.T) {
	events := []Triple{
		{1, 1, 1}, {1, 2, 1}, {2, 3, 1}, {1, 1, 2}, {4, 4, 2},
		{1, 2, 3}, {1, 2, 3}, {9, 1, 5}, {1, 2, 8},
	}

	a := NewR(DefaultRParams())
	b := NewR(DefaultRParams())
	for _, e := range events {
		assert.Equal(t, a.Insert(e.Source, e.Dest, e.Time), b.Insert(e.Source, e.Dest, e.Time))
	}

	c := New(DefaultParams())
	d := New(DefaultParams())
	for _, e := range events {
		assert.Equal(t, c.Insert(e.Source, e.Dest, e.Time), d.Insert(e.Source, e.Dest, e.Time))
	}
}

func TestTimeRegressionPanics(t *testing.T) {
	m := NewR(DefaultRParams())
	m.Insert(1, 2, 5)

	require.Panics(t, func() { m.Insert(1, 2, 4) })
	require.NotPanics(t, func() { m.Insert(1, 2, 5) })
	require.NotPanics(t, func() { m.Insert(1, 2, 6) })

	s := New(DefaultParams())
	s.Insert(1, 2, 3)
	require.Panics(t, func() { s.Insert(1, 2, 2) })
}

func TestQueryIdempotent(t *testing.T) {
	m := NewR(DefaultRParams())
	m.Insert(1, 2, 1)
	m.Insert(3, 4, 2)

	first := m.Query(1, 2)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.Query(1, 2))
	}
}

func TestDecayAcrossGap(t *testing.T) {
	const k = 3
	p := DefaultRParams()
	m := NewR(p)

	m.Insert(1, 2, 1)
	// Only one edge has been inserted, so every row holds exactly its own
	// count: 1 before the gap, alpha^k + 1 after decay plus reinsert.
	m.Insert(1, 2, 1+k)

	want := math.Pow(p.Alpha, k) + 1
	assert.InDelta(t, want, m.currentCount.count(1, 2), 1e-12)
}

func TestFixedWindowReset(t *testing.T) {
	m := New(DefaultParams())
	m.Insert(1, 2, 1)
	m.Insert(1, 2, 1)
	m.Insert(1, 2, 1)

	m.Insert(3, 4, 2)

	// The window is cleared on the tick change; totals keep accumulating.
	assert.Equal(t, 0.0, m.currentCount.count(1, 2))
	assert.GreaterOrEqual(t, m.totalCount.count(1, 2), 3.0)
}

func TestCountMinUpperBound(t *testing.T) {
	h := newEdgeHash(DefaultRows, DefaultBuckets, DefaultMValue, 7)

	truth := map[[2]uint64]float64{}
	for i := uint64(0); i < 50; i++ {
		src, dst := i%7, i%11
		h.insert(src, dst, 1)
		truth[[2]uint64{src, dst}]++
	}

	for key, want := range truth {
		got := h.count(key[0], key[1])
		assert.GreaterOrEqual(t, got, want, "edge %v", key)
	}
}

func TestScoreNonNegative(t *testing.T) {
	events := []Triple{
		{1, 1, 1}, {1, 2, 1}, {1, 1, 2}, {5, 6, 3}, {1, 2, 3}, {1, 2, 3}, {1, 2, 7},
	}

	m := NewR(DefaultRParams())
	for _, e := range events {
		assert.GreaterOrEqual(t, m.Insert(e.Source, e.Dest, e.Time), 0.0)
	}

	s := New(DefaultParams())
	for _, e := range events {
		assert.GreaterOrEqual(t, s.Insert(e.Source, e.Dest, e.Time), 0.0)
	}
}

func TestFirstTickScoresZero(t *testing.T) {
	m := New(DefaultParams())
	assert.Equal(t, 0.0, m.Insert(1, 2, 1))
	assert.Equal(t, 0.0, m.Insert(1, 2, 1))
}

func TestReferenceExample(t *testing.T) {
	m := NewR(DefaultRParams())
	m.Insert(1, 1, 1)
	m.Insert(1, 2, 1)
	m.Insert(1, 1, 2)
	m.Insert(1, 2, 3)

	// Insert returns the score of the same query it performs, and nothing
	// mutates state in between.
	inserted := m.Insert(1, 2, 4)
	assert.Equal(t, inserted, m.Query(1, 2))
}

func TestConstructionRejectsTinyGeometry(t *testing.T) {
	p := DefaultParams()
	p.Buckets = 1
	require.Panics(t, func() { New(p) })

	rp := DefaultRParams()
	rp.Buckets = 0
	require.Panics(t, func() { NewR(rp) })
}

func TestCurrentTime(t *testing.T) {
	m := NewR(DefaultRParams())
	assert.Equal(t, uint64(0), m.CurrentTime())

	m.Insert(1, 2, 1)
	assert.Equal(t, uint64(1), m.CurrentTime())

	m.Insert(1, 2, 9)
	assert.Equal(t, uint64(9), m.CurrentTime())
}
