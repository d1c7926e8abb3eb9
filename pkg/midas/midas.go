package midas

// Midas is the fixed-window variant: the current-window sketch is cleared
// outright whenever the input time advances, so the window is exactly one
// tick wide. Not safe for concurrent use; one instance serves one stream.
type Midas struct {
	currentTime uint64

	currentCount edgeHash
	totalCount   edgeHash
}

// New builds a fixed-window detector. Panics if p.Buckets < 2.
func New(p Params) *Midas {
	return &Midas{
		currentCount: newEdgeHash(p.Rows, p.Buckets, p.MValue, p.Seed+1),
		totalCount:   newEdgeHash(p.Rows, p.Buckets, p.MValue, p.Seed+2),
	}
}

// CurrentTime returns the tick of the most recent insert, 0 before the
// first one.
func (m *Midas) CurrentTime() uint64 {
	return m.currentTime
}

// Insert ingests one event and returns its anomaly score. Time must be
// non-decreasing across calls; Insert panics if it regresses.
func (m *Midas) Insert(source, dest, time uint64) float64 {
	if time < m.currentTime {
		panic("midas: time regression on insert")
	}

	if time > m.currentTime {
		m.currentCount.clear()
		m.currentTime = time
	}

	m.currentCount.insert(source, dest, 1)
	m.totalCount.insert(source, dest, 1)

	return m.Query(source, dest)
}

// Query recomputes the score for an edge against current state without
// mutating anything. Repeated calls with no intervening insert return the
// same value.
func (m *Midas) Query(source, dest uint64) float64 {
	if m.currentTime == 1 {
		return 0
	}

	t := float64(m.currentTime)
	mean := m.totalCount.count(source, dest) / t
	err := m.currentCount.count(source, dest) - mean
	sqerr := err * err

	return sqerr/mean + sqerr/(mean*(t-1))
}
