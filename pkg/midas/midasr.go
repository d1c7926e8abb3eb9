package midas

import "math"

// MidasR is the decayed variant: when time advances by delta ticks the
// current edge and node counts are scaled by alpha^delta instead of being
// cleared, and the reported score covers the edge and both endpoint nodes.
// Not safe for concurrent use; one instance serves one stream.
type MidasR struct {
	currentTime uint64
	alpha       float64

	currentCount edgeHash
	totalCount   edgeHash

	sourceScore nodeHash
	destScore   nodeHash
	sourceTotal nodeHash
	destTotal   nodeHash
}

// NewR builds a decayed detector. Panics if p.Buckets < 2.
func NewR(p RParams) *MidasR {
	return &MidasR{
		alpha: p.Alpha,

		currentCount: newEdgeHash(p.Rows, p.Buckets, p.MValue, p.Seed+1),
		totalCount:   newEdgeHash(p.Rows, p.Buckets, p.MValue, p.Seed+2),

		sourceScore: newNodeHash(p.Rows, p.Buckets, p.Seed+3),
		destScore:   newNodeHash(p.Rows, p.Buckets, p.Seed+4),
		sourceTotal: newNodeHash(p.Rows, p.Buckets, p.Seed+5),
		destTotal:   newNodeHash(p.Rows, p.Buckets, p.Seed+6),
	}
}

// CurrentTime returns the tick of the most recent insert, 0 before the
// first one.
func (m *MidasR) CurrentTime() uint64 {
	return m.currentTime
}

// Alpha returns the configured per-tick decay factor.
func (m *MidasR) Alpha() float64 {
	return m.alpha
}

// Insert ingests one event and returns its anomaly score. Time must be
// non-decreasing across calls; Insert panics if it regresses.
func (m *MidasR) Insert(source, dest, time uint64) float64 {
	if time < m.currentTime {
		panic("midas: time regression on insert")
	}

	if time > m.currentTime {
		// One decay step covers an arbitrary gap in the stream: alpha^delta
		// rather than delta applications of alpha.
		factor := math.Pow(m.alpha, float64(time-m.currentTime))
		m.currentCount.lower(factor)
		m.sourceScore.lower(factor)
		m.destScore.lower(factor)

		m.currentTime = time
	}

	m.currentCount.insert(source, dest, 1)
	m.totalCount.insert(source, dest, 1)

	m.sourceScore.insert(source, 1)
	m.destScore.insert(dest, 1)
	m.sourceTotal.insert(source, 1)
	m.destTotal.insert(dest, 1)

	return m.Query(source, dest)
}

// Query recomputes the score for an edge against current state without
// mutating anything. The result is the log-compressed maximum of the edge
// score and the two endpoint node scores. Calling before the first insert
// divides by a zero tick count and yields a non-finite value; callers own
// that guard.
func (m *MidasR) Query(source, dest uint64) float64 {
	edge := countsToAnom(
		m.totalCount.count(source, dest),
		m.currentCount.count(source, dest),
		m.currentTime,
	)
	src := countsToAnom(
		m.sourceTotal.count(source),
		m.sourceScore.count(source),
		m.currentTime,
	)
	dst := countsToAnom(
		m.destTotal.count(dest),
		m.destScore.count(dest),
		m.currentTime,
	)

	return math.Log1p(math.Max(math.Max(src, dst), edge))
}

// countsToAnom is the chi-square-like statistic shared by the three score
// components. The deviation is clamped at zero before squaring: activity
// below the historical mean never raises the score. The fixed-window
// variant keeps the signed error instead; the two formulas are deliberately
// not unified.
func countsToAnom(total, current float64, currentTime uint64) float64 {
	t := float64(currentTime)
	mean := total / t
	err := math.Max(0, current-mean)
	sqerr := err * err

	return sqerr/mean + sqerr/(mean*math.Max(1, t-1))
}
