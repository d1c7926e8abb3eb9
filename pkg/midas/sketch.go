package midas

import "math"

// edgeHash approximates per-edge counts: a count-min sketch whose rows share
// one mixing constant. Inserts and decays touch every row; a count is the
// minimum across rows, the tightest upper bound on the true count since
// collisions can only inflate a row's estimate.
type edgeHash struct {
	mValue uint64
	rows   []row
}

func newEdgeHash(rows, buckets, mValue, seed uint64) edgeHash {
	r := newRNG(seed)
	h := edgeHash{mValue: mValue, rows: make([]row, rows)}
	for i := range h.rows {
		h.rows[i] = newRow(buckets, r)
	}
	return h
}

func (h *edgeHash) insert(source, dest uint64, weight float64) {
	for i := range h.rows {
		h.rows[i].insert(h.mValue, source, dest, weight)
	}
}

func (h *edgeHash) count(source, dest uint64) float64 {
	min := math.MaxFloat64
	for i := range h.rows {
		if c := h.rows[i].count(h.mValue, source, dest); c < min {
			min = c
		}
	}
	return min
}

func (h *edgeHash) lower(factor float64) {
	for i := range h.rows {
		h.rows[i].lower(factor)
	}
}

func (h *edgeHash) clear() {
	for i := range h.rows {
		h.rows[i].clear()
	}
}

// nodeHash approximates per-node counts. Same row fan-out and min
// aggregation as edgeHash, keyed on a single node id.
type nodeHash struct {
	rows []row
}

func newNodeHash(rows, buckets, seed uint64) nodeHash {
	r := newRNG(seed)
	h := nodeHash{rows: make([]row, rows)}
	for i := range h.rows {
		h.rows[i] = newRow(buckets, r)
	}
	return h
}

func (h *nodeHash) insert(node uint64, weight float64) {
	for i := range h.rows {
		h.rows[i].nodeInsert(node, weight)
	}
}

func (h *nodeHash) count(node uint64) float64 {
	min := math.MaxFloat64
	for i := range h.rows {
		if c := h.rows[i].nodeCount(node); c < min {
			min = c
		}
	}
	return min
}

func (h *nodeHash) lower(factor float64) {
	for i := range h.rows {
		h.rows[i].lower(factor)
	}
}
