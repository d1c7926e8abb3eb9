package midas

import "math/rand/v2"

// rng draws the hash coefficients for sketch rows. One instance is created
// per sketch at construction time and discarded once geometry is drawn; it
// is never shared between detectors.
type rng struct {
	src *rand.Rand
}

func newRNG(seed uint64) *rng {
	return &rng{src: rand.New(rand.NewPCG(seed, 0))}
}

func (r *rng) next() uint64 {
	return r.src.Uint64()
}

// row is one hashed counter array with an affine hash. All arithmetic on the
// hash input is uint64 with wraparound; changing the integer width or
// trapping overflow would change bucket placement.
type row struct {
	a, b    uint64
	buckets []float64
}

func newRow(buckets uint64, r *rng) row {
	if buckets < 2 {
		panic("midas: buckets must be at least 2")
	}
	return row{
		a:       r.next()%(buckets-1) + 1,
		b:       r.next() % buckets,
		buckets: make([]float64, buckets),
	}
}

func (r *row) hash(mValue, source, dest uint64) uint64 {
	return ((mValue*dest+source)*r.a + r.b) % uint64(len(r.buckets))
}

func (r *row) insert(mValue, source, dest uint64, weight float64) {
	r.buckets[r.hash(mValue, source, dest)] += weight
}

func (r *row) count(mValue, source, dest uint64) float64 {
	return r.buckets[r.hash(mValue, source, dest)]
}

// nodeInsert hashes on source alone: dest is pinned to 0 and the mixing
// constant is dropped, so the index depends only on the node key.
func (r *row) nodeInsert(source uint64, weight float64) {
	r.insert(0, source, 0, weight)
}

func (r *row) nodeCount(source uint64) float64 {
	return r.count(0, source, 0)
}

// lower scales every counter by factor. Factors outside [0, 1] are not
// clamped; callers own the semantics.
func (r *row) lower(factor float64) {
	for i := range r.buckets {
		r.buckets[i] *= factor
	}
}

func (r *row) clear() {
	for i := range r.buckets {
		r.buckets[i] = 0
	}
}
