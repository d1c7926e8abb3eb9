package midas

import "iter"

// Triple is one raw stream event: a directed interaction from Source to
// Dest at tick Time.
type Triple struct {
	Source uint64
	Dest   uint64
	Time   uint64
}

// Iterate scores a sequence of triples with a fresh fixed-window detector,
// yielding one score per triple in input order. The detector is consumed
// across the sequence, so the returned sequence is single-use. Panics mid
// iteration if the input's time regresses.
func Iterate(events iter.Seq[Triple], p Params) iter.Seq[float64] {
	m := New(p)
	return func(yield func(float64) bool) {
		for e := range events {
			if !yield(m.Insert(e.Source, e.Dest, e.Time)) {
				return
			}
		}
	}
}

// IterateR is Iterate for the decayed variant.
func IterateR(events iter.Seq[Triple], p RParams) iter.Seq[float64] {
	m := NewR(p)
	return func(yield func(float64) bool) {
		for e := range events {
			if !yield(m.Insert(e.Source, e.Dest, e.Time)) {
				return
			}
		}
	}
}
