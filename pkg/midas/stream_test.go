package midas

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterateMatchesManualInserts(t *testing.T) {
	events := []Triple{
		{1, 1, 1}, {1, 2, 1}, {1, 1, 2}, {1, 2, 3}, {1, 2, 4},
	}

	var manual []float64
	m := NewR(DefaultRParams())
	for _, e := range events {
		manual = append(manual, m.Insert(e.Source, e.Dest, e.Time))
	}

	var streamed []float64
	for score := range IterateR(slices.Values(events), DefaultRParams()) {
		streamed = append(streamed, score)
	}

	assert.Equal(t, manual, streamed)
}

func TestIterateStopsEarly(t *testing.T) {
	events := []Triple{{1, 1, 1}, {1, 2, 2}, {1, 3, 3}}

	n := 0
	for range Iterate(slices.Values(events), DefaultParams()) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}
