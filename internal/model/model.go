package model

import "time"

// Event is one directed interaction in the input stream. Source and Dest are
// opaque node keys (see internal/keys for how they are derived from IPs or
// string identifiers); Tick is the discrete logical time the detector
// consumes, starting at 1 and non-decreasing within a stream.
type Event struct {
	Source   uint64
	Dest     uint64
	Tick     uint64
	Observed time.Time
}

// ScoredEvent is an event together with the anomaly score the detector
// assigned to it on ingestion.
type ScoredEvent struct {
	Event
	Score float64
}
