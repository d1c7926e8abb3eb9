package model

// Detector is the common interface of the two scoring variants in pkg/midas.
// Implementations are single-writer: callers must serialize Insert externally
// (the engine manager dedicates one goroutine per detector). Insert panics if
// time regresses, so callers feeding untrusted streams check CurrentTime
// first and drop stragglers.
type Detector interface {
	// Insert ingests one event and returns its anomaly score.
	Insert(source, dest, time uint64) float64

	// Query recomputes the score for an edge without mutating state.
	Query(source, dest uint64) float64

	// CurrentTime returns the tick of the most recent insert, 0 before the
	// first one.
	CurrentTime() uint64
}
