package model

import "time"

// Writer defines a generic interface for persisting batches of scored events.
type Writer interface {
	// Write persists one batch. Batches arrive in stream order.
	Write(batch []ScoredEvent) error

	// GetInterval returns the configured flush interval for this writer.
	GetInterval() time.Duration
}
