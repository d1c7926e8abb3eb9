// Package midas implements streaming anomaly scoring for edges in a
// timestamped graph of directed interactions, based on count-min sketches
// with bounded memory. Two variants are provided: Midas, which resets its
// current-window counts whenever time advances, and MidasR, which decays
// them exponentially and additionally scores the two endpoint nodes.
package midas

const (
	// DefaultRows is the number of independent hashed rows per sketch.
	DefaultRows = 2
	// DefaultBuckets is the number of counters in each row.
	DefaultBuckets = 769
	// DefaultMValue is the mixing constant combining source and destination
	// into a single edge hash input.
	DefaultMValue = 773
	// DefaultAlpha is the per-tick decay factor of the MidasR variant.
	DefaultAlpha = 0.6

	// Reference seeds for the two variants. Distinct so that a Midas and a
	// MidasR built side by side never share sketch geometry.
	defaultSeed  = 39
	defaultSeedR = 538
)

// Params configures the fixed-window Midas variant.
type Params struct {
	// Rows is the number of rows per count-min sketch.
	Rows uint64
	// Buckets is the number of counters per row. Must be at least 2.
	Buckets uint64
	// MValue is the edge-hash mixing constant.
	MValue uint64
	// Seed parameterizes the hash functions. Two detectors built with the
	// same seed and geometry behave identically on identical input.
	Seed uint64
}

// DefaultParams returns the reference configuration for Midas.
func DefaultParams() Params {
	return Params{
		Rows:    DefaultRows,
		Buckets: DefaultBuckets,
		MValue:  DefaultMValue,
		Seed:    defaultSeed,
	}
}

// RParams configures the decayed MidasR variant.
type RParams struct {
	// Rows is the number of rows per count-min sketch.
	Rows uint64
	// Buckets is the number of counters per row. Must be at least 2.
	Buckets uint64
	// MValue is the edge-hash mixing constant.
	MValue uint64
	// Alpha is the factor applied to current counts for every tick the
	// input time advances. Expected in (0, 1].
	Alpha float64
	// Seed parameterizes the hash functions.
	Seed uint64
}

// DefaultRParams returns the reference configuration for MidasR.
func DefaultRParams() RParams {
	return RParams{
		Rows:    DefaultRows,
		Buckets: DefaultBuckets,
		MValue:  DefaultMValue,
		Alpha:   DefaultAlpha,
		Seed:    defaultSeedR,
	}
}
