package engine

import (
	"fmt"

	"MidasFlow/internal/config"
	"MidasFlow/internal/model"
	"MidasFlow/pkg/midas"
)

// NewDetector builds the configured scoring core. Zero-valued geometry
// fields fall back to the reference defaults, so a config may pin only the
// variant.
func NewDetector(cfg config.DetectorConfig) (model.Detector, error) {
	switch cfg.Variant {
	case "midas":
		p := midas.DefaultParams()
		if cfg.Rows > 0 {
			p.Rows = cfg.Rows
		}
		if cfg.Buckets > 0 {
			p.Buckets = cfg.Buckets
		}
		if cfg.MValue > 0 {
			p.MValue = cfg.MValue
		}
		if cfg.Seed > 0 {
			p.Seed = cfg.Seed
		}
		return midas.New(p), nil
	case "", "midasr":
		p := midas.DefaultRParams()
		if cfg.Rows > 0 {
			p.Rows = cfg.Rows
		}
		if cfg.Buckets > 0 {
			p.Buckets = cfg.Buckets
		}
		if cfg.MValue > 0 {
			p.MValue = cfg.MValue
		}
		if cfg.Alpha > 0 {
			p.Alpha = cfg.Alpha
		}
		if cfg.Seed > 0 {
			p.Seed = cfg.Seed
		}
		return midas.NewR(p), nil
	default:
		return nil, fmt.Errorf("unknown detector variant: %q", cfg.Variant)
	}
}
