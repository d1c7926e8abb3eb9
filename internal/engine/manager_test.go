package engine

import (
	"sync"
	"testing"
	"time"

	"MidasFlow/internal/config"
	"MidasFlow/internal/model"
	"MidasFlow/pkg/midas"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureWriter struct {
	mu       sync.Mutex
	interval time.Duration
	batches  [][]model.ScoredEvent
}

func (w *captureWriter) Write(batch []model.ScoredEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.batches = append(w.batches, batch)
	return nil
}

func (w *captureWriter) GetInterval() time.Duration {
	return w.interval
}

func (w *captureWriter) all() []model.ScoredEvent {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []model.ScoredEvent
	for _, b := range w.batches {
		out = append(out, b...)
	}
	return out
}

func TestManagerScoresInStreamOrder(t *testing.T) {
	events := []model.Event{
		{Source: 1, Dest: 1, Tick: 1},
		{Source: 1, Dest: 2, Tick: 1},
		{Source: 1, Dest: 1, Tick: 2},
		{Source: 1, Dest: 2, Tick: 3},
		{Source: 1, Dest: 2, Tick: 4},
	}

	detector, err := NewDetector(config.DetectorConfig{Variant: "midasr"})
	require.NoError(t, err)

	writer := &captureWriter{interval: 10 * time.Millisecond}
	m := newManager(detector, []model.Writer{writer}, 16)
	m.Start()

	for _, e := range events {
		m.Input() <- e
	}
	m.Stop()

	got := writer.all()
	require.Len(t, got, len(events))

	// Same variant, same defaults, same stream: scores must line up exactly.
	reference := midas.NewR(midas.DefaultRParams())
	for i, e := range events {
		assert.Equal(t, reference.Insert(e.Source, e.Dest, e.Tick), got[i].Score, "event %d", i)
	}
}

func TestManagerDropsOutOfOrderEvents(t *testing.T) {
	detector, err := NewDetector(config.DetectorConfig{Variant: "midas"})
	require.NoError(t, err)

	writer := &captureWriter{interval: 10 * time.Millisecond}
	m := newManager(detector, []model.Writer{writer}, 16)
	m.Start()

	m.Input() <- model.Event{Source: 1, Dest: 2, Tick: 5}
	m.Input() <- model.Event{Source: 1, Dest: 2, Tick: 3} // stale, must not panic the scorer
	m.Input() <- model.Event{Source: 1, Dest: 2, Tick: 6}
	m.Stop()

	assert.Equal(t, uint64(1), m.Dropped())
	assert.Len(t, writer.all(), 2)
}

func TestManagerFeedsScoreSink(t *testing.T) {
	detector, err := NewDetector(config.DetectorConfig{})
	require.NoError(t, err)

	var mu sync.Mutex
	var seen []model.ScoredEvent
	m := newManager(detector, nil, 16)
	m.SetScoreSink(func(se model.ScoredEvent) {
		mu.Lock()
		seen = append(seen, se)
		mu.Unlock()
	})
	m.Start()

	m.Input() <- model.Event{Source: 7, Dest: 8, Tick: 1}
	m.Input() <- model.Event{Source: 7, Dest: 8, Tick: 2}
	m.Stop()

	assert.Len(t, seen, 2)
}

func TestNewDetectorVariants(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.DetectorConfig
		wantErr bool
	}{
		{name: "default is midasr", cfg: config.DetectorConfig{}},
		{name: "explicit midas", cfg: config.DetectorConfig{Variant: "midas"}},
		{name: "explicit midasr", cfg: config.DetectorConfig{Variant: "midasr", Rows: 3, Buckets: 1021}},
		{name: "unknown variant", cfg: config.DetectorConfig{Variant: "exact"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDetector(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint64(0), d.CurrentTime())
		})
	}
}
