package engine

import (
	"log"
	"sync"
	"time"

	"MidasFlow/internal/config"
	"MidasFlow/internal/model"
)

const defaultEventChannelSize = 4096

// ScoreSink receives every scored event as it is produced, in stream order.
// Used to feed the alerter without coupling it to the manager.
type ScoreSink func(model.ScoredEvent)

// Manager owns one detector and drives it from an event channel. The
// detector is single-writer, so exactly one scoring goroutine performs all
// inserts; writers get batches flushed on their own intervals by dedicated
// flusher goroutines, coupled to the scoring pace only through the shared
// buffers.
type Manager struct {
	detector model.Detector
	writers  []model.Writer
	sink     ScoreSink

	eventChannel chan model.Event

	mu      sync.Mutex
	buffers [][]model.ScoredEvent
	dropped uint64

	done      chan struct{}
	scorerWg  sync.WaitGroup
	flusherWg sync.WaitGroup
}

// NewManager builds a manager from config: the configured detector variant
// plus every enabled writer.
func NewManager(cfg *config.Config) (*Manager, error) {
	detector, err := NewDetector(cfg.Detector)
	if err != nil {
		return nil, err
	}

	writers := make([]model.Writer, 0, len(cfg.Writers))
	for _, writerDef := range cfg.Writers {
		if !writerDef.Enabled {
			continue
		}

		interval, err := time.ParseDuration(writerDef.FlushInterval)
		if err != nil {
			log.Printf("Warning: invalid flush_interval for writer type '%s': %v, skipping.", writerDef.Type, err)
			continue
		}

		var writer model.Writer
		switch writerDef.Type {
		case "text":
			writer = NewTextWriter(writerDef.Text.RootPath, interval)
			log.Printf("Text writer created at %s", writerDef.Text.RootPath)
		case "clickhouse":
			writer, err = NewClickHouseWriter(writerDef.ClickHouse, interval)
			if err != nil {
				log.Printf("Warning: failed to create writer type '%s': %v, skipping.", writerDef.Type, err)
				continue
			}
			log.Printf("ClickHouse writer created for database %s at %s:%d", writerDef.ClickHouse.Database, writerDef.ClickHouse.Host, writerDef.ClickHouse.Port)
		default:
			log.Printf("Warning: unknown writer type '%s' in config, skipping.", writerDef.Type)
			continue
		}
		writers = append(writers, writer)
	}

	size := cfg.Ingest.SizeOfEventChannel
	if size <= 0 {
		size = defaultEventChannelSize
	}

	return newManager(detector, writers, size), nil
}

func newManager(detector model.Detector, writers []model.Writer, channelSize int) *Manager {
	return &Manager{
		detector:     detector,
		writers:      writers,
		eventChannel: make(chan model.Event, channelSize),
		buffers:      make([][]model.ScoredEvent, len(writers)),
		done:         make(chan struct{}),
	}
}

// SetScoreSink installs a sink for scored events. Must be called before Start.
func (m *Manager) SetScoreSink(sink ScoreSink) {
	m.sink = sink
}

// Input returns the channel to which events should be sent for scoring.
func (m *Manager) Input() chan<- model.Event {
	return m.eventChannel
}

// Start launches the scoring goroutine and one flusher per writer.
func (m *Manager) Start() {
	for i, writer := range m.writers {
		m.flusherWg.Add(1)
		go m.runFlusher(i, writer)
		log.Printf("Started flusher for a writer with interval %s.", writer.GetInterval())
	}

	m.scorerWg.Add(1)
	go m.scorer()
	log.Println("Manager started with 1 scoring worker.")
}

// Stop drains buffered events, performs a final flush on every writer and
// shuts down.
func (m *Manager) Stop() {
	log.Println("Manager stopping...")
	close(m.eventChannel)
	m.scorerWg.Wait()

	close(m.done)
	m.flusherWg.Wait()

	if dropped := m.Dropped(); dropped > 0 {
		log.Printf("Dropped %d out-of-order events over the manager's lifetime.", dropped)
	}
	log.Println("Manager stopped.")
}

// Dropped reports how many events were discarded for arriving with a tick
// older than the detector's current time.
func (m *Manager) Dropped() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}

// Query recomputes the score for an edge against the detector's current
// state. Safe to call only while no scoring is in flight; the HTTP surface
// queries ClickHouse instead and this is used by offline tooling.
func (m *Manager) Query(source, dest uint64) float64 {
	return m.detector.Query(source, dest)
}

// scorer is the single goroutine allowed to mutate the detector. Events
// whose tick regresses below the detector's clock would violate the core's
// insert contract, so they are dropped here instead of panicking the
// service.
func (m *Manager) scorer() {
	defer m.scorerWg.Done()
	for e := range m.eventChannel {
		if e.Tick < m.detector.CurrentTime() {
			m.mu.Lock()
			m.dropped++
			if m.dropped%1000 == 1 {
				log.Printf("Dropping out-of-order event (tick %d < current %d), %d dropped so far.", e.Tick, m.detector.CurrentTime(), m.dropped)
			}
			m.mu.Unlock()
			continue
		}

		scored := model.ScoredEvent{
			Event: e,
			Score: m.detector.Insert(e.Source, e.Dest, e.Tick),
		}

		m.mu.Lock()
		for i := range m.buffers {
			m.buffers[i] = append(m.buffers[i], scored)
		}
		m.mu.Unlock()

		if m.sink != nil {
			m.sink(scored)
		}
	}
}

// runFlusher periodically hands the writer its accumulated batch, plus one
// final batch on shutdown.
func (m *Manager) runFlusher(i int, writer model.Writer) {
	defer m.flusherWg.Done()
	interval := writer.GetInterval()
	if interval <= 0 {
		log.Printf("Invalid interval %s for writer, flusher will not run.", interval)
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.flush(i, writer)
		case <-m.done:
			m.flush(i, writer)
			return
		}
	}
}

func (m *Manager) flush(i int, writer model.Writer) {
	m.mu.Lock()
	batch := m.buffers[i]
	m.buffers[i] = nil
	m.mu.Unlock()

	if len(batch) == 0 {
		return
	}
	if err := writer.Write(batch); err != nil {
		log.Printf("Error writing batch of %d scored events: %v", len(batch), err)
	}
}
