package alerter

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"MidasFlow/internal/config"
	"MidasFlow/internal/model"
)

// Alerter collects scored events above a configured score threshold and
// periodically notifies about them. The threshold is serving-layer policy;
// the detector itself only ever reports a continuous score.
type Alerter struct {
	minScore      float64
	checkInterval time.Duration
	notifier      model.Notifier

	mu        sync.Mutex
	offenders []model.ScoredEvent

	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewAlerter creates a new Alerter instance.
func NewAlerter(cfg *config.AlerterConfig, notifier model.Notifier) (*Alerter, error) {
	interval, err := time.ParseDuration(cfg.CheckInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid check_interval for alerter: %w", err)
	}

	return &Alerter{
		minScore:      cfg.MinScore,
		checkInterval: interval,
		notifier:      notifier,
		stopChan:      make(chan struct{}),
	}, nil
}

// Observe records one scored event if it crosses the threshold. Safe for
// use as an engine.ScoreSink.
func (a *Alerter) Observe(se model.ScoredEvent) {
	if se.Score < a.minScore {
		return
	}
	a.mu.Lock()
	a.offenders = append(a.offenders, se)
	a.mu.Unlock()
}

// Start begins the periodic evaluation loop.
func (a *Alerter) Start() {
	log.Println("Alerter started")

	a.wg.Add(1)
	defer a.wg.Done()

	ticker := time.NewTicker(a.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.evaluate()
		case <-a.stopChan:
			return
		}
	}
}

// Stop gracefully stops the evaluation loop and fires one final evaluation.
func (a *Alerter) Stop() {
	log.Println("Stopping Alerter...")
	close(a.stopChan)
	a.wg.Wait()
	a.evaluate()
}

// evaluate drains the collected offenders and sends one notification
// covering all of them.
func (a *Alerter) evaluate() {
	a.mu.Lock()
	offenders := a.offenders
	a.offenders = nil
	a.mu.Unlock()

	if len(offenders) == 0 {
		return
	}

	subject := fmt.Sprintf("MidasFlow: %d anomalous interactions above %.2f", len(offenders), a.minScore)
	if err := a.notifier.Send(subject, buildReport(offenders, a.minScore)); err != nil {
		log.Printf("Error sending alert notification: %v", err)
	}
}

// buildReport renders the offending events as an HTML table, worst first.
func buildReport(offenders []model.ScoredEvent, minScore float64) string {
	sort.Slice(offenders, func(i, j int) bool {
		return offenders[i].Score > offenders[j].Score
	})

	var rows []string
	for _, se := range offenders {
		rows = append(rows, fmt.Sprintf("<tr><td><code>%d</code></td><td><code>%d</code></td><td>%d</td><td>%.4f</td></tr>",
			se.Source, se.Dest, se.Tick, se.Score))
	}

	return fmt.Sprintf("<h3>Alert: edge anomaly scores above %.2f</h3>"+
		"<table border=\"1\" cellpadding=\"5\" cellspacing=\"0\">"+
		"<tr><th>Source</th><th>Dest</th><th>Tick</th><th>Score</th></tr>%s</table>",
		minScore, strings.Join(rows, ""))
}
