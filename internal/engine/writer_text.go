package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"MidasFlow/internal/model"
)

// TextWriter appends scored events to daily plain-text files under a root
// path, one line per event.
type TextWriter struct {
	rootPath string
	interval time.Duration
}

// NewTextWriter creates a new text writer for scored events.
func NewTextWriter(rootPath string, interval time.Duration) model.Writer {
	return &TextWriter{rootPath: rootPath, interval: interval}
}

func (w *TextWriter) GetInterval() time.Duration {
	return w.interval
}

func (w *TextWriter) Write(batch []model.ScoredEvent) error {
	if err := os.MkdirAll(w.rootPath, 0755); err != nil {
		return fmt.Errorf("failed to create score directory: %w", err)
	}

	filePath := filepath.Join(w.rootPath, time.Now().Format("2006-01-02")+"_scores.txt")
	file, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open score file '%s': %w", filePath, err)
	}
	defer file.Close()

	for _, se := range batch {
		line := fmt.Sprintf("%s %d %d %d %.6f\n",
			se.Observed.Format(time.RFC3339Nano), se.Source, se.Dest, se.Tick, se.Score)
		if _, err := file.WriteString(line); err != nil {
			return fmt.Errorf("failed to write scored event: %w", err)
		}
	}

	return nil
}
