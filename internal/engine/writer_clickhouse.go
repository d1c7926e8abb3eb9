package engine

import (
	"context"
	"fmt"
	"log"
	"time"

	"MidasFlow/internal/config"
	"MidasFlow/internal/model"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

const createEdgeScoresTableStatement = `
CREATE TABLE IF NOT EXISTS edge_scores (
    Timestamp   DateTime64(9),
    Source      UInt64,
    Dest        UInt64,
    Tick        UInt64,
    Score       Float64
) ENGINE = MergeTree()
PARTITION BY toYYYYMM(Timestamp)
ORDER BY (Source, Dest, Timestamp);
`

// ClickHouseWriter implements the model.Writer interface for ClickHouse.
type ClickHouseWriter struct {
	conn     driver.Conn
	interval time.Duration
}

// NewClickHouseWriter creates a new ClickHouse writer for scored events.
func NewClickHouseWriter(cfg config.ClickHouseConfig, interval time.Duration) (model.Writer, error) {
	conn, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}

	if err := conn.Exec(context.Background(), createEdgeScoresTableStatement); err != nil {
		return nil, fmt.Errorf("failed to create edge_scores table: %w", err)
	}
	log.Println("Successfully connected to ClickHouse and ensured edge_scores table exists.")

	return &ClickHouseWriter{conn: conn, interval: interval}, nil
}

func (w *ClickHouseWriter) GetInterval() time.Duration {
	return w.interval
}

// Connect opens and pings a ClickHouse connection.
func Connect(cfg config.ClickHouseConfig) (driver.Conn, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	return conn, nil
}

func (w *ClickHouseWriter) Write(batch []model.ScoredEvent) error {
	chBatch, err := w.conn.PrepareBatch(context.Background(), "INSERT INTO edge_scores")
	if err != nil {
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	for _, se := range batch {
		if err := chBatch.Append(se.Observed, se.Source, se.Dest, se.Tick, se.Score); err != nil {
			return fmt.Errorf("failed to append scored event to batch: %w", err)
		}
	}

	if err := chBatch.Send(); err != nil {
		return fmt.Errorf("failed to send batch: %w", err)
	}

	log.Printf("Wrote %d scored events to ClickHouse", len(batch))
	return nil
}
