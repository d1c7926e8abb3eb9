package query

import (
	"context"
	"fmt"
	"time"

	"MidasFlow/internal/config"
	"MidasFlow/internal/engine"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// TopEdge is one row of a top-anomalies query: an edge with its worst score
// over the queried range.
type TopEdge struct {
	Source   uint64    `json:"source"`
	Dest     uint64    `json:"dest"`
	MaxScore float64   `json:"max_score"`
	Events   uint64    `json:"events"`
	LastSeen time.Time `json:"last_seen"`
}

// ScorePoint is one observation in an edge's score history.
type ScorePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Tick      uint64    `json:"tick"`
	Score     float64   `json:"score"`
}

// Querier defines the interface for querying stored edge scores.
type Querier interface {
	TopAnomalies(ctx context.Context, since time.Time, limit int) ([]TopEdge, error)
	TraceEdge(ctx context.Context, source, dest uint64, start, end time.Time) ([]ScorePoint, error)
}

// clickhouseQuerier implements the Querier interface for ClickHouse.
type clickhouseQuerier struct {
	conn driver.Conn
}

// NewClickHouseQuerier creates a new querier for ClickHouse.
func NewClickHouseQuerier(cfg config.ClickHouseConfig) (Querier, error) {
	conn, err := engine.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}
	return &clickhouseQuerier{conn: conn}, nil
}

// TopAnomalies returns the edges with the highest scores since the given
// time, worst first.
func (q *clickhouseQuerier) TopAnomalies(ctx context.Context, since time.Time, limit int) ([]TopEdge, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := q.conn.Query(ctx, `
		SELECT
			Source,
			Dest,
			max(Score)     AS MaxScore,
			count(*)       AS Events,
			max(Timestamp) AS LastSeen
		FROM edge_scores
		WHERE Timestamp >= ?
		GROUP BY Source, Dest
		ORDER BY MaxScore DESC
		LIMIT ?
	`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var edges []TopEdge
	for rows.Next() {
		var e TopEdge
		if err := rows.Scan(&e.Source, &e.Dest, &e.MaxScore, &e.Events, &e.LastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		edges = append(edges, e)
	}

	return edges, rows.Err()
}

// TraceEdge returns the stored score history of one edge over a time range,
// oldest first.
func (q *clickhouseQuerier) TraceEdge(ctx context.Context, source, dest uint64, start, end time.Time) ([]ScorePoint, error) {
	rows, err := q.conn.Query(ctx, `
		SELECT Timestamp, Tick, Score
		FROM edge_scores
		WHERE Source = ? AND Dest = ? AND Timestamp >= ? AND Timestamp <= ?
		ORDER BY Timestamp
	`, source, dest, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	var points []ScorePoint
	for rows.Next() {
		var p ScorePoint
		if err := rows.Scan(&p.Timestamp, &p.Tick, &p.Score); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		points = append(points, p)
	}

	return points, rows.Err()
}
