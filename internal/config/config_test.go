package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
detector:
  variant: midasr
  rows: 2
  buckets: 769
  m_value: 773
  alpha: 0.6
  seed: 538
ingest:
  nats_url: nats://127.0.0.1:4222
  subject: midasflow.events.raw
  size_of_event_channel: 1024
writers:
  - type: text
    enabled: true
    flush_interval: 10s
    text:
      root_path: /tmp/scores
  - type: clickhouse
    enabled: false
    flush_interval: 5s
    clickhouse:
      host: 127.0.0.1
      port: 9000
      database: midasflow
alerter:
  enabled: true
  check_interval: 1m
  min_score: 5.0
api:
  listen_addr: :8080
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "midasr", cfg.Detector.Variant)
	assert.Equal(t, uint64(769), cfg.Detector.Buckets)
	assert.Equal(t, 0.6, cfg.Detector.Alpha)
	assert.Equal(t, "midasflow.events.raw", cfg.Ingest.Subject)

	require.Len(t, cfg.Writers, 2)
	assert.True(t, cfg.Writers[0].Enabled)
	assert.Equal(t, "/tmp/scores", cfg.Writers[0].Text.RootPath)
	assert.Equal(t, "midasflow", cfg.Writers[1].ClickHouse.Database)

	assert.True(t, cfg.Alerter.Enabled)
	assert.Equal(t, 5.0, cfg.Alerter.MinScore)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
