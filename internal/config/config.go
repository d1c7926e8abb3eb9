package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DetectorConfig selects and sizes the scoring core.
type DetectorConfig struct {
	// Variant is "midas" (fixed window) or "midasr" (decayed).
	Variant string  `yaml:"variant"`
	Rows    uint64  `yaml:"rows"`
	Buckets uint64  `yaml:"buckets"`
	MValue  uint64  `yaml:"m_value"`
	Alpha   float64 `yaml:"alpha"`
	Seed    uint64  `yaml:"seed"`
}

// IngestConfig holds the NATS transport settings shared by probe and engine.
type IngestConfig struct {
	NATSURL            string `yaml:"nats_url"`
	Subject            string `yaml:"subject"`
	SizeOfEventChannel int    `yaml:"size_of_event_channel"`
}

// ProbeConfig configures live capture on the probe side.
type ProbeConfig struct {
	Interface string `yaml:"interface"`
	// TickInterval is the wall-clock width of one logical tick, e.g. "1s".
	TickInterval string `yaml:"tick_interval"`
}

// TextConfig configures the plain-text score writer.
type TextConfig struct {
	RootPath string `yaml:"root_path"`
}

// ClickHouseConfig holds the connection settings for the ClickHouse sink.
type ClickHouseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// WriterDef defines a single score sink.
type WriterDef struct {
	Type          string           `yaml:"type"`
	Enabled       bool             `yaml:"enabled"`
	FlushInterval string           `yaml:"flush_interval"`
	Text          TextConfig       `yaml:"text"`
	ClickHouse    ClickHouseConfig `yaml:"clickhouse"`
}

// AlerterConfig configures threshold alerting on scored events.
type AlerterConfig struct {
	Enabled       bool    `yaml:"enabled"`
	CheckInterval string  `yaml:"check_interval"`
	MinScore      float64 `yaml:"min_score"`
}

// SMTPConfig holds the settings for the email notifier.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	To       string `yaml:"to"`
}

// APIConfig holds the settings for the HTTP query API.
type APIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Detector DetectorConfig `yaml:"detector"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Probe    ProbeConfig    `yaml:"probe"`
	Writers  []WriterDef    `yaml:"writers"`
	Alerter  AlerterConfig  `yaml:"alerter"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	API      APIConfig      `yaml:"api"`
}

// LoadConfig reads the configuration from a YAML file and returns a Config struct.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	return &cfg, nil
}
