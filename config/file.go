package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File is the optional YAML configuration consumed by the CLI and daemon.
// The Lambda entrypoint never reads it; environment variables always win.
type File struct {
	Region  string      `yaml:"region"`
	Daemon  DaemonFile  `yaml:"daemon,omitempty"`
	OTEL    OTELFile    `yaml:"otel,omitempty"`
	Log     LogFile     `yaml:"log,omitempty"`
	Metrics MetricsFile `yaml:"metrics,omitempty"`
}

// DaemonFile holds scheduling settings for daemon mode.
type DaemonFile struct {
	IntervalStr string `yaml:"interval"`
	Interval    time.Duration `yaml:"-"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// OTELFile holds the optional OTLP push settings.
type OTELFile struct {
	Endpoint    string `yaml:"endpoint"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

// LogFile holds logging settings.
type LogFile struct {
	Level string `yaml:"level"`
}

// MetricsFile mirrors the METRICS_* environment pair for CLI use.
type MetricsFile struct {
	Enabled   *bool  `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

// DefaultFile returns the configuration used when no file is given.
func DefaultFile() *File {
	cfg := &File{}
	applyFileDefaults(cfg)
	cfg.Daemon.Interval = time.Hour
	return cfg
}

// LoadFile reads and parses a YAML config file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is intentional user input
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &File{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyFileDefaults(cfg)

	if cfg.Daemon.IntervalStr != "" {
		d, err := time.ParseDuration(cfg.Daemon.IntervalStr)
		if err != nil {
			return nil, fmt.Errorf("parse daemon interval %q: %w", cfg.Daemon.IntervalStr, err)
		}
		cfg.Daemon.Interval = d
	}

	return cfg, nil
}

func applyFileDefaults(cfg *File) {
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}
	if cfg.Daemon.IntervalStr == "" {
		cfg.Daemon.IntervalStr = "1h"
	}
	if cfg.Daemon.MetricsAddr == "" {
		cfg.Daemon.MetricsAddr = ":9090"
	}
	if cfg.OTEL.ServiceName == "" {
		cfg.OTEL.ServiceName = "eipreaper"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// Validate checks the configuration is usable.
func (f *File) Validate() error {
	if f.Region == "" {
		return fmt.Errorf("region is required")
	}
	if f.Daemon.Interval < 0 {
		return fmt.Errorf("daemon interval must not be negative")
	}
	return nil
}
