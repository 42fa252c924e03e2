package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"ScoringDesk/internal/endpoint"
)

// Config holds all application configuration.
type Config struct {
	Backend struct {
		Context        string `yaml:"context"`    // "client" or "server"
		ServerURL      string `yaml:"server_url"` // used for server-facing execution
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"backend"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Session struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"session"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	DevServer struct {
		Addr     string `yaml:"addr"`
		Fixtures string `yaml:"fixtures"`
	} `yaml:"devserver"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("DESK_CONTEXT"); v != "" {
		cfg.Backend.Context = v
	}
	if v := os.Getenv("BACKEND_URL"); v != "" {
		cfg.Backend.ServerURL = v
	}
	if v := os.Getenv("BACKEND_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Backend.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SESSION_FILE"); v != "" {
		cfg.Session.StateFile = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DEVSERVER_ADDR"); v != "" {
		cfg.DevServer.Addr = v
	}
	if v := os.Getenv("DEVSERVER_FIXTURES"); v != "" {
		cfg.DevServer.Fixtures = v
	}

	// Defaults
	if cfg.Backend.Context == "" {
		cfg.Backend.Context = "server"
	}
	if cfg.Backend.TimeoutSeconds == 0 {
		cfg.Backend.TimeoutSeconds = 30
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */5 * * * *"
	}
	if cfg.Session.StateFile == "" {
		cfg.Session.StateFile = "data/session.json"
	}
	if cfg.DevServer.Addr == "" {
		cfg.DevServer.Addr = ":8080"
	}

	return cfg, nil
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	if _, err := endpoint.ParseContext(c.Backend.Context); err != nil {
		return fmt.Errorf("backend.context: %w", err)
	}
	if c.Backend.TimeoutSeconds <= 0 {
		return fmt.Errorf("backend.timeout_seconds must be positive")
	}
	if c.Schedule.RefreshCron == "" {
		return fmt.Errorf("schedule.refresh_cron is required")
	}
	return nil
}

// ExecutionContext returns the parsed backend.context. Call Validate first.
func (c *Config) ExecutionContext() endpoint.Context {
	ctx, _ := endpoint.ParseContext(c.Backend.Context)
	return ctx
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}
