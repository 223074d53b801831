package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type DashboardConfig struct {
	BackendAddress       string        `yaml:"backend_address"`
	ListenPort           string        `yaml:"listen_port"`
	SessionFile          string        `yaml:"session_file"`
	RefreshInterval      time.Duration `yaml:"refresh_interval"`
	TrainingPollInterval time.Duration `yaml:"training_poll_interval"`
	LogLevel             string        `yaml:"log_level"`
}

const (
	_listenPortDefault           = "8090"
	_sessionFileDefault          = "./.dashboard-session.json"
	_refreshIntervalDefault      = 20 * time.Second
	_trainingPollIntervalDefault = 10 * time.Second
	_logLevelDefault             = "info"
)

func (c *DashboardConfig) Setup() error {
	if c.BackendAddress == "" {
		return fmt.Errorf("backend address is required")
	}

	if _, err := url.Parse(c.BackendAddress); err != nil {
		return err
	}

	if c.ListenPort == "" {
		c.ListenPort = _listenPortDefault
	}
	if c.SessionFile == "" {
		c.SessionFile = _sessionFileDefault
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = _refreshIntervalDefault
	}
	if c.TrainingPollInterval <= 0 {
		c.TrainingPollInterval = _trainingPollIntervalDefault
	}
	if c.LogLevel == "" {
		c.LogLevel = _logLevelDefault
	}

	return nil
}

func LoadDashboardConfig(filename string) (DashboardConfig, error) {
	var cfg DashboardConfig
	input, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("%w: can't read file", err)
	}

	if err := yaml.Unmarshal(input, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: can't unmarshal config", err)
	}

	if err := cfg.Setup(); err != nil {
		return cfg, fmt.Errorf("%w: can't setup cfg", err)
	}

	return cfg, nil
}
