package config

import (
	"os"

	"github.com/tnicklin/omegastrikers/logger"
	"github.com/tnicklin/omegastrikers/metrics"
	"github.com/tnicklin/omegastrikers/strikers"
	"go.uber.org/config"
)

// AppConfig holds all client configuration.
type AppConfig struct {
	Logger   logger.Config   `yaml:"logger"`
	Strikers strikers.Config `yaml:"strikers"`
	Metrics  metrics.Config  `yaml:"metrics"`
}

// Load reads configuration from the specified YAML files.
// Files are merged in order, with later files overriding earlier ones.
// Missing files are silently ignored.
func Load(files ...string) (*AppConfig, error) {
	opts := make([]config.YAMLOption, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			opts = append(opts, config.File(f))
		}
	}

	if len(opts) == 0 {
		return nil, os.ErrNotExist
	}

	provider, err := config.NewYAML(opts...)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := provider.Get(config.Root).Populate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration and fills every unset value.
func LoadWithDefaults(files ...string) (*AppConfig, error) {
	cfg, err := Load(files...)
	if err != nil {
		return nil, err
	}

	cfg.Logger.Defaults()
	cfg.Strikers.Defaults()
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "strikers"
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = "client"
	}

	return cfg, nil
}

// Client bundles everything NewClient builds. Metrics is nil unless enabled;
// when set, Metrics.Gatherer() serves the recorded series.
type Client struct {
	Strikers *strikers.DefaultClient
	Logger   *logger.DefaultLogger
	Metrics  *metrics.Manager
}

// NewClient builds a logger, an optional metrics manager and a client from cfg.
func NewClient(cfg *AppConfig) (*Client, error) {
	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, err
	}

	var m *metrics.Manager
	if cfg.Metrics.Enabled {
		m = metrics.NewManager(cfg.Metrics.Options()...)
	}

	client, err := strikers.New(strikers.Params{
		Config:  cfg.Strikers,
		Logger:  appLogger,
		Metrics: m,
	})
	if err != nil {
		return nil, err
	}
	return &Client{Strikers: client, Logger: appLogger, Metrics: m}, nil
}
