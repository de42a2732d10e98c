package transport

import (
	"net/http"
	"time"
)

const (
	DefaultBaseURL   = "https://prometheus-proxy.odysseyinteractive.gg/api"
	DefaultUserAgent = "omegastrikers-go/1.0"
	DefaultTimeout   = 30 * time.Second
)

// Config holds transport configuration.
type Config struct {
	BaseURL   string        `yaml:"base_url"`
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
	// RequestsPerSecond paces outgoing requests. Zero disables pacing.
	RequestsPerSecond float64      `yaml:"requests_per_second"`
	HTTPClient        *http.Client `yaml:"-"`
}

// Defaults applies default values to the config.
func (c *Config) Defaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
}
