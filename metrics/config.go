package metrics

// Config holds metrics configuration.
type Config struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Subsystem string `yaml:"subsystem"`
	// Buckets overrides the latency histogram buckets, in seconds.
	Buckets []float64 `yaml:"buckets"`
}

// Options converts the config into Manager options.
func (c Config) Options() []Option {
	return []Option{
		WithMetricsEnabled(c.Enabled),
		WithNamespace(c.Namespace),
		WithSubsystem(c.Subsystem),
		WithHistogramBuckets(c.Buckets),
	}
}
