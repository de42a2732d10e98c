package strikers

import (
	"github.com/tnicklin/omegastrikers/resolver"
	"github.com/tnicklin/omegastrikers/transport"
)

// Config holds client configuration.
type Config struct {
	Token     string           `yaml:"token"`
	Refresh   string           `yaml:"refresh"`
	Transport transport.Config `yaml:"transport"`
	// StrictResolve makes Search fail with KindAmbiguous instead of
	// returning the first of several inexact matches.
	StrictResolve bool `yaml:"strict_resolve"`
}

// Defaults applies default values to the config.
func (c *Config) Defaults() {
	c.Transport.Defaults()
}

func (c Config) policy() resolver.Policy {
	if c.StrictResolve {
		return resolver.PolicyStrict
	}
	return resolver.PolicyFirstMatch
}
