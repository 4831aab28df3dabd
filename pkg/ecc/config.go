package ecc

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/smallyu/go-secp256k1-ecc/internal/crypto/curves"
	"github.com/smallyu/go-secp256k1-ecc/internal/logs"
)

// ContextPolicy selects how an Engine obtains curve contexts.
type ContextPolicy string

const (
	// PolicyPerCall creates a fresh context for every operation.
	PolicyPerCall ContextPolicy = "per-call"

	// PolicyShared creates one context when the Engine is built and
	// serializes every operation on it.
	PolicyShared ContextPolicy = "shared"
)

// Config holds the Engine settings. LogLevel is validated here but applied by
// the host program, since the logger is shared by the whole process.
type Config struct {
	Curve         string        `mapstructure:"curve"`
	ContextPolicy ContextPolicy `mapstructure:"context_policy"`
	Randomize     bool          `mapstructure:"randomize"`
	LogLevel      string        `mapstructure:"log_level"`
}

// DefaultConfig returns per-call randomized contexts on the decred backend.
func DefaultConfig() *Config {
	return &Config{
		Curve:         curves.DefaultCurve,
		ContextPolicy: PolicyPerCall,
		Randomize:     true,
		LogLevel:      "info",
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("curve", def.Curve)
	v.SetDefault("context_policy", string(def.ContextPolicy))
	v.SetDefault("randomize", def.Randomize)
	v.SetDefault("log_level", def.LogLevel)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every field names a known value.
func (c *Config) Validate() error {
	if _, err := curves.ByName(c.Curve); err != nil {
		return wrapError("config", ErrUnknownCurve, fmt.Sprintf("unknown curve backend %q", c.Curve), err)
	}
	switch c.ContextPolicy {
	case PolicyPerCall, PolicyShared:
	default:
		return fmt.Errorf("config: unknown context policy %q", c.ContextPolicy)
	}
	if _, err := logs.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
