package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	libconfig "energyskill/backend/libs/config"
	"energyskill/backend/services/energy-skill/internal/clients"
)

const defaultPort = "8090"

// HTTPConfig configures the inbound listener.
type HTTPConfig struct {
	Port string `yaml:"port" env:"ENERGY_SKILL_HTTP_PORT"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level" env:"ENERGY_SKILL_LOG_LEVEL"`
}

// GivEnergyConfig points at the upstream APIs.
type GivEnergyConfig struct {
	APIURL     string        `yaml:"apiUrl" env:"GIVENERGY_API_URL"`
	ControlURL string        `yaml:"controlUrl" env:"GIVENERGY_CONTROL_URL"`
	Timeout    time.Duration `yaml:"timeout" env:"GIVENERGY_HTTP_TIMEOUT"`
}

// BreakerConfig configures the upstream circuit breaker.
type BreakerConfig struct {
	Enabled     bool          `yaml:"enabled" env:"GIVENERGY_BREAKER_ENABLED"`
	MaxFailures uint32        `yaml:"maxFailures" env:"GIVENERGY_BREAKER_MAX_FAILURES"`
	OpenTimeout time.Duration `yaml:"openTimeout" env:"GIVENERGY_BREAKER_OPEN_TIMEOUT"`
}

// MetricsConfig toggles the /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" env:"ENERGY_SKILL_METRICS_ENABLED"`
}

// Config defines energy-skill configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
	GivEnergy GivEnergyConfig `yaml:"givenergy"`
	Breaker   BreakerConfig   `yaml:"breaker"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{Port: defaultPort},
		GivEnergy: GivEnergyConfig{
			APIURL:     clients.DefaultAPIBaseURL,
			ControlURL: clients.DefaultControlBaseURL,
			Timeout:    5 * time.Second,
		},
		Breaker: BreakerConfig{
			Enabled:     false,
			MaxFailures: 5,
			OpenTimeout: 30 * time.Second,
		},
		Metrics: MetricsConfig{Enabled: true},
	}
}

// Load reads configuration via shared helper.
func Load() (*Config, error) {
	cfg := Default()
	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the upstream URLs.
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"givenergy api url":     c.GivEnergy.APIURL,
		"givenergy control url": c.GivEnergy.ControlURL,
	} {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config: %s must be an absolute http(s) url, got %q", name, raw)
		}
	}
	return nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = defaultPort
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// HTTPTimeout returns http client timeout.
func (c *Config) HTTPTimeout() time.Duration {
	if c.GivEnergy.Timeout <= 0 {
		return 5 * time.Second
	}
	return c.GivEnergy.Timeout
}

// BreakerSettings converts the breaker section for the clients package.
func (c *Config) BreakerSettings() clients.BreakerSettings {
	return clients.BreakerSettings{
		MaxFailures: c.Breaker.MaxFailures,
		OpenTimeout: c.Breaker.OpenTimeout,
	}
}
