package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Engine    EngineConfig    `yaml:"engine"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	// Path to the SQLite history database file.
	Path string `yaml:"path"`
}

type AuthConfig struct {
	// APIKey guards the calculation endpoints when set. Empty disables
	// auth; the read-only endpoints are always open.
	APIKey string `yaml:"api_key"`
}

type EngineConfig struct {
	// CorrectedMaxReps enables the fixed max-rep predictor. Off by
	// default: existing clients depend on the legacy search.
	CorrectedMaxReps bool `yaml:"corrected_max_reps"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. Env vars use the prefix RPECALC_ and underscore-separated paths:
//
//	RPECALC_SERVER_HOST, RPECALC_SERVER_PORT,
//	RPECALC_DB_PATH, RPECALC_AUTH_API_KEY,
//	RPECALC_ENGINE_CORRECTED_MAX_REPS,
//	RPECALC_TS_ENABLED, RPECALC_TS_HOSTNAME, RPECALC_TS_STATE_DIR
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("RPECALC_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("RPECALC_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("RPECALC_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("RPECALC_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("RPECALC_ENGINE_CORRECTED_MAX_REPS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Engine.CorrectedMaxReps = b
		}
	}
	if v := os.Getenv("RPECALC_TS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = b
		}
	}
	if v := os.Getenv("RPECALC_TS_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("RPECALC_TS_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale.enabled")
	}
	return nil
}
