package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultMaxLinesPerLogFile = 1_000_000
	DefaultHTTPPort           = 8080
	DefaultMaxConcurrentReplays = 4
	DefaultGlob               = "*.log"
)

// Config is the top-level historyd configuration. Fields map 1:1 to the
// YAML layout shown in SPEC_FULL.md §8.
type Config struct {
	LogSource LogSourceConfig `yaml:"log_source"`
	Server    ServerConfig    `yaml:"server"`
	Archive   ArchiveConfig   `yaml:"archive"`
}

// LogSourceConfig selects and configures the logsource.Source backing
// every replay.
type LogSourceConfig struct {
	// Kind is one of: local | http_archive.
	Kind string `yaml:"kind"`

	// Dir is the log directory, used when Kind == "local".
	Dir string `yaml:"dir"`

	// Glob restricts which files in Dir are considered, used when
	// Kind == "local".
	Glob string `yaml:"glob"`

	// BaseURL is the archive server's base URL, used when
	// Kind == "http_archive".
	BaseURL string `yaml:"base_url"`

	// Auth configures how HTTPArchive authenticates to BaseURL.
	Auth AuthConfig `yaml:"auth"`

	// MaxLinesPerLogFile is the soft per-file truncation threshold
	// (spec.md §4.1, §6 "max_lines_per_log_file").
	MaxLinesPerLogFile int `yaml:"max_lines_per_log_file"`
}

// AuthConfig specifies how to authenticate to an HTTP log archive or
// upstream delivery endpoint. Mirrors the teacher's AuthConfig, with
// Header added for the apikey mode this module needs.
type AuthConfig struct {
	// Mode is one of: mtls | apikey | bearer | basic | none.
	Mode string `yaml:"mode"`

	// mTLS fields — used when Mode == "mtls".
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
	CAFile   string `yaml:"ca_file"`

	// API key fields — used when Mode == "apikey".
	Header string `yaml:"header"`
	KeyEnv string `yaml:"key_env"`

	// Bearer token fields — used when Mode == "bearer".
	TokenEnv string `yaml:"token_env"`

	// Basic auth fields — used when Mode == "basic".
	Username    string `yaml:"username"`
	PasswordEnv string `yaml:"password_env"`

	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

// Key returns the API key value resolved from the environment.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// Token returns the bearer token value resolved from the environment.
func (a AuthConfig) Token() string {
	if a.TokenEnv == "" {
		return ""
	}
	return os.Getenv(a.TokenEnv)
}

// Password returns the basic-auth password resolved from the environment.
func (a AuthConfig) Password() string {
	if a.PasswordEnv == "" {
		return ""
	}
	return os.Getenv(a.PasswordEnv)
}

// ServerConfig holds historyd's HTTP server settings.
type ServerConfig struct {
	HTTPPort             int              `yaml:"http_port"`
	MaxConcurrentReplays int              `yaml:"max_concurrent_replays"`
	Auth                 ServerAuthConfig `yaml:"auth"`
}

// ServerAuthConfig configures REST API authentication.
type ServerAuthConfig struct {
	// Mode is one of: apikey | none.
	Mode   string `yaml:"mode"`
	Header string `yaml:"header"`
	KeyEnv string `yaml:"key_env"`
}

// Key returns the server API key resolved from the environment.
func (a ServerAuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// ArchiveConfig configures the optional sink.Shipper delivery target.
type ArchiveConfig struct {
	// Endpoint is the archival HTTP endpoint. Empty disables the
	// Shipper sink.
	Endpoint string `yaml:"endpoint"`
	KeyEnv   string `yaml:"key_env"`
}

// Key returns the archive delivery key resolved from the environment.
func (a ArchiveConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// Load reads and parses the YAML config file at path. Missing optional
// fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		LogSource: LogSourceConfig{
			Kind:               "local",
			Glob:               DefaultGlob,
			MaxLinesPerLogFile: DefaultMaxLinesPerLogFile,
		},
		Server: ServerConfig{
			HTTPPort:             DefaultHTTPPort,
			MaxConcurrentReplays: DefaultMaxConcurrentReplays,
		},
	}
}

func validate(cfg *Config) error {
	switch cfg.LogSource.Kind {
	case "local":
		if cfg.LogSource.Dir == "" {
			return fmt.Errorf("log_source.dir is required when kind is %q", "local")
		}
	case "http_archive":
		if cfg.LogSource.BaseURL == "" {
			return fmt.Errorf("log_source.base_url is required when kind is %q", "http_archive")
		}
	default:
		return fmt.Errorf("log_source.kind: unknown kind %q", cfg.LogSource.Kind)
	}

	if cfg.LogSource.MaxLinesPerLogFile <= 0 {
		return fmt.Errorf("log_source.max_lines_per_log_file must be positive")
	}

	if cfg.Server.HTTPPort <= 0 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port out of range")
	}
	if cfg.Server.MaxConcurrentReplays <= 0 {
		return fmt.Errorf("server.max_concurrent_replays must be positive")
	}
	switch cfg.Server.Auth.Mode {
	case "apikey", "none", "":
	default:
		return fmt.Errorf("server.auth.mode: unknown mode %q", cfg.Server.Auth.Mode)
	}

	switch cfg.LogSource.Auth.Mode {
	case "mtls", "apikey", "bearer", "basic", "none", "":
	default:
		return fmt.Errorf("log_source.auth.mode: unknown mode %q", cfg.LogSource.Auth.Mode)
	}

	return nil
}
