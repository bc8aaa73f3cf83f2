package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Docker  DockerConfig  `mapstructure:"docker"`
	Sandbox SandboxConfig `mapstructure:"sandbox"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Transport string `mapstructure:"transport"`
	HTTPPort  int    `mapstructure:"http_port"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Mode  string `mapstructure:"mode"`
	Level string `mapstructure:"level"`
}

// DockerConfig holds the container engine connection parameters. The values
// default to the standard Docker environment variables so deployments keep
// working unchanged, but the rest of the application only ever sees this
// struct.
type DockerConfig struct {
	Host       string `mapstructure:"host"`
	APIVersion string `mapstructure:"api_version"`
	CertPath   string `mapstructure:"cert_path"`
	TLSVerify  bool   `mapstructure:"tls_verify"`
}

// SandboxConfig holds the sandbox provisioning policy. Every sandbox is
// created with these parameters; only the image varies per request.
type SandboxConfig struct {
	DefaultImage   string  `mapstructure:"default_image"`
	WorkDir        string  `mapstructure:"workdir"`
	StopTimeoutSec int     `mapstructure:"stop_timeout_sec"`
	MemoryMB       int     `mapstructure:"memory_mb"`
	CPUCores       float64 `mapstructure:"cpu_cores"`
	PIDsLimit      int     `mapstructure:"pids_limit"`
}

// New loads and validates the application configuration from the default
// search paths.
func New() (*Config, error) {
	return NewFromPath("")
}

// NewFromPath loads the configuration from config.yaml in the given
// directory, falling back to the default search paths when path is empty.
// Missing files are not an error; defaults apply.
func NewFromPath(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if path != "" {
		v.AddConfigPath(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Set default values
	v.SetDefault("server.transport", "stdio")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("logging.mode", "production")
	v.SetDefault("logging.level", "info")
	v.SetDefault("docker.host", "")
	v.SetDefault("docker.api_version", "")
	v.SetDefault("docker.cert_path", "")
	v.SetDefault("docker.tls_verify", false)
	v.SetDefault("sandbox.default_image", "python:3.12-slim-bookworm")
	v.SetDefault("sandbox.workdir", "/app")
	v.SetDefault("sandbox.stop_timeout_sec", 10)
	v.SetDefault("sandbox.memory_mb", 0)
	v.SetDefault("sandbox.cpu_cores", 0)
	v.SetDefault("sandbox.pids_limit", 0)

	// Standard Docker connection environment
	_ = v.BindEnv("docker.host", "DOCKER_HOST")
	_ = v.BindEnv("docker.api_version", "DOCKER_API_VERSION")
	_ = v.BindEnv("docker.cert_path", "DOCKER_CERT_PATH")
	_ = v.BindEnv("docker.tls_verify", "DOCKER_TLS_VERIFY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// If config file not found, continue with defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

// validate ensures the configuration is valid
func (c *Config) validate() error {
	if c.Server.Transport != "stdio" && c.Server.Transport != "http" {
		return fmt.Errorf("invalid server.transport: %s, must be 'stdio' or 'http'", c.Server.Transport)
	}

	if c.Logging.Mode != "production" && c.Logging.Mode != "development" {
		return fmt.Errorf("invalid logging.mode: %s, must be 'production' or 'development'", c.Logging.Mode)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging.level: %s, must be one of 'debug', 'info', 'warn', 'error'", c.Logging.Level)
	}

	if c.Sandbox.DefaultImage == "" {
		return fmt.Errorf("sandbox.default_image must not be empty")
	}

	if c.Sandbox.WorkDir == "" {
		return fmt.Errorf("sandbox.workdir must not be empty")
	}

	if c.Sandbox.StopTimeoutSec <= 0 {
		return fmt.Errorf("sandbox.stop_timeout_sec must be positive, got: %d", c.Sandbox.StopTimeoutSec)
	}

	if c.Sandbox.MemoryMB < 0 {
		return fmt.Errorf("sandbox.memory_mb must not be negative, got: %d", c.Sandbox.MemoryMB)
	}

	if c.Sandbox.CPUCores < 0 {
		return fmt.Errorf("sandbox.cpu_cores must not be negative, got: %g", c.Sandbox.CPUCores)
	}

	if c.Sandbox.PIDsLimit < 0 {
		return fmt.Errorf("sandbox.pids_limit must not be negative, got: %d", c.Sandbox.PIDsLimit)
	}

	return nil
}

// StopTimeout returns the teardown grace period as a duration.
func (c *Config) StopTimeout() time.Duration {
	return time.Duration(c.Sandbox.StopTimeoutSec) * time.Second
}
