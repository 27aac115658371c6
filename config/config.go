package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvBaseURL and EnvAPIKey are read in addition to the FR24_ prefixed variables
	EnvBaseURL = "FLIGHT_RADAR_BASE_URL"
	EnvAPIKey  = "FLIGHT_RADAR_API_KEY"

	envPrefix = "FR24"
)

// Load loads the configuration from file and environment. Without an explicit
// path a missing config file is not an error, so the CLI can run from
// environment variables alone.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api.base_url", envPrefix+"_API_BASE_URL", EnvBaseURL); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}
	if err := v.BindEnv("api.api_key", envPrefix+"_API_API_KEY", EnvAPIKey); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".fr24"))
		}

		// Check /etc
		v.AddConfigPath("/etc/fr24/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.base_url", "https://fr24api.flightradar24.com/api")
	v.SetDefault("api.api_key", "")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("api.user_agent", "fr24-cli")
	v.SetDefault("api.rate_limit", 0)
	v.SetDefault("api.burst", 1)

	// Output defaults
	v.SetDefault("output.format", "table")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// ApplyOverrides replaces the output format and logging level with the
// non-empty values given on the command line and validates the result.
func (c *Config) ApplyOverrides(outputFormat, logLevel string) error {
	if outputFormat != "" {
		c.Output.Format = strings.ToLower(outputFormat)
	}
	if logLevel != "" {
		c.Logging.Level = strings.ToLower(logLevel)
	}
	return validate(c)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) URL: %s", cfg.API.BaseURL)
	}

	if cfg.API.APIKey == "" || cfg.API.APIKey == "your-api-key-here" {
		return fmt.Errorf("api.api_key must be set to a valid API key (or %s)", EnvAPIKey)
	}

	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive: %s", cfg.API.Timeout)
	}

	if cfg.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must not be negative: %v", cfg.API.RateLimit)
	}
	if cfg.API.RateLimit > 0 && cfg.API.Burst < 1 {
		return fmt.Errorf("api.burst must be at least 1 when api.rate_limit is set")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if cfg.Output.Format != "table" && cfg.Output.Format != "json" {
		return fmt.Errorf("invalid output format: %s (must be 'table' or 'json')", cfg.Output.Format)
	}

	for name, expression := range cfg.Filter {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter %q has an empty expression", name)
		}
	}

	return nil
}
