// Package config provides configuration management for the PickScore application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "PICKSCORE"

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for every field, so a
// missing file is not an error
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "pickscore")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("provider.type", ProviderHTTP)
	v.SetDefault("provider.base_url", "http://localhost:8070/v1")
	v.SetDefault("provider.api_key", "")
	v.SetDefault("provider.user_agent", "pickscore/1.0")
	v.SetDefault("provider.timeout_seconds", 15)
	v.SetDefault("provider.max_retries", 0)
	v.SetDefault("provider.retry_wait_min_ms", 250)
	v.SetDefault("provider.retry_wait_max_ms", 2000)
	v.SetDefault("provider.rate_limit", 2.0)
	v.SetDefault("provider.circuit_breaker_max", 5)
	v.SetDefault("provider.circuit_breaker_cooldown_seconds", 60)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "pickscore")
	v.SetDefault("database.user", "pickscore")
	v.SetDefault("database.password", "")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 5)
	v.SetDefault("database.max_idle_connections", 2)

	v.SetDefault("cache.player_ttl_seconds", 1800)
	v.SetDefault("cache.game_log_ttl_seconds", 300)

	v.SetDefault("query.default_season", "")
	v.SetDefault("query.default_lookback", 10)
	v.SetDefault("query.fetch_timeout_seconds", 20)

	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout_seconds", 10)
	v.SetDefault("server.write_timeout_seconds", 30)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("health.port", 8081)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.registry_refresh", "@every 25m")

	v.SetDefault("secrets.enabled", false)
	v.SetDefault("secrets.region", "")
	v.SetDefault("secrets.secret_name", "")
}
