// Package config provides configuration management for the PickScore application.
package config

import (
	"fmt"
	"time"
)

// Provider types
const (
	ProviderHTTP     = "http"
	ProviderPostgres = "postgres"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	Provider  ProviderConfig  `mapstructure:"provider" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Cache     CacheConfig     `mapstructure:"cache" validate:"required"`
	Query     QueryConfig     `mapstructure:"query" validate:"required"`
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Health    HealthConfig    `mapstructure:"health" validate:"required"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Secrets   SecretsConfig   `mapstructure:"secrets"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// ProviderConfig configures the upstream player and game log provider
type ProviderConfig struct {
	Type                          string  `mapstructure:"type" validate:"required,oneof=http postgres"`
	BaseURL                       string  `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey                        string  `mapstructure:"api_key"`
	UserAgent                     string  `mapstructure:"user_agent"`
	TimeoutSeconds                int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries                    int     `mapstructure:"max_retries" validate:"gte=0,lte=5"`
	RetryWaitMinMs                int     `mapstructure:"retry_wait_min_ms" validate:"gte=0"`
	RetryWaitMaxMs                int     `mapstructure:"retry_wait_max_ms" validate:"gte=0"`
	RateLimit                     float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	CircuitBreakerMax             int     `mapstructure:"circuit_breaker_max" validate:"required,gt=0"`
	CircuitBreakerCooldownSeconds int     `mapstructure:"circuit_breaker_cooldown_seconds" validate:"required,gt=0"`
}

// DatabaseConfig represents database connection configuration for the Postgres provider
type DatabaseConfig struct {
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"gte=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"gte=0"`
}

// CacheConfig holds the TTLs of the resolver and game log caches
type CacheConfig struct {
	PlayerTTLSeconds  int `mapstructure:"player_ttl_seconds" validate:"required,gt=0"`
	GameLogTTLSeconds int `mapstructure:"game_log_ttl_seconds" validate:"required,gt=0"`
}

// QueryConfig holds defaults the front ends apply when building a query
type QueryConfig struct {
	DefaultSeason       string `mapstructure:"default_season" validate:"omitempty,season"`
	DefaultLookback     int    `mapstructure:"default_lookback" validate:"required,min=5,max=15"`
	FetchTimeoutSeconds int    `mapstructure:"fetch_timeout_seconds" validate:"required,gt=0"`
}

// ServerConfig configures the HTTP front end
type ServerConfig struct {
	Port                int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int      `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds int      `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	AllowedOrigins      []string `mapstructure:"allowed_origins"`
}

// HealthConfig configures the health check server
type HealthConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

// SchedulerConfig configures background jobs
type SchedulerConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	RegistryRefresh string `mapstructure:"registry_refresh" validate:"omitempty,cronspec"`
}

// SecretsConfig configures the AWS Secrets Manager overlay
type SecretsConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Region     string `mapstructure:"region" validate:"required_if=Enabled true"`
	SecretName string `mapstructure:"secret_name" validate:"required_if=Enabled true"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// ProviderTimeout returns the per-request upstream timeout
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.Provider.TimeoutSeconds) * time.Second
}

// PlayerCacheTTL returns the resolver cache TTL
func (c *Config) PlayerCacheTTL() time.Duration {
	return time.Duration(c.Cache.PlayerTTLSeconds) * time.Second
}

// GameLogCacheTTL returns the game log cache TTL
func (c *Config) GameLogCacheTTL() time.Duration {
	return time.Duration(c.Cache.GameLogTTLSeconds) * time.Second
}

// FetchTimeout returns the budget for one game log fetch
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Query.FetchTimeoutSeconds) * time.Second
}
