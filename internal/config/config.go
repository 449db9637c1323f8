package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Rates    RatesConfig    `mapstructure:"rates"`
	Business BusinessConfig `mapstructure:"business"`
	Health   HealthConfig   `mapstructure:"health"`
}

type ServerConfig struct {
	Port string `mapstructure:"SERVER_PORT"`
	Host string `mapstructure:"SERVER_HOST"`
	Env  string `mapstructure:"ENV"`
}

type DatabaseConfig struct {
	URL          string `mapstructure:"DATABASE_URL"`
	MaxOpenConns int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type RatesConfig struct {
	SourceURL       string `mapstructure:"PRIME_RATE_SOURCE_URL"`
	FetchTimeout    string `mapstructure:"PRIME_RATE_FETCH_TIMEOUT"`
	CacheTTL        string `mapstructure:"PRIME_RATE_CACHE_TTL"`
	FallbackPercent string `mapstructure:"PRIME_RATE_FALLBACK"`
	RefreshSchedule string `mapstructure:"PRIME_RATE_REFRESH_SCHEDULE"`
}

type BusinessConfig struct {
	DefaultAffordabilityRatio string `mapstructure:"DEFAULT_AFFORDABILITY_RATIO"`
	SavingsHorizonMonths      int    `mapstructure:"SAVINGS_HORIZON_MONTHS"`
	PersistTimeout            string `mapstructure:"PERSIST_TIMEOUT"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("PRIME_RATE_FETCH_TIMEOUT", "10s")
	viper.SetDefault("PRIME_RATE_CACHE_TTL", "24h")
	viper.SetDefault("PRIME_RATE_FALLBACK", "11.25")
	viper.SetDefault("PRIME_RATE_REFRESH_SCHEDULE", "0 0 6 * * *")
	viper.SetDefault("DEFAULT_AFFORDABILITY_RATIO", "0.30")
	viper.SetDefault("SAVINGS_HORIZON_MONTHS", 1200)
	viper.SetDefault("PERSIST_TIMEOUT", "5s")
	viper.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Business.SavingsHorizonMonths <= 0 {
		return fmt.Errorf("SAVINGS_HORIZON_MONTHS must be greater than 0")
	}

	ratio, err := decimal.NewFromString(c.Business.DefaultAffordabilityRatio)
	if err != nil {
		return fmt.Errorf("DEFAULT_AFFORDABILITY_RATIO must be a valid decimal: %w", err)
	}
	if ratio.LessThanOrEqual(decimal.Zero) || ratio.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("DEFAULT_AFFORDABILITY_RATIO must be between 0 and 1")
	}

	if _, err := decimal.NewFromString(c.Rates.FallbackPercent); err != nil {
		return fmt.Errorf("PRIME_RATE_FALLBACK must be a valid decimal: %w", err)
	}

	if _, err := time.ParseDuration(c.Rates.CacheTTL); err != nil {
		return fmt.Errorf("PRIME_RATE_CACHE_TTL must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Rates.FetchTimeout); err != nil {
		return fmt.Errorf("PRIME_RATE_FETCH_TIMEOUT must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Business.PersistTimeout); err != nil {
		return fmt.Errorf("PERSIST_TIMEOUT must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetDefaultAffordabilityRatio returns the default affordability ratio as decimal
func (c *Config) GetDefaultAffordabilityRatio() decimal.Decimal {
	ratio, _ := decimal.NewFromString(c.Business.DefaultAffordabilityRatio)
	return ratio
}

// GetFallbackPrimeRate returns the fallback prime rate as decimal
func (c *Config) GetFallbackPrimeRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Rates.FallbackPercent)
	return rate
}

// GetRateCacheTTL returns the prime rate cache TTL as duration
func (c *Config) GetRateCacheTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Rates.CacheTTL)
	return ttl
}

// GetRateFetchTimeout returns the prime rate fetch timeout as duration
func (c *Config) GetRateFetchTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Rates.FetchTimeout)
	return timeout
}

// GetPersistTimeout returns the background persistence timeout as duration
func (c *Config) GetPersistTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Business.PersistTimeout)
	return timeout
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
