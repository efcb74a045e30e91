/**
 * @description
 * This file handles configuration management for the payments service.
 * It loads settings from environment variables, providing defaults for
 * everything except the secrets and connection strings that must be set.
 */
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the payments service.
type Config struct {
	ServerPort           string        `mapstructure:"SERVER_PORT"`
	DatabaseURL          string        `mapstructure:"DATABASE_URL"`
	RedisURL             string        `mapstructure:"REDIS_URL"`
	RedisRateLimitPrefix string        `mapstructure:"REDIS_RATE_LIMIT_PREFIX"`
	RabbitMQURL          string        `mapstructure:"RABBITMQ_URL"`
	JWTSecret            string        `mapstructure:"JWT_SECRET"`
	JWTIssuer            string        `mapstructure:"JWT_ISSUER"`
	TokenTTL             time.Duration `mapstructure:"TOKEN_TTL"`
	BcryptCost           int           `mapstructure:"BCRYPT_COST"`
	AllowedOrigins       []string      `mapstructure:"ALLOWED_ORIGINS"`
	RegisterRateLimit    int           `mapstructure:"REGISTER_RATE_LIMIT"`
	LoginRateLimit       int           `mapstructure:"LOGIN_RATE_LIMIT"`
	RateLimitWindow      time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	ReconcileSchedule    string        `mapstructure:"RECONCILE_SCHEDULE"`
	PendingMaxAge        time.Duration `mapstructure:"PENDING_MAX_AGE"`
	TLSCertFile          string        `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile           string        `mapstructure:"TLS_KEY_FILE"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	viper.SetDefault("SERVER_PORT", "8443")
	viper.SetDefault("REDIS_RATE_LIMIT_PREFIX", "swiftremit:rate_limit")
	viper.SetDefault("JWT_ISSUER", "swiftremit-payments")
	viper.SetDefault("TOKEN_TTL", "1h")
	viper.SetDefault("BCRYPT_COST", 10)
	viper.SetDefault("ALLOWED_ORIGINS", []string{"https://localhost:3000"})
	viper.SetDefault("REGISTER_RATE_LIMIT", 5)
	viper.SetDefault("LOGIN_RATE_LIMIT", 10)
	viper.SetDefault("RATE_LIMIT_WINDOW", "15m")
	viper.SetDefault("RECONCILE_SCHEDULE", "*/30 * * * *") // Every 30 minutes.
	viper.SetDefault("PENDING_MAX_AGE", "72h")
	viper.AutomaticEnv()

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("REDIS_RATE_LIMIT_PREFIX")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("JWT_SECRET")
	_ = viper.BindEnv("JWT_ISSUER")
	_ = viper.BindEnv("TOKEN_TTL")
	_ = viper.BindEnv("BCRYPT_COST")
	_ = viper.BindEnv("ALLOWED_ORIGINS")
	_ = viper.BindEnv("REGISTER_RATE_LIMIT")
	_ = viper.BindEnv("LOGIN_RATE_LIMIT")
	_ = viper.BindEnv("RATE_LIMIT_WINDOW")
	_ = viper.BindEnv("RECONCILE_SCHEDULE")
	_ = viper.BindEnv("PENDING_MAX_AGE")
	_ = viper.BindEnv("TLS_CERT_FILE")
	_ = viper.BindEnv("TLS_KEY_FILE")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL must be set")
	}
	if config.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return &config, nil
}
