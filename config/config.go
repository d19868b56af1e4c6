package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv     string `mapstructure:"APP_ENV"`
	ServerPort string `mapstructure:"SERVER_PORT"`

	DBHost     string `mapstructure:"POSTGRES_HOST"`
	DBPort     string `mapstructure:"POSTGRES_PORT"`
	DBUser     string `mapstructure:"POSTGRES_USER"`
	DBPassword string `mapstructure:"POSTGRES_PASSWORD"`
	DBName     string `mapstructure:"POSTGRES_DB"`
	DBSSLMode  string `mapstructure:"POSTGRES_SSLMODE"`

	JWTSecret        string `mapstructure:"JWT_SECRET"`
	TokenExpiryHours int    `mapstructure:"TOKEN_EXPIRY_HOURS"`

	SendgridAPIKey string `mapstructure:"SENDGRID_API_KEY"`
	EmailFrom      string `mapstructure:"EMAIL_FROM"`
	EmailFromName  string `mapstructure:"EMAIL_FROM_NAME"`

	GatewayAPIURL        string `mapstructure:"GATEWAY_API_URL"`
	GatewayAPIKey        string `mapstructure:"GATEWAY_API_KEY"`
	GatewayWebhookSecret string `mapstructure:"GATEWAY_WEBHOOK_SECRET"`

	PolicyFile string `mapstructure:"POLICY_FILE"`
}

// Load reads configuration from the environment, with an optional .env
// file for local development. Missing optional values fall back to the
// defaults below; the caller decides which fields are fatal.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("TOKEN_EXPIRY_HOURS", 24)
	v.SetDefault("EMAIL_FROM_NAME", "Nimbusmart")
	v.AutomaticEnv()

	// AutomaticEnv alone does not populate Unmarshal; bind each key.
	for _, key := range []string{
		"APP_ENV", "SERVER_PORT",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB", "POSTGRES_SSLMODE",
		"JWT_SECRET", "TOKEN_EXPIRY_HOURS",
		"SENDGRID_API_KEY", "EMAIL_FROM", "EMAIL_FROM_NAME",
		"GATEWAY_API_URL", "GATEWAY_API_KEY", "GATEWAY_WEBHOOK_SECRET",
		"POLICY_FILE",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Production reports whether the process runs with production behavior
// (no OTP fallback in API responses).
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}
