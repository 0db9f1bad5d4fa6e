package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	HTTP       HTTPConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Log        LogConfig
	Quotation  QuotationConfig
	Comparator ComparatorConfig
}

// HTTPConfig holds listener settings.
type HTTPConfig struct {
	Addr string
}

// DatabaseConfig holds Postgres settings.
type DatabaseConfig struct {
	URL         string
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// AuthConfig holds token settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// LogConfig selects the log handler; see logger.Init.
type LogConfig struct {
	Env string
}

// QuotationConfig holds the outbound notification webhook. An empty URL
// disables notifications.
type QuotationConfig struct {
	WebhookURL     string        `mapstructure:"webhook_url"`
	WebhookTimeout time.Duration `mapstructure:"webhook_timeout"`
}

// ComparatorConfig bounds how long an unused comparator session is kept.
type ComparatorConfig struct {
	IdleTTL time.Duration `mapstructure:"idle_ttl"`
}

// Load reads configuration from an optional file and the environment. Env var
// overrides use prefix SUMAQ_ (SUMAQ_DATABASE_URL, SUMAQ_AUTH_JWT_SECRET, ...);
// the conventional DATABASE_URL, JWT_SECRET and PORT are honoured as well.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("database.url", "")
	v.SetDefault("database.auto_migrate", false)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("log.env", "production")
	v.SetDefault("quotation.webhook_url", "")
	v.SetDefault("quotation.webhook_timeout", 5*time.Second)
	v.SetDefault("comparator.idle_ttl", 30*time.Minute)

	v.SetConfigType("yaml")
	if path := os.Getenv("SUMAQ_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("SUMAQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("database.url", "SUMAQ_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("auth.jwt_secret", "SUMAQ_AUTH_JWT_SECRET", "JWT_SECRET")

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" && os.Getenv("SUMAQ_HTTP_ADDR") == "" {
		c.HTTP.Addr = ":" + port
	}

	return c, nil
}

// Validate reports settings the API cannot start without.
func (c Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("config: database url is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: jwt secret is required")
	}
	return nil
}
