package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	AppEnv string `env:"APP_ENV" envDefault:"development"`

	// DatabaseURL is a full go-sql-driver DSN and wins over the DB_* parts.
	// With ANALYTICS_USE_MOCK the database may be left out entirely.
	DatabaseURL            string `env:"DATABASE_URL"`
	DBUser                 string `env:"DB_USER" validate:"required_without_all=DatabaseURL AnalyticsUseMock"`
	DBPassword             string `env:"DB_PASSWORD"`
	DBHost                 string `env:"DB_HOST" validate:"required_without_all=DatabaseURL InstanceConnectionName AnalyticsUseMock"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName                 string `env:"DB_NAME" validate:"required_without_all=DatabaseURL AnalyticsUseMock"`
	DBPort                 string `env:"DB_PORT" envDefault:"3306"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	StripeSecretKey  string `env:"STRIPE_SECRET_KEY"`
	AnalyticsUseMock bool   `env:"ANALYTICS_USE_MOCK" envDefault:"false"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=trace debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`

	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS"`

	GitSHA    string `env:"GIT_SHA" envDefault:"unknown"`
	BuildTime string `env:"BUILD_TIME" envDefault:"unknown"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// HasDatabase reports whether enough settings exist to build a DSN.
func (c *Config) HasDatabase() bool {
	if c.DatabaseURL != "" {
		return true
	}
	return c.DBUser != "" && c.DBName != "" && (c.DBHost != "" || c.InstanceConnectionName != "")
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS, dropping blanks.
func (c *Config) AllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
