package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	EnvVars EnvVars  `json:"env"`
	Markers *Markers `json:"-"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port              string        `env:"PORT" envDefault:"8080"`
	DatabaseUrl       string        `env:"DATABASE_URL"`
	JwtSecretKey      string        `env:"JWT_SECRET_KEY"`
	ListingURL        string        `env:"LISTING_URL" envDefault:"https://ultimatepaleoguide.com/recipes/"`
	FetchTimeout      time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	FindMaxAttempts   int           `env:"FIND_MAX_ATTEMPTS" envDefault:"5"`
	DetailConcurrency int           `env:"DETAIL_CONCURRENCY" envDefault:"4"`
	RateLimitRPS      int           `env:"RATE_LIMIT_RPS" envDefault:"5"`
	MarkersPath       string        `env:"MARKERS_PATH" optional:"true"`
	AllowedOrigins    []string      `env:"ALLOWED_ORIGINS" envSeparator:"," optional:"true"`
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	return &config, nil
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if field.IsZero() {
			return fmt.Errorf("$%s must be set", fieldType.Tag.Get("env"))
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}
