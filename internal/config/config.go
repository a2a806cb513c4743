package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	LogLevel    string `validate:"omitempty,oneof=trace debug info warn error fatal panic disabled" env:"LOG_LEVEL"`
	ServiceName string `env:"MAILROUTE_SERVICE_NAME"`
	// Version is the routing profile used when a definition file omits one.
	Version   string `validate:"required,oneof=CH PRV" env:"MAILROUTE_VERSION"`
	Region    string `validate:"required,oneof=None CH DE" env:"MAILROUTE_REGION"`
	// Placement, when set, positions new transport rules and overrides the
	// priority given in the definition.
	Placement string `validate:"omitempty,oneof=Top Bottom" env:"MAILROUTE_PLACEMENT"`
	Rules     string `validate:"required" env:"MAILROUTE_RULES"`
	// MetricsTextfile, when set, receives the run's counters in the
	// node-exporter textfile format.
	MetricsTextfile string `env:"MAILROUTE_METRICS_TEXTFILE"`
}

var (
	validate   = validator.New()
	configType = reflect.TypeOf(Config{})
)

func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ServiceName:     getEnv("MAILROUTE_SERVICE_NAME", "mailctl"),
		Version:         getEnv("MAILROUTE_VERSION", "CH"),
		Region:          getEnv("MAILROUTE_REGION", "None"),
		Placement:       getEnv("MAILROUTE_PLACEMENT", ""),
		Rules:           getEnv("MAILROUTE_RULES", "all"),
		MetricsTextfile: getEnv("MAILROUTE_METRICS_TEXTFILE", ""),
	}

	return cfg, nil
}

// Validate checks the loaded values and names the offending environment
// variables.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	var msgs []string
	for _, fe := range verrs {
		env := envName(fe.StructField())
		if fe.Tag() == "required" {
			msgs = append(msgs, fmt.Sprintf("%s is required", env))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s], got %q", env, fe.Param(), fe.Value()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func envName(field string) string {
	f, ok := configType.FieldByName(field)
	if !ok {
		return field
	}
	return f.Tag.Get("env")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
