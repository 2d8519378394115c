package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ConfigErrorType categorizes configuration loading failures.
type ConfigErrorType string

const (
	// ErrParsing means an environment value could not be converted.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
	// ErrValidation means the populated struct broke a validation rule.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
)

// ConfigError is returned by Load.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load reads an optional .env file, populates Config from the environment and
// validates it. Existing environment variables win over .env entries.
func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env is optional

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrParsing,
			Message: "failed to process environment configuration",
			Err:     err,
		}
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrValidation,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	if cfg.Auth.SigningKey == "" && !cfg.IsDevelopment() {
		return nil, &ConfigError{
			Type:    ErrValidation,
			Message: "JWT_SIGNING_KEY is required outside development",
		}
	}

	return &cfg, nil
}
