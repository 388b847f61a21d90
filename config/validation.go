package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const minProductionSecretLen = 32

// ValidateConfig checks the configuration and reports every problem at once
func ValidateConfig(cfg *Config) error {
	var problems []error

	if cfg.JWTSecret == "" {
		problems = append(problems, ValidationError{Field: "JWT_SECRET", Message: "is required"})
	} else if cfg.IsProduction() && len(cfg.JWTSecret) < minProductionSecretLen {
		problems = append(problems, ValidationError{
			Field:   "JWT_SECRET",
			Message: fmt.Sprintf("must be at least %d bytes in production", minProductionSecretLen),
		})
	}

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.IsProduction() {
			problems = append(problems, ValidationError{Field: "DB_DRIVER", Message: "sqlite is not allowed in production"})
		}
		if cfg.DBPath == "" {
			problems = append(problems, ValidationError{Field: "DB_PATH", Message: "is required for sqlite"})
		}
	case DriverPostgres:
		if cfg.DBHost == "" {
			problems = append(problems, ValidationError{Field: "DB_HOST", Message: "is required for postgres"})
		}
		if cfg.DBName == "" {
			problems = append(problems, ValidationError{Field: "DB_NAME", Message: "is required for postgres"})
		}
		if cfg.DBUser == "" {
			problems = append(problems, ValidationError{Field: "DB_USER", Message: "is required for postgres"})
		}
	default:
		problems = append(problems, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unknown driver %q", cfg.DBDriver)})
	}

	if cfg.MaxBodyBytes <= 0 {
		problems = append(problems, ValidationError{Field: "MAX_BODY_BYTES", Message: "must be positive"})
	}
	if cfg.RateLimitRPS < 0 {
		problems = append(problems, ValidationError{Field: "RATE_LIMIT_RPS", Message: "must not be negative"})
	}

	return errors.Join(problems...)
}
