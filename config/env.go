package config

import (
	"os"
	"strings"
)

// Environment is the deployment the process runs in
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads ENV. CI=true wins over ENV; anything unknown is
// treated as development.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}

	switch env := Environment(strings.ToLower(os.Getenv("ENV"))); env {
	case Production, Test:
		return env
	default:
		return Development
	}
}

// IsDevelopment reports whether verbose logging and console output apply
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// IsProduction reports whether the server runs in release mode
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}
