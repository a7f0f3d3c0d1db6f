package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks constraints the schema cannot express.
func Validate(cfg *Config) error {
	if cfg.DefaultTLE <= 0 {
		return &ValidationError{Field: "default_tle", Message: "must be positive"}
	}
	if cfg.DefaultMLE <= 0 {
		return &ValidationError{Field: "default_mle", Message: "must be positive"}
	}
	if strings.Contains(cfg.Store.Endpoint, "://") {
		return &ValidationError{
			Field:   "store.endpoint",
			Message: "must be host[:port] without a scheme; use store.secure to choose http or https",
		}
	}
	return nil
}
