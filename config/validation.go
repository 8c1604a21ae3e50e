package config

import "fmt"

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that every field the current environment
// requires is present. The JWT secret is mandatory outside tests;
// database credentials are mandatory everywhere.
func ValidateConfig(cfg *Config) error {
	required := map[string]string{
		"DB_HOST": cfg.DBHost,
		"DB_PORT": cfg.DBPort,
		"DB_USER": cfg.DBUser,
		"DB_NAME": cfg.DBName,
	}
	for field, value := range required {
		if value == "" {
			return ValidationError{Field: field, Message: "is required"}
		}
	}

	if IsProduction() {
		if cfg.DBPassword == "" {
			return ValidationError{Field: "DB_PASSWORD", Message: "is required in production"}
		}
		if cfg.JWTSecret == "" {
			return ValidationError{Field: "JWT_SECRET", Message: "is required in production"}
		}
		if cfg.DBSSLMode == "disable" {
			return ValidationError{Field: "DB_SSL_MODE", Message: "must not be disabled in production"}
		}
	} else if cfg.JWTSecret == "" && !IsTest() {
		return ValidationError{Field: "JWT_SECRET", Message: "is required"}
	}

	return nil
}
