package config

import (
	"errors"
	"fmt"
	"strings"
)

// minProductionSecretLength is the shortest HMAC secret accepted in production.
const minProductionSecretLength = 32

// Validate checks that the configuration can run the service.
func (c *Config) Validate() error {
	var problems []string

	if err := c.validateSecret(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.AccessTokenTTL <= 0 {
		problems = append(problems, "ACCESS_TOKEN_TTL must be positive")
	}
	if len(c.AllowedOrigins) == 0 {
		problems = append(problems, "ALLOWED_ORIGINS must list at least one origin")
	}
	if c.Port <= 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT %d is out of range", c.Port))
	}
	if _, err := c.Mongo.ConnectionURI(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.Storage.Enabled() {
		if missing := c.Storage.missing(); len(missing) > 0 {
			problems = append(problems, fmt.Sprintf("missing storage variables: %s", strings.Join(missing, ", ")))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// validateSecret ensures ACCESS_TOKEN_SECRET meets minimum requirements
func (c *Config) validateSecret() error {
	if c.AccessTokenSecret == "" {
		return errors.New("ACCESS_TOKEN_SECRET is required")
	}
	if c.IsProduction() && len(c.AccessTokenSecret) < minProductionSecretLength {
		return fmt.Errorf("ACCESS_TOKEN_SECRET must be at least %d bytes in production", minProductionSecretLength)
	}
	return nil
}

func (s StorageConfig) missing() []string {
	var missing []string
	if s.AccessKey == "" {
		missing = append(missing, "S3_ACCESS_KEY")
	}
	if s.SecretKey == "" {
		missing = append(missing, "S3_SECRET_KEY")
	}
	if s.Bucket == "" {
		missing = append(missing, "S3_BUCKET_NAME")
	}
	return missing
}
