package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Env:          "development",
		Port:         "8380",
		JWTSecret:    "secure-secret-at-least-32-chars-long",
		DBPassword:   "secure-password",
		DBSSLMode:    "disable",
		RedisURL:     "redis://localhost:6379",
		MediaBackend: "fs",
	}
}

func TestConfig_ValidateProduction(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid production", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
		}, false},
		{"default JWT secret", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"short JWT secret", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
			c.JWTSecret = "short"
		}, true},
		{"weak DB password", func(c *Config) {
			c.Env = "prod"
			c.DBSSLMode = "require"
			c.DBPassword = "password"
		}, true},
		{"ssl disabled", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "disable"
		}, true},
		{"development with ssl disabled", func(c *Config) {
			c.Env = "development"
			c.DBSSLMode = "disable"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateMediaBackend(t *testing.T) {
	c := validConfig()
	c.MediaBackend = "s3"
	assert.Error(t, c.Validate(), "s3 backend without bucket must fail")

	c.S3Bucket = "inkwell-media"
	assert.NoError(t, c.Validate())

	c.MediaBackend = "ftp"
	assert.Error(t, c.Validate(), "unknown backend must fail")
}

func TestConfig_ValidateRequiredFields(t *testing.T) {
	c := validConfig()
	c.Port = ""
	assert.Error(t, c.Validate())

	c = validConfig()
	c.JWTSecret = ""
	assert.Error(t, c.Validate())
}
