// Package config assembles the process configuration from the environment.
// A .env file in the working directory is loaded first when present; real
// environment variables always win over it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/prithidevghosh/speerNote/utils"
)

type Config struct {
	Port            string        `validate:"required,numeric"`
	Env             string        `validate:"oneof=development production test"`
	TokenSecret     string        `validate:"required"`
	TokenExpiration time.Duration `validate:"gt=0"`
	RedisURL        string
	LogLevel        string `validate:"oneof=debug info warn error"`
	LogFile         string
	MaxBodyBytes    int64         `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	CORSOrigins     []string      `validate:"min=1,dive,required"`
	Database        DatabaseConfig
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// LoadEnvFile reads .env into the process environment. A missing file is not
// an error; a malformed one is.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            utils.GetEnvAsString("PORT", "8000"),
		Env:             utils.GetEnvAsString("APP_ENV", "development"),
		TokenSecret:     utils.GetEnvAsString("TOKEN_SECRET", ""),
		TokenExpiration: utils.GetEnvAsDuration("TOKEN_EXPIRATION", time.Hour),
		RedisURL:        utils.GetEnvAsString("REDIS_URL", ""),
		LogLevel:        utils.GetEnvAsString("LOG_LEVEL", "info"),
		LogFile:         utils.GetEnvAsString("LOG_FILE", ""),
		MaxBodyBytes:    utils.GetEnvAsInt64("MAX_BODY_BYTES", 1<<20),
		ShutdownTimeout: utils.GetEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		CORSOrigins:     splitList(utils.GetEnvAsString("CORS_ALLOWED_ORIGINS", "*")),
		Database:        LoadDatabaseConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	err := utils.Validator().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("invalid configuration: %s failed %q", fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("invalid configuration: %w", err)
}

// splitList turns "a, b,,c" into [a b c].
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
