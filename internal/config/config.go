// Package config reads the backend configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
)

type Config struct {
	// HTTP API
	APIURL           *url.URL
	GinMode          string
	CORSAllowOrigins []string
	EnablePprof      bool

	// Logging
	LogFormat string

	// Storage
	DataDir        string
	SeedCategories bool

	// Currency all amounts are denominated in
	Currency string

	// AMQP event publishing, disabled when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string

	// Raw values kept for validation
	rawAPIURL         string
	rawEnablePprof    string
	rawSeedCategories string
}

// Load reads the configuration from the environment.
//
// Variables from a .env file in the working directory are loaded first,
// variables that are already set are not overridden.
func Load() (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("could not read .env file: %w", err)
	}

	cfg := Config{
		rawAPIURL:         os.Getenv("API_URL"),
		GinMode:           getEnv("GIN_MODE", "release"),
		CORSAllowOrigins:  strings.Fields(os.Getenv("CORS_ALLOW_ORIGINS")),
		rawEnablePprof:    getEnv("ENABLE_PPROF", "false"),
		LogFormat:         os.Getenv("LOG_FORMAT"),
		DataDir:           getEnv("DATA_DIR", filepath.Join(".", "data")),
		rawSeedCategories: getEnv("SEED_CATEGORIES", "true"),
		Currency:          strings.ToUpper(getEnv("CURRENCY", "EUR")),
		AMQPURL:           os.Getenv("AMQP_URL"),
		AMQPExchange:      getEnv("AMQP_EXCHANGE", "ledger"),
	}

	return cfg, cfg.Validate()
}

// Validate checks the configuration and parses values that need parsing.
// All problems are reported in a single error.
func (c *Config) Validate() error {
	var problems []string

	if c.rawAPIURL == "" {
		problems = append(problems, "API_URL must be set to the URL the API is reachable at")
	} else if u, err := url.Parse(c.rawAPIURL); err != nil || u.Scheme == "" || u.Host == "" {
		problems = append(problems, fmt.Sprintf("invalid API_URL '%s': must be an absolute URL", c.rawAPIURL))
	} else {
		c.APIURL = u
	}

	if c.GinMode != "release" && c.GinMode != "debug" && c.GinMode != "test" {
		problems = append(problems, fmt.Sprintf("invalid GIN_MODE '%s': must be one of release, debug, test", c.GinMode))
	}

	if c.LogFormat != "" && c.LogFormat != "human" && c.LogFormat != "json" {
		problems = append(problems, fmt.Sprintf("invalid LOG_FORMAT '%s': must be 'human' or 'json'", c.LogFormat))
	}

	if b, err := strconv.ParseBool(c.rawEnablePprof); err != nil {
		problems = append(problems, fmt.Sprintf("invalid ENABLE_PPROF '%s': must be a boolean", c.rawEnablePprof))
	} else {
		c.EnablePprof = b
	}

	if b, err := strconv.ParseBool(c.rawSeedCategories); err != nil {
		problems = append(problems, fmt.Sprintf("invalid SEED_CATEGORIES '%s': must be a boolean", c.rawSeedCategories))
	} else {
		c.SeedCategories = b
	}

	if c.DataDir == "" {
		problems = append(problems, "DATA_DIR cannot be empty")
	}

	if _, err := currency.ParseISO(c.Currency); err != nil {
		problems = append(problems, fmt.Sprintf("invalid CURRENCY '%s': must be an ISO 4217 currency code", c.Currency))
	}

	if c.AMQPURL != "" {
		if u, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP_URL: %v", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP_URL scheme '%s': must be 'amqp' or 'amqps'", u.Scheme))
		}

		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP_EXCHANGE cannot be empty when AMQP_URL is set")
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}

	return nil
}

// DSN returns the data source name of the SQLite database.
//
// Writers from other processes, e.g. the apply command while the server
// is running, wait for the lock instead of failing with SQLITE_BUSY.
func (c Config) DSN() string {
	return filepath.Join(c.DataDir, "ledger.db") + "?_pragma=busy_timeout(5000)"
}

// HumanLogs reports if logs are written for humans instead of as JSON.
// Without an explicit LOG_FORMAT, debug mode logs for humans.
func (c Config) HumanLogs() bool {
	if c.LogFormat == "" {
		return c.GinMode == "debug"
	}

	return c.LogFormat == "human"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
