package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Defaults for configuration values that are not provided via flags or
// environment variables.
const (
	DefaultModel      = "gemini-1.5-flash"
	DefaultCalendarID = "primary"
	DefaultTimezone   = "Asia/Kolkata"
	DefaultHTTPAddr   = ":8080"
	DefaultMaxCycles  = 8
	DefaultMaxResults = 20
)

// Config holds the runtime configuration for the assistant.
type Config struct {
	// GeminiAPIKey authenticates requests to the Gemini API.
	GeminiAPIKey string

	// Model is the Gemini model name used for chat completion.
	Model string

	// CredentialsFile is the path to the Google service account key JSON
	// used to authenticate calendar access.
	CredentialsFile string

	// CalendarID is the calendar events are read from and written to.
	CalendarID string

	// Timezone is the IANA name of the single timezone all scheduling is
	// resolved in.
	Timezone string

	// HTTPAddr is the chat server listen address.
	HTTPAddr string

	// MaxCycles bounds the number of tool-call cycles per chat request.
	MaxCycles int

	// MaxResults caps the number of upcoming events fetched per lookup.
	MaxResults int
}

// Load builds a Config from environment variables with defaults applied.
// Flags layered on top by the command layer take precedence; callers set
// those fields after Load returns.
func Load() Config {
	return Config{
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		Model:           getEnvOrDefault("GEMINI_MODEL", DefaultModel),
		CredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "creds.json"),
		CalendarID:      getEnvOrDefault("CALENDAR_ID", DefaultCalendarID),
		Timezone:        getEnvOrDefault("CALENDAR_TIMEZONE", DefaultTimezone),
		HTTPAddr:        getEnvOrDefault("HTTP_ADDR", DefaultHTTPAddr),
		MaxCycles:       getEnvIntOrDefault("MAX_CYCLES", DefaultMaxCycles),
		MaxResults:      getEnvIntOrDefault("CALENDAR_MAX_RESULTS", DefaultMaxResults),
	}
}

// Validate checks that required fields are present and consistent.
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.MaxCycles <= 0 {
		return fmt.Errorf("max cycles must be positive, got %d", c.MaxCycles)
	}
	if c.MaxResults <= 0 {
		return fmt.Errorf("max results must be positive, got %d", c.MaxResults)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the configured timezone. Validate must have passed.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnvOrDefault returns the value of an environment variable or a default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns the integer value of an environment variable or a default value.
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return parsed
	}
	return defaultValue
}
