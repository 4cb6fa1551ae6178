package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultCalendarID, cfg.CalendarID)
	assert.Equal(t, DefaultTimezone, cfg.Timezone)
	assert.Equal(t, DefaultHTTPAddr, cfg.HTTPAddr)
	assert.Equal(t, DefaultMaxCycles, cfg.MaxCycles)
	assert.Equal(t, DefaultMaxResults, cfg.MaxResults)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("CALENDAR_TIMEZONE", "Europe/Berlin")
	t.Setenv("MAX_CYCLES", "3")

	cfg := Load()

	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, 3, cfg.MaxCycles)
}

func TestLoadIgnoresMalformedInt(t *testing.T) {
	t.Setenv("MAX_CYCLES", "not-a-number")

	cfg := Load()
	assert.Equal(t, DefaultMaxCycles, cfg.MaxCycles)
}

func TestValidate(t *testing.T) {
	valid := Config{
		GeminiAPIKey: "key",
		Model:        DefaultModel,
		Timezone:     DefaultTimezone,
		MaxCycles:    DefaultMaxCycles,
		MaxResults:   DefaultMaxResults,
	}

	t.Run("valid config passes", func(t *testing.T) {
		cfg := valid
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing API key fails", func(t *testing.T) {
		cfg := valid
		cfg.GeminiAPIKey = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("invalid timezone fails", func(t *testing.T) {
		cfg := valid
		cfg.Timezone = "Nowhere/Invalid"
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive cycles fail", func(t *testing.T) {
		cfg := valid
		cfg.MaxCycles = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestLocation(t *testing.T) {
	cfg := Config{Timezone: "Asia/Kolkata"}
	loc := cfg.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "Asia/Kolkata", loc.String())
}
