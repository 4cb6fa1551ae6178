package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser(t *testing.T) (*Parser, *time.Location, time.Time) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	ref := time.Date(2025, 6, 10, 12, 0, 0, 0, loc)
	return New(loc), loc, ref
}

func TestParseTomorrowAtFivePM(t *testing.T) {
	p, loc, ref := newTestParser(t)

	got, err := p.Parse("tomorrow at 5pm", ref)
	require.NoError(t, err)

	want := time.Date(2025, 6, 11, 17, 0, 0, 0, loc)
	assert.True(t, got.Equal(want), "got %v want %v", got, want)
}

func TestParseTodayMorning(t *testing.T) {
	p, loc, ref := newTestParser(t)

	got, err := p.Parse("today at 10:30 am", ref)
	require.NoError(t, err)

	want := time.Date(2025, 6, 10, 10, 30, 0, 0, loc)
	assert.True(t, got.Equal(want), "got %v want %v", got, want)
}

func TestParseRFC3339Passthrough(t *testing.T) {
	p, loc, ref := newTestParser(t)

	got, err := p.Parse("2025-06-11T17:00:00+05:30", ref)
	require.NoError(t, err)

	want := time.Date(2025, 6, 11, 17, 0, 0, 0, loc)
	assert.True(t, got.Equal(want))
	assert.Equal(t, loc, got.Location())
}

func TestParseAbsoluteFallback(t *testing.T) {
	p, loc, ref := newTestParser(t)

	got, err := p.Parse("2025-06-11 17:00", ref)
	require.NoError(t, err)

	want := time.Date(2025, 6, 11, 17, 0, 0, 0, loc)
	assert.True(t, got.Equal(want), "got %v want %v", got, want)
}

func TestParseFailure(t *testing.T) {
	p, _, ref := newTestParser(t)

	for _, input := range []string{"", "   ", "blorp glorp"} {
		_, err := p.Parse(input, ref)
		assert.ErrorIs(t, err, ErrUnparsable, "input %q", input)
	}
}

func TestNewNilLocationDefaultsToUTC(t *testing.T) {
	p := New(nil)
	assert.Equal(t, time.UTC, p.loc)
}
