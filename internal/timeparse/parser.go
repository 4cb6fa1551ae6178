package timeparse

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// ErrUnparsable is returned when a time expression cannot be understood.
// Callers are expected to turn it into a user-facing message rather than
// propagate it.
var ErrUnparsable = errors.New("could not understand the time expression")

// Parser converts free-text time expressions into absolute timestamps in a
// fixed timezone.
type Parser struct {
	loc *time.Location
	w   *when.Parser
}

// New creates a Parser resolving expressions in the given location.
func New(loc *time.Location) *Parser {
	if loc == nil {
		loc = time.UTC
	}

	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	return &Parser{loc: loc, w: w}
}

// Parse resolves text against the reference instant.
//
// The resolution chain tries RFC3339 first (the model frequently echoes
// machine-readable timestamps), then natural-language phrases relative to
// ref ("tomorrow at 5pm", "in 2 hours"), then bare absolute formats like
// "2025-06-11 17:00" interpreted in the parser's timezone.
func (p *Parser) Parse(text string, ref time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrUnparsable)
	}

	if t, err := time.Parse(time.RFC3339, text); err == nil {
		return t.In(p.loc), nil
	}

	if r, err := p.w.Parse(text, ref.In(p.loc)); err == nil && r != nil {
		return r.Time.In(p.loc), nil
	}

	if t, err := dateparse.ParseIn(text, p.loc); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparsable, text)
}
