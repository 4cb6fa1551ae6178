package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rvaidya/meetingmate/internal/instrumentation"
	"github.com/rvaidya/meetingmate/internal/logging"
)

// Registry is the fixed set of tools available to the orchestrator. The
// set is validated at construction and never changes at runtime.
type Registry struct {
	tools   []Tool
	byName  map[string]Tool
	logger  *slog.Logger
	metrics *instrumentation.Metrics
	audit   *instrumentation.AuditLogger
}

// NewRegistry validates and indexes the given tools.
func NewRegistry(logger *slog.Logger, toolset ...Tool) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	byName := make(map[string]Tool, len(toolset))
	for _, t := range toolset {
		if t.Name == "" {
			return nil, fmt.Errorf("tool with empty name")
		}
		if t.Handler == nil {
			return nil, fmt.Errorf("tool %s has no handler", t.Name)
		}
		if _, exists := byName[t.Name]; exists {
			return nil, fmt.Errorf("tool %s registered twice", t.Name)
		}
		byName[t.Name] = t
	}

	return &Registry{
		tools:  toolset,
		byName: byName,
		logger: logger,
	}, nil
}

// SetMetrics attaches a metrics recorder for tool invocations.
func (r *Registry) SetMetrics(m *instrumentation.Metrics) {
	r.metrics = m
}

// SetAuditLogger attaches an audit logger for tool invocations.
func (r *Registry) SetAuditLogger(a *instrumentation.AuditLogger) {
	r.audit = a
}

// All returns the registered tools in registration order.
func (r *Registry) All() []Tool {
	return r.tools
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Execute runs the named tool and returns its string result. Unknown tool
// names produce a failure string rather than an error so that the model
// can recover within the conversation.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) string {
	t, ok := r.byName[name]
	if !ok {
		return fmt.Sprintf("%s Unknown tool %q.", FailureMarker, name)
	}

	ctx, span := instrumentation.StartToolSpan(ctx, name)
	defer span.End()

	start := time.Now()
	result := t.Handler(ctx, args)
	duration := time.Since(start)

	status := logging.StatusSuccess
	if IsFailure(result) {
		status = logging.StatusError
		instrumentation.SetSpanError(span, errors.New(result))
	} else {
		instrumentation.SetSpanSuccess(span)
	}

	r.logger.Info("tool executed",
		logging.Tool(name),
		logging.Status(status),
		slog.Duration(logging.KeyDuration, duration),
	)

	if r.metrics != nil {
		r.metrics.RecordToolInvocation(ctx, name, status, duration)
	}
	if r.audit != nil {
		r.audit.LogToolInvocation(ctx, name, status, duration)
	}

	return result
}

// IsFailure reports whether a tool result carries a failure marker.
func IsFailure(result string) bool {
	return strings.HasPrefix(result, FailureMarker) || strings.HasPrefix(result, ConflictMarker)
}
