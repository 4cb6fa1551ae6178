package instrumentation

import (
	"context"
	"testing"
	"time"
)

func newTestProvider(t *testing.T, ctx context.Context) *Provider {
	t.Helper()

	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: "prometheus",
		TracingExporter: "none",
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	t.Cleanup(func() { _ = provider.Shutdown(ctx) })

	return provider
}

func TestMetrics_RecordChatRequest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider := newTestProvider(t, ctx)

	metrics := provider.Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil")
	}

	// Should not panic
	metrics.RecordChatRequest(ctx, "POST", "/chat", 200, 100*time.Millisecond)
	metrics.RecordChatRequest(ctx, "POST", "/chat", 400, 50*time.Millisecond)
}

func TestMetrics_RecordCalendarOperation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider := newTestProvider(t, ctx)
	metrics := provider.Metrics()

	// Should not panic
	metrics.RecordCalendarOperation(ctx, OperationList, StatusSuccess, 200*time.Millisecond)
	metrics.RecordCalendarOperation(ctx, OperationInsert, StatusError, 500*time.Millisecond)
}

func TestMetrics_RecordLLMRequest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider := newTestProvider(t, ctx)
	metrics := provider.Metrics()

	// Should not panic
	metrics.RecordLLMRequest(ctx, "gemini-1.5-flash", StatusSuccess, time.Second)
	metrics.RecordLLMRequest(ctx, "gemini-1.5-flash", StatusError, 2*time.Second)
}

func TestMetrics_RecordReasoningCycles(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider := newTestProvider(t, ctx)
	metrics := provider.Metrics()

	// Should not panic
	metrics.RecordReasoningCycles(ctx, 1)
	metrics.RecordReasoningCycles(ctx, 8)
}

func TestMetrics_RecordToolInvocation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider := newTestProvider(t, ctx)
	metrics := provider.Metrics()

	// Should not panic
	metrics.RecordToolInvocation(ctx, "check_availability", StatusSuccess, 100*time.Millisecond)
	metrics.RecordToolInvocation(ctx, "book_meeting", StatusError, 500*time.Millisecond)
}

func TestMetrics_ActiveSessions(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	provider := newTestProvider(t, ctx)
	metrics := provider.Metrics()

	// Should not panic
	metrics.IncrementActiveSessions(ctx)
	metrics.IncrementActiveSessions(ctx)
	metrics.DecrementActiveSessions(ctx)
}

func TestMetrics_NoOp_WhenDisabled(t *testing.T) {
	ctx := context.Background()

	provider, err := NewProvider(ctx, Config{
		ServiceName:    "test-service",
		ServiceVersion: "1.0.0",
		Enabled:        false,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	metrics := provider.Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil even when disabled")
	}

	// All these should not panic even with nil underlying metrics
	metrics.RecordChatRequest(ctx, "POST", "/chat", 200, 100*time.Millisecond)
	metrics.RecordCalendarOperation(ctx, OperationList, StatusSuccess, 200*time.Millisecond)
	metrics.RecordLLMRequest(ctx, "gemini-1.5-flash", StatusSuccess, time.Second)
	metrics.RecordReasoningCycles(ctx, 3)
	metrics.RecordToolInvocation(ctx, "check_availability", StatusSuccess, 100*time.Millisecond)
	metrics.IncrementActiveSessions(ctx)
	metrics.DecrementActiveSessions(ctx)
}
