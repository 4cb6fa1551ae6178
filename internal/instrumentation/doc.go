// Package instrumentation provides comprehensive OpenTelemetry instrumentation
// for the meetingmate scheduling assistant.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for chat requests, LLM calls, tool invocations, and calendar API calls
//   - Distributed tracing for chat turns and downstream API calls
//   - Prometheus metrics export via /metrics endpoint on dedicated port
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Chat Metrics:
//   - chat_requests_total: Counter of chat requests by method, path, and status
//   - chat_request_duration_seconds: Histogram of chat request durations
//   - chat_reasoning_cycles: Histogram of model cycles used per chat turn
//   - active_sessions: Gauge of active conversation sessions
//
// Calendar API Metrics:
//   - calendar_api_operations_total: Counter of calendar operations by operation and status
//   - calendar_api_operation_duration_seconds: Histogram of calendar operation durations
//
// LLM Metrics:
//   - llm_requests_total: Counter of LLM generation requests by model and status
//   - llm_request_duration_seconds: Histogram of LLM request durations
//
// Tool Metrics:
//   - tool_invocations_total: Counter of tool invocations by tool name and status
//   - tool_duration_seconds: Histogram of tool execution durations
//
// # Tracing
//
// Distributed tracing spans are created for:
//   - Chat turn handling (chat.turn)
//   - Tool invocations (tool.<name>)
//   - Calendar API calls (calendar.<operation>)
//   - LLM generation requests (llm.generate)
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: meetingmate)
//
// # Example Usage
//
//	// Initialize instrumentation
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "meetingmate",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	// Get metrics recorder
//	recorder := provider.Metrics()
//
//	// Record a chat request
//	recorder.RecordChatRequest(ctx, "POST", "/chat", 200, time.Since(start))
//
//	// Record a calendar operation
//	recorder.RecordCalendarOperation(ctx, "list", "success", time.Since(start))
//
//	// Record a tool invocation
//	recorder.RecordToolInvocation(ctx, "book_meeting", "success", time.Since(start))
package instrumentation
