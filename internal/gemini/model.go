package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/rvaidya/meetingmate/internal/instrumentation"
	"github.com/rvaidya/meetingmate/internal/logging"
	"github.com/rvaidya/meetingmate/internal/session"
	"github.com/rvaidya/meetingmate/internal/tools"
)

// Model generates assistant turns with the Gemini API. Generation runs at
// temperature zero so tool arguments stay deterministic.
type Model struct {
	client  *genai.Client
	name    string
	tools   []*genai.Tool
	logger  *slog.Logger
	metrics *instrumentation.Metrics
}

// Options configures a Gemini model adapter.
type Options struct {
	// APIKey authenticates against the Gemini API.
	APIKey string

	// ModelName selects the generation model (e.g. "gemini-1.5-flash").
	ModelName string

	// Registry supplies the function declarations offered to the model.
	Registry *tools.Registry

	Logger *slog.Logger
}

// New creates a Gemini-backed model adapter.
func New(ctx context.Context, opts Options) (*Model, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if opts.ModelName == "" {
		return nil, fmt.Errorf("model name is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	var toolset []tools.Tool
	if opts.Registry != nil {
		toolset = opts.Registry.All()
	}

	return &Model{
		client: client,
		name:   opts.ModelName,
		tools:  toDeclarations(toolset),
		logger: logger,
	}, nil
}

// SetMetrics attaches a metrics recorder for LLM requests.
func (m *Model) SetMetrics(metrics *instrumentation.Metrics) {
	m.metrics = metrics
}

// Name returns the configured model name.
func (m *Model) Name() string {
	return m.name
}

// Generate produces the next assistant message for the given conversation.
// The returned message may carry tool calls the caller must execute.
func (m *Model) Generate(ctx context.Context, system string, msgs []session.Message) (session.Message, error) {
	ctx, span := instrumentation.StartLLMSpan(ctx, m.name)
	defer span.End()

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0),
		Tools:       m.tools,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}

	start := time.Now()
	resp, err := m.client.Models.GenerateContent(ctx, m.name, toContents(msgs), config)
	duration := time.Since(start)

	status := instrumentation.StatusSuccess
	if err != nil {
		status = instrumentation.StatusError
	}
	if m.metrics != nil {
		m.metrics.RecordLLMRequest(ctx, m.name, status, duration)
	}

	if err != nil {
		instrumentation.SetSpanError(span, err)
		m.logger.Warn("generation failed",
			logging.Model(m.name),
			slog.Duration(logging.KeyDuration, duration),
			logging.Err(err),
		)
		return session.Message{}, fmt.Errorf("generation failed: %w", err)
	}
	instrumentation.SetSpanSuccess(span)

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return session.Message{}, fmt.Errorf("model returned no candidates")
	}

	msg := toMessage(resp.Candidates[0].Content)

	m.logger.Debug("generation complete",
		logging.Model(m.name),
		slog.Duration(logging.KeyDuration, duration),
		slog.Int("tool_calls", len(msg.ToolCalls)),
	)

	return msg, nil
}
