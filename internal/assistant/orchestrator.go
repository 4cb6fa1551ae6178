package assistant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rvaidya/meetingmate/internal/instrumentation"
	"github.com/rvaidya/meetingmate/internal/logging"
	"github.com/rvaidya/meetingmate/internal/session"
	"github.com/rvaidya/meetingmate/internal/tools"
)

// DefaultMaxCycles bounds how many model round-trips a single chat turn may
// take before the orchestrator gives up.
const DefaultMaxCycles = 8

// systemPrompt steers the model toward direct tool use. It is the same for
// every conversation.
const systemPrompt = `You are an AI calendar assistant that helps users schedule meetings using Google Calendar.

Behavior:
- If user says "book demo meeting tomorrow at 5pm", extract:
  - summary: 'demo meeting'
  - start_time: 'tomorrow at 5pm'
- Do NOT ask again if summary or time is already given.
- Book without end time if not given (default to 1hr).
- Include calendar link in final response if event is booked.
- If the user asks for "link", return the latest calendar link.

Instructions:
- Do not make up times.
- Use tools if time or summary is mentioned.`

// exhaustedAnswer is returned when a turn burns through every cycle without
// the model settling on a final answer.
const exhaustedAnswer = "I was unable to complete that request. Please try rephrasing it."

// faultAnswer is returned when a turn fails in an unexpected way.
const faultAnswer = "Something went wrong while handling your request. Please try again."

// Model produces the next assistant message for a conversation. It may
// request tool calls, which the orchestrator executes before asking again.
type Model interface {
	Generate(ctx context.Context, system string, msgs []session.Message) (session.Message, error)
}

// Orchestrator drives the think/act loop for chat turns: it asks the model
// for the next step, executes any requested tool, feeds the result back, and
// repeats until the model answers in plain text or the cycle budget runs out.
type Orchestrator struct {
	model     Model
	registry  *tools.Registry
	logger    *slog.Logger
	metrics   *instrumentation.Metrics
	maxCycles int
}

// Options configures an Orchestrator.
type Options struct {
	Model    Model
	Registry *tools.Registry
	Logger   *slog.Logger

	// MaxCycles bounds model round-trips per turn (default DefaultMaxCycles).
	MaxCycles int
}

// New creates an orchestrator over a model and a tool registry.
func New(opts Options) (*Orchestrator, error) {
	if opts.Model == nil {
		return nil, fmt.Errorf("model is required")
	}
	if opts.Registry == nil {
		return nil, fmt.Errorf("tool registry is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	maxCycles := opts.MaxCycles
	if maxCycles <= 0 {
		maxCycles = DefaultMaxCycles
	}

	return &Orchestrator{
		model:     opts.Model,
		registry:  opts.Registry,
		logger:    logger,
		maxCycles: maxCycles,
	}, nil
}

// SetMetrics attaches a metrics recorder for chat turns.
func (o *Orchestrator) SetMetrics(m *instrumentation.Metrics) {
	o.metrics = m
}

// Run handles one chat turn: the user message is appended to the session and
// the loop runs until the model produces a plain answer. The session is held
// locked for the whole turn so concurrent requests on the same conversation
// serialize instead of interleaving history.
//
// Run never returns an error to the caller; faults inside a turn degrade to
// an apologetic answer so the conversation survives.
func (o *Orchestrator) Run(ctx context.Context, sess *session.Session, userMessage string) (answer string) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("chat turn panicked",
				logging.Session(sess.ID()),
				slog.Any("panic", r),
			)
			answer = faultAnswer
		}
	}()

	ctx, span := instrumentation.StartChatSpan(ctx, sess.ID())
	defer span.End()

	sess.Lock()
	defer sess.Unlock()

	sess.AppendLocked(session.UserMessage(userMessage))

	for cycle := 1; cycle <= o.maxCycles; cycle++ {
		reply, err := o.model.Generate(ctx, systemPrompt, sess.MessagesLocked())
		if err != nil {
			instrumentation.SetSpanError(span, err)
			o.logger.Error("model generation failed",
				logging.Session(sess.ID()),
				logging.Cycle(cycle),
				logging.Err(err),
			)
			return faultAnswer
		}

		sess.AppendLocked(reply)

		if len(reply.ToolCalls) == 0 {
			if o.metrics != nil {
				o.metrics.RecordReasoningCycles(ctx, cycle)
			}
			instrumentation.SetSpanSuccess(span)
			return reply.Content
		}

		// Only the first requested call is honored per cycle; the model
		// sees its result before it can ask for another.
		call := reply.ToolCalls[0]

		o.logger.Debug("executing tool call",
			logging.Session(sess.ID()),
			logging.Cycle(cycle),
			logging.Tool(call.Name),
		)

		result := o.registry.Execute(ctx, call.Name, call.Args)
		sess.AppendLocked(session.ToolResult(call, result))
	}

	o.logger.Warn("cycle budget exhausted",
		logging.Session(sess.ID()),
		logging.Cycle(o.maxCycles),
	)
	if o.metrics != nil {
		o.metrics.RecordReasoningCycles(ctx, o.maxCycles)
	}
	sess.AppendLocked(session.AssistantMessage(exhaustedAnswer))
	return exhaustedAnswer
}
