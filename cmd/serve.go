package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rvaidya/meetingmate/internal/assistant"
	"github.com/rvaidya/meetingmate/internal/calendar"
	"github.com/rvaidya/meetingmate/internal/config"
	"github.com/rvaidya/meetingmate/internal/gemini"
	"github.com/rvaidya/meetingmate/internal/instrumentation"
	"github.com/rvaidya/meetingmate/internal/logging"
	"github.com/rvaidya/meetingmate/internal/server"
	"github.com/rvaidya/meetingmate/internal/session"
	"github.com/rvaidya/meetingmate/internal/timeparse"
	"github.com/rvaidya/meetingmate/internal/tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

// assistantStack bundles the wired components of the assistant so the
// serve and chat commands can share one construction path.
type assistantStack struct {
	config   config.Config
	logger   *slog.Logger
	registry *tools.Registry
	sessions *session.Manager
	orch     *assistant.Orchestrator
}

func (s *assistantStack) Close() {
	s.sessions.Close()
}

func newServeCmd() *cobra.Command {
	var (
		debugMode       bool
		transport       string
		httpAddr        string
		credentialsFile string
		calendarID      string
		timezone        string
		model           string
		maxCycles       int
		// Metrics server configuration
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduling assistant server",
		Long: `Start the scheduling assistant as a long-running server.

Supports multiple transport types:
  - http: JSON chat API on POST /chat (default)
  - mcp: MCP server exposing the scheduling tools over standard input/output

Configuration:
  The Gemini API key must be provided via the GEMINI_API_KEY environment
  variable. Calendar access uses a Google service account key JSON, set
  via --credentials-file or the GOOGLE_CREDENTIALS_FILE env var.

  All scheduling is resolved in a single timezone (--timezone or
  CALENDAR_TIMEZONE). Conversations are kept in memory per X-Session-Id
  header and expire after a day of inactivity.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cmd.Flags().Changed("http-addr") {
				cfg.HTTPAddr = httpAddr
			}
			if cmd.Flags().Changed("credentials-file") {
				cfg.CredentialsFile = credentialsFile
			}
			if cmd.Flags().Changed("calendar-id") {
				cfg.CalendarID = calendarID
			}
			if cmd.Flags().Changed("timezone") {
				cfg.Timezone = timezone
			}
			if cmd.Flags().Changed("model") {
				cfg.Model = model
			}
			if cmd.Flags().Changed("max-cycles") {
				cfg.MaxCycles = maxCycles
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}
			if !cmd.Flags().Changed("metrics-addr") {
				if addr := os.Getenv("METRICS_ADDR"); addr != "" {
					metricsConfig.Addr = addr
				}
			}
			if !cmd.Flags().Changed("metrics-enabled") {
				if os.Getenv("METRICS_ENABLED") == "false" {
					metricsConfig.Enabled = false
				}
			}

			return runServe(cfg, transport, debugMode, metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "http", "Transport type: http or mcp")
	cmd.Flags().StringVar(&httpAddr, "http-addr", config.DefaultHTTPAddr, "Chat server address (for http transport). Can also use HTTP_ADDR env var.")
	cmd.Flags().StringVar(&credentialsFile, "credentials-file", "creds.json", "Path to the Google service account key JSON. Can also use GOOGLE_CREDENTIALS_FILE env var.")
	cmd.Flags().StringVar(&calendarID, "calendar-id", config.DefaultCalendarID, "Calendar to read from and book into. Can also use CALENDAR_ID env var.")
	cmd.Flags().StringVar(&timezone, "timezone", config.DefaultTimezone, "IANA timezone all scheduling is resolved in. Can also use CALENDAR_TIMEZONE env var.")
	cmd.Flags().StringVar(&model, "model", config.DefaultModel, "Gemini model used for chat completion. Can also use GEMINI_MODEL env var.")
	cmd.Flags().IntVar(&maxCycles, "max-cycles", config.DefaultMaxCycles, "Maximum reasoning cycles per chat request. Can also use MAX_CYCLES env var.")

	// Metrics server flags
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// buildAssistant wires the full assistant stack: calendar gateway, time
// parser, tool registry, Gemini model, orchestrator and session store.
// The instrumentation provider may be disabled; components degrade to
// no-op recording in that case.
func buildAssistant(ctx context.Context, cfg config.Config, logger *slog.Logger, provider *instrumentation.Provider, auditConfig instrumentation.AuditLoggingConfig) (*assistantStack, error) {
	loc := cfg.Location()

	cal, err := calendar.NewClient(ctx, calendar.Options{
		CredentialsFile: cfg.CredentialsFile,
		CalendarID:      cfg.CalendarID,
		Location:        loc,
		MaxResults:      int64(cfg.MaxResults),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}

	parser := timeparse.New(loc)
	scheduler := tools.NewScheduler(cal, parser, loc, logger)

	registry, err := tools.NewRegistry(logger, scheduler.Tools()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool registry: %w", err)
	}

	model, err := gemini.New(ctx, gemini.Options{
		APIKey:    cfg.GeminiAPIKey,
		ModelName: cfg.Model,
		Registry:  registry,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	orch, err := assistant.New(assistant.Options{
		Model:     model,
		Registry:  registry,
		Logger:    logger,
		MaxCycles: cfg.MaxCycles,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create orchestrator: %w", err)
	}

	sessions := session.NewManager(logger)

	if provider != nil && provider.Enabled() {
		metrics := provider.Metrics()
		cal.SetMetrics(metrics)
		registry.SetMetrics(metrics)
		registry.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(logger, auditConfig))
		model.SetMetrics(metrics)
		orch.SetMetrics(metrics)
		sessions.SetMetrics(metrics)
	}

	return &assistantStack{
		config:   cfg,
		logger:   logger,
		registry: registry,
		sessions: sessions,
		orch:     orch,
	}, nil
}

func runServe(cfg config.Config, transport string, debugMode bool, metricsConfig MetricsConfig) error {
	switch transport {
	case "http", "mcp":
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: http, mcp)", transport)
	}

	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := logging.Setup(debugMode)

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	// Start metrics server if enabled (http transport only)
	var metricsServer *server.MetricsServer
	if transport == "http" && metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server stopped", logging.Err(err))
			}
		}()
	}
	defer func() {
		if metricsServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				logger.Error("error during metrics server shutdown", logging.Err(err))
			}
		}
	}()

	stack, err := buildAssistant(shutdownCtx, cfg, logger, provider, instrConfig.AuditLogging)
	if err != nil {
		return err
	}

	serverContext := server.NewServerContext(shutdownCtx, stack.orch, stack.sessions, stack.registry)
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("error during server context shutdown", logging.Err(err))
		}
	}()

	// Start the appropriate server based on transport type
	switch transport {
	case "http":
		return runChatServer(shutdownCtx, serverContext, stack, provider, metricsConfig, logger)
	case "mcp":
		return runStdioServer(stack.registry)
	default:
		return fmt.Errorf("unsupported transport type: %s", transport)
	}
}

// runChatServer serves the JSON chat API until the context is cancelled.
func runChatServer(ctx context.Context, serverContext *server.ServerContext, stack *assistantStack, provider *instrumentation.Provider, metricsConfig MetricsConfig, logger *slog.Logger) error {
	var metrics *instrumentation.Metrics
	if provider.Enabled() {
		metrics = provider.Metrics()
	}

	chatServer := server.NewChatServer(server.ChatServerConfig{
		Addr:          stack.config.HTTPAddr,
		ServerContext: serverContext,
		Logger:        logger,
		Metrics:       metrics,
	})

	logger.Info("starting chat transport",
		slog.String("addr", chatServer.Addr()),
		logging.Model(stack.config.Model))
	if metricsConfig.Enabled && provider.Enabled() {
		logger.Info("metrics endpoint available", slog.String("addr", metricsConfig.Addr))
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := chatServer.Start(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping chat server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := chatServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down chat server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("chat server stopped with error: %w", err)
		}
	}

	return nil
}

// runStdioServer exposes the scheduling tools as an MCP server on stdio.
func runStdioServer(registry *tools.Registry) error {
	mcpSrv := mcpserver.NewMCPServer("meetingmate", version,
		mcpserver.WithToolCapabilities(true),
	)
	tools.RegisterMCP(mcpSrv, registry)

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}
