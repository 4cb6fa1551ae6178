package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rvaidya/meetingmate/internal/instrumentation"
	"github.com/rvaidya/meetingmate/internal/logging"
)

// SessionHeader carries the conversation identifier between requests. The
// server generates one on the first request and echoes it back; clients
// resend it to continue the same conversation.
const SessionHeader = "X-Session-Id"

const (
	// DefaultChatAddr is the default bind address for the chat server.
	DefaultChatAddr = ":8080"

	// DefaultReadHeaderTimeout bounds how long reading request headers may take.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultIdleTimeout closes keep-alive connections that sit unused.
	DefaultIdleTimeout = 120 * time.Second
)

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the reply body for POST /chat.
type ChatResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ChatServer exposes the assistant over HTTP.
type ChatServer struct {
	serverContext *ServerContext
	health        *HealthChecker
	logger        *slog.Logger
	metrics       *instrumentation.Metrics
	httpServer    *http.Server
	addr          string
}

// ChatServerConfig holds configuration for the chat server.
type ChatServerConfig struct {
	// Addr is the address to bind to (default DefaultChatAddr).
	Addr string

	ServerContext *ServerContext
	Logger        *slog.Logger
	Metrics       *instrumentation.Metrics
}

// NewChatServer creates a chat server over the given server context.
func NewChatServer(config ChatServerConfig) *ChatServer {
	addr := config.Addr
	if addr == "" {
		addr = DefaultChatAddr
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &ChatServer{
		serverContext: config.ServerContext,
		logger:        logger,
		metrics:       config.Metrics,
		addr:          addr,
	}
	s.health = NewHealthChecker(config.ServerContext)

	return s
}

// Handler builds the HTTP handler with all routes registered.
func (s *ChatServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/chat", http.HandlerFunc(s.handleChat))
	s.health.RegisterHealthEndpoints(mux)
	return mux
}

// Start serves chat traffic in a blocking manner.
// Call this in a goroutine if you need non-blocking operation.
func (s *ChatServer) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}

	s.logger.Info("starting chat server", slog.String("addr", s.addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the chat server.
func (s *ChatServer) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)
	if s.httpServer != nil {
		s.logger.Info("shutting down chat server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// Addr returns the configured bind address.
func (s *ChatServer) Addr() string {
	return s.addr
}

func (s *ChatServer) handleChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", start)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, "invalid request body", start)
		return
	}
	if req.Message == "" {
		s.writeError(w, r, http.StatusBadRequest, "message is required", start)
		return
	}

	sess := s.serverContext.Sessions().Get(r.Header.Get(SessionHeader))

	answer := s.serverContext.Orchestrator().Run(r.Context(), sess, req.Message)

	duration := time.Since(start)
	s.logger.Info("chat turn complete",
		logging.Operation("chat"),
		logging.Session(sess.ID()),
		slog.Duration(logging.KeyDuration, duration),
		slog.Int("message_len", len(req.Message)),
	)
	s.recordRequest(r, http.StatusOK, duration)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(SessionHeader, sess.ID())
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(ChatResponse{Response: answer})
}

func (s *ChatServer) writeError(w http.ResponseWriter, r *http.Request, code int, msg string, start time.Time) {
	s.recordRequest(r, code, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})

	s.logger.Warn("chat request rejected",
		logging.Operation("chat"),
		slog.String("status", strconv.Itoa(code)),
		slog.String("reason", msg),
	)
}

func (s *ChatServer) recordRequest(r *http.Request, code int, duration time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordChatRequest(r.Context(), r.Method, r.URL.Path, code, duration)
}
