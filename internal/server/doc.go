// Package server provides the HTTP surface of the scheduling assistant.
//
// # Key Components
//
// ChatServer exposes POST /chat: the request body carries the user's
// message, the response carries the assistant's answer. Conversations are
// correlated by the X-Session-Id header; the server mints one on first
// contact and echoes it back on every response.
//
// HealthChecker serves /healthz and /readyz for Kubernetes probes, plus
// /healthz/detailed with uptime information.
//
// MetricsServer serves Prometheus metrics on a dedicated port, isolating
// operational metrics from chat traffic.
//
// ServerContext ties the orchestrator, session store, and tool registry
// together and coordinates graceful shutdown across them.
package server
