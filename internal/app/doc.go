// Package app wires configuration, telemetry, services and the HTTP router
// into a runnable server and manages its lifecycle.
//
// Middleware order is RequestID, RealIP, OTel, StructuredLogger, Recoverer,
// Timeout, SecurityHeaders and the optional rate limiter. The Prometheus
// endpoint sits outside that group.
//
// Run blocks until SIGINT or SIGTERM and then shuts down the server and the
// telemetry providers within Server.ShutdownTimeout.
package app
