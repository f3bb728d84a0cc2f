// Package services sits between the transports (HTTP handlers and the report
// CLI) and the pure calculators in package regional.
//
// RegionalService wraps every indicator in a span, a structured log line and
// the regional metric instruments, and runs table-wide location quotients
// across geographies with bounded concurrency. HealthService reports build
// and runtime information for the health endpoints.
//
// Services never write HTTP responses; they return *errors.AppError values
// that the transport maps to RFC 7807 problems.
package services
