// Package http implements the JSON API of the regional indicators.
//
// Handlers are thin: they decode and validate the request body, build the
// domain series, call the service and render the result. Undefined ratios
// are rendered as JSON null. Every failure goes through errors.ErrorHandler
// and reaches the client as an RFC 7807 problem.
//
// Routes:
//
//	POST /api/v1/regional/location-quotient
//	POST /api/v1/regional/location-quotient/table
//	POST /api/v1/regional/shift-share
//	POST /api/v1/regional/specialization
//	GET  /api/health
//	GET  /api/health/live
//	GET  /api/version
//	GET  /metrics
package http
