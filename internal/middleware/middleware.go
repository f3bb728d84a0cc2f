package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	apierrors "cbpmetrics/internal/errors"
	"cbpmetrics/internal/infrastructure"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

// RequestID assigns every request an ID, taken from the X-Request-ID header
// when the client sent one and a UUID v4 otherwise. The ID is stored under
// chi's request ID key so chi helpers and the error handler can read it, and
// becomes the log trace_id unless a span is already active.
// Must be the first middleware in the chain.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestID)

		ctx := context.WithValue(r.Context(), chimw.RequestIDKey, requestID)
		ctx = infrastructure.WithTraceID(ctx, requestID)

		if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
			ctx = infrastructure.WithTraceID(ctx, span.SpanContext().TraceID().String())
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID retrieves the request ID from the context, falling back to the
// trace ID
func GetRequestID(ctx context.Context) string {
	if reqID := chimw.GetReqID(ctx); reqID != "" {
		return reqID
	}
	return infrastructure.GetTraceID(ctx)
}

// StructuredLogger logs one line per completed request with slog.
// Goes after RequestID and RealIP.
func StructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			reqLogger := logger
			if traceID := infrastructure.GetTraceID(ctx); traceID != "" {
				reqLogger = logger.With(slog.String("trace_id", traceID))
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			level := slog.LevelInfo
			switch {
			case status >= http.StatusInternalServerError:
				level = slog.LevelError
			case status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			reqLogger.Log(ctx, level, "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("remote_addr", r.RemoteAddr),
			)
		})
	}
}

// Recoverer turns a panic into an RFC 7807 500 response
func Recoverer(errorHandler *apierrors.ErrorHandler) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					errorHandler.HandlePanic(w, r, rvr)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter rejects requests above a token bucket rate
type RateLimiter struct {
	limiter      *rate.Limiter
	retryAfter   time.Duration
	errorHandler *apierrors.ErrorHandler
}

// NewRateLimiter creates a rate limiter allowing rps requests per second with
// the given burst
func NewRateLimiter(rps float64, burst int, errorHandler *apierrors.ErrorHandler) *RateLimiter {
	retry := time.Second
	if rps > 0 && rps < 1 {
		retry = time.Duration(float64(time.Second) / rps)
	}
	return &RateLimiter{
		limiter:      rate.NewLimiter(rate.Limit(rps), burst),
		retryAfter:   retry,
		errorHandler: errorHandler,
	}
}

// Handler implements rate limiting middleware
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter.Allow() {
			w.Header().Set("Retry-After", strconv.Itoa(int(rl.retryAfter.Seconds())))
			rl.errorHandler.HandleError(w, r, apierrors.ErrRateLimitExceeded)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Timeout bounds the request context. Handlers observe the deadline through
// the context; the error handler maps the resulting context error to 504.
func Timeout(timeout time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if timeout <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SecurityHeaders adds the headers every JSON API response carries
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// RealIP extracts the real client IP using chi's implementation
func RealIP(next http.Handler) http.Handler {
	return chimw.RealIP(next)
}
