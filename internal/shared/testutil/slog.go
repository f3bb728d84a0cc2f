package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is one captured log call
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// CaptureHandler is a slog.Handler that keeps every record in memory
type CaptureHandler struct {
	mu      *sync.Mutex
	records *[]LogRecord
	attrs   []slog.Attr
	t       *testing.T
}

// NewCaptureHandler creates a handler that also echoes records to t.Log
func NewCaptureHandler(t *testing.T) *CaptureHandler {
	return &CaptureHandler{
		mu:      &sync.Mutex{},
		records: &[]LogRecord{},
		t:       t,
	}
}

// NewTestLogger returns a logger backed by a CaptureHandler
func NewTestLogger(t *testing.T) (*slog.Logger, *CaptureHandler) {
	h := NewCaptureHandler(t)
	return slog.New(h), h
}

// Enabled implements slog.Handler. Every level is captured.
func (h *CaptureHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	*h.records = append(*h.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	h.mu.Unlock()

	if h.t != nil {
		h.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// WithAttrs implements slog.Handler; derived handlers share the record buffer
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CaptureHandler{mu: h.mu, records: h.records, attrs: merged, t: h.t}
}

// WithGroup implements slog.Handler. Groups are flattened.
func (h *CaptureHandler) WithGroup(string) slog.Handler {
	return h
}

// Records returns a copy of the captured records
func (h *CaptureHandler) Records() []LogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogRecord, len(*h.records))
	copy(out, *h.records)
	return out
}

// ByLevel returns the captured records at level
func (h *CaptureHandler) ByLevel(level slog.Level) []LogRecord {
	var out []LogRecord
	for _, r := range h.Records() {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}

// Find returns the first record whose message contains msg
func (h *CaptureHandler) Find(msg string) (LogRecord, bool) {
	for _, r := range h.Records() {
		if strings.Contains(r.Message, msg) {
			return r, true
		}
	}
	return LogRecord{}, false
}

// AssertLogContains fails t unless a record at level contains msg
func AssertLogContains(t *testing.T, h *CaptureHandler, level slog.Level, msg string) {
	t.Helper()
	for _, r := range h.ByLevel(level) {
		if strings.Contains(r.Message, msg) {
			return
		}
	}
	t.Errorf("no %s log containing %q", level, msg)
}

// AssertNoErrors fails t if any error-level record was captured
func AssertNoErrors(t *testing.T, h *CaptureHandler) {
	t.Helper()
	for _, r := range h.ByLevel(slog.LevelError) {
		t.Errorf("unexpected error log: %s %v", r.Message, r.Attrs)
	}
}
