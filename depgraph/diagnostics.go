package depgraph

import (
	"context"
	"log/slog"
)

// DiagnosticKind names a non-fatal condition worth surfacing to the caller.
type DiagnosticKind string

const (
	// DiagnosticEmptyResult: dependencies were supplied but no node is visible,
	// usually a mismatch between the tree state and the dependency paths.
	DiagnosticEmptyResult DiagnosticKind = "empty-result"
	// DiagnosticMixedRelationship: an edge aggregates dependencies of different
	// relationship types; only the first type is reported on the edge.
	DiagnosticMixedRelationship DiagnosticKind = "mixed-relationship"
)

// Diagnostic is informational; the transform never fails.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Message string         `json:"message"`
	EdgeID  string         `json:"edgeId,omitempty"`
}

// DiagnosticsSink receives diagnostics as the transform produces them.
type DiagnosticsSink interface {
	Report(d Diagnostic)
}

// DiagnosticsFunc adapts a function to DiagnosticsSink.
type DiagnosticsFunc func(d Diagnostic)

// Report calls f(d).
func (f DiagnosticsFunc) Report(d Diagnostic) { f(d) }

// SlogSink writes diagnostics to a structured logger. A nil Logger uses slog.Default().
type SlogSink struct {
	Logger *slog.Logger
}

// Report logs d at warn level for an empty result and at info level otherwise.
func (s SlogSink) Report(d Diagnostic) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	level := slog.LevelInfo
	if d.Kind == DiagnosticEmptyResult {
		level = slog.LevelWarn
	}

	attrs := []slog.Attr{slog.String("kind", string(d.Kind))}
	if d.EdgeID != "" {
		attrs = append(attrs, slog.String("edge", d.EdgeID))
	}
	logger.LogAttrs(context.Background(), level, d.Message, attrs...)
}
