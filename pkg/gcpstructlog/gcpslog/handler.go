// Package gcpslog provides a log/slog handler that emits the JSON format
// the Cloud Logging agent parses for structured logs.
package gcpslog

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/logx-go/gcp-structlog/pkg/gcpstructlog/model"
)

// Levels for the severities slog does not name, spaced into slog's
// numeric scheme so threshold comparisons keep working.
const (
	LevelNotice    = slog.LevelInfo + 2
	LevelCritical  = slog.LevelError + 4
	LevelAlert     = slog.LevelError + 8
	LevelEmergency = slog.LevelError + 12
)

// HandlerOptions configures the handler returned by NewHandler.
type HandlerOptions struct {
	// Level reports the minimum record level that will be logged; nil
	// means slog.LevelInfo.
	Level slog.Leveler

	// AddSource records the source location of the log statement under
	// the logging.googleapis.com/sourceLocation key.
	AddSource bool

	// ErrorReporting tags records at slog.LevelError and above with the
	// ReportedErrorEvent type so Error Reporting picks them up.
	ErrorReporting bool
}

// Handler renders records as agent-format JSON lines. It wraps the
// stdlib JSONHandler; level gating, attribute handling and output
// framing stay with the stdlib.
type Handler struct {
	inner slog.Handler

	// marked is inner with the @type marker preformatted as a top-level
	// attr, so it stays top level even under WithGroup. nil when error
	// reporting is off.
	marked slog.Handler
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler returns a handler writing agent-format JSON lines to w.
func NewHandler(w io.Writer, opts *HandlerOptions) *Handler {
	if opts == nil {
		opts = &HandlerOptions{}
	}

	inner := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       opts.Level,
		AddSource:   opts.AddSource,
		ReplaceAttr: replaceAttr,
	})

	h := &Handler{inner: inner}
	if opts.ErrorReporting {
		h.marked = inner.WithAttrs([]slog.Attr{
			slog.String(model.TypeKey, model.ReportedErrorEventType),
		})
	}

	return h
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if h.marked != nil && record.Level >= slog.LevelError {
		return h.marked.Handle(ctx, record)
	}

	return h.inner.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := &Handler{inner: h.inner.WithAttrs(attrs)}
	if h.marked != nil {
		c.marked = h.marked.WithAttrs(attrs)
	}

	return c
}

func (h *Handler) WithGroup(name string) slog.Handler {
	c := &Handler{inner: h.inner.WithGroup(name)}
	if h.marked != nil {
		c.marked = h.marked.WithGroup(name)
	}

	return c
}

// replaceAttr rewrites the JSONHandler built-ins into the agent's keys
// and value formats. Attrs inside groups are left alone.
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch a.Key {
	case slog.TimeKey:
		if a.Value.Kind() == slog.KindTime {
			return slog.String(model.TimeKey, model.FormatTime(a.Value.Time()))
		}
	case slog.LevelKey:
		if level, ok := a.Value.Any().(slog.Level); ok {
			return slog.String(model.SeverityKey, string(severityOf(level)))
		}
	case slog.MessageKey:
		return slog.Attr{Key: model.MessageKey, Value: a.Value}
	case slog.SourceKey:
		if src, ok := a.Value.Any().(*slog.Source); ok && src != nil {
			return slog.Any(model.SourceLocationKey, &model.SourceLocation{
				File:     src.File,
				Line:     strconv.Itoa(src.Line),
				Function: src.Function,
			})
		}
	}

	return a
}

func severityOf(level slog.Level) model.Severity {
	switch {
	case level >= LevelEmergency:
		return model.SeverityEmergency
	case level >= LevelAlert:
		return model.SeverityAlert
	case level >= LevelCritical:
		return model.SeverityCritical
	case level >= slog.LevelError:
		return model.SeverityError
	case level >= slog.LevelWarn:
		return model.SeverityWarning
	case level >= LevelNotice:
		return model.SeverityNotice
	case level >= slog.LevelInfo:
		return model.SeverityInfo
	default:
		return model.SeverityDebug
	}
}
