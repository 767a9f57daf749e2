// Package gcplogr provides a go-logr/logr sink that writes each record to
// an io.Writer as one line of the JSON format the Cloud Logging agent
// parses for structured logs.
package gcplogr

import (
	"encoding/json"
	"io"
	"runtime"
	"time"

	"github.com/go-logr/logr"

	"github.com/logx-go/gcp-structlog/pkg/gcpstructlog/model"
)

// Option configures the sink behind the logger returned by New.
type Option func(*sink)

// WithVerbosity sets the highest V level that is still emitted. The
// default of 0 silences every V(1)+ message.
func WithVerbosity(v int) Option {
	return func(s *sink) { s.verbosity = v }
}

// WithErrorReporting tags records logged through Error with the
// ReportedErrorEvent type so Error Reporting picks them up.
func WithErrorReporting(enabled bool) Option {
	return func(s *sink) { s.reportErrors = enabled }
}

// WithOperation stamps every record with a fixed operation id and
// producer, correlating all output of one service instance.
func WithOperation(id, producer string) Option {
	return func(s *sink) { s.operation = &model.Operation{Id: id, Producer: producer} }
}

// WithSource records the caller as the entry's source location.
func WithSource(enabled bool) Option {
	return func(s *sink) { s.source = enabled }
}

// New returns a logr.Logger writing agent-format JSON lines to w.
func New(w io.Writer, opts ...Option) logr.Logger {
	s := &sink{w: w, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return logr.New(s)
}

type sink struct {
	w            io.Writer
	verbosity    int
	reportErrors bool
	operation    *model.Operation
	source       bool
	name         string
	values       []any
	callDepth    int
	now          func() time.Time
}

var (
	_ logr.LogSink          = (*sink)(nil)
	_ logr.CallDepthLogSink = (*sink)(nil)
)

func (s *sink) Init(info logr.RuntimeInfo) {
	s.callDepth += info.CallDepth
}

func (s *sink) Enabled(level int) bool {
	return level <= s.verbosity
}

func (s *sink) Info(level int, msg string, keysAndValues ...any) {
	severity := model.SeverityInfo
	if level > 0 {
		severity = model.SeverityDebug
	}

	s.write(severity, "", msg, keysAndValues)
}

func (s *sink) Error(err error, msg string, keysAndValues ...any) {
	reportType := ""
	if s.reportErrors {
		reportType = model.ReportedErrorEventType
	}

	if err != nil {
		keysAndValues = append([]any{"error", err.Error()}, keysAndValues...)
	}

	s.write(model.SeverityError, reportType, msg, keysAndValues)
}

func (s *sink) WithValues(keysAndValues ...any) logr.LogSink {
	c := s.clone()
	c.values = append(c.values, keysAndValues...)

	return c
}

func (s *sink) WithName(name string) logr.LogSink {
	c := s.clone()
	if c.name == "" {
		c.name = name
	} else {
		c.name = c.name + "/" + name
	}

	return c
}

func (s *sink) WithCallDepth(depth int) logr.LogSink {
	c := s.clone()
	c.callDepth += depth

	return c
}

func (s *sink) clone() *sink {
	c := *s
	c.values = append([]any(nil), s.values...)

	return &c
}

func (s *sink) write(severity model.Severity, reportType, msg string, keysAndValues []any) {
	entry := &model.LogEntry{
		Severity:   severity,
		Message:    msg,
		ReportType: reportType,
		Time:       model.NewTimestamp(s.now()),
		Operation:  s.operation,
		Payload:    s.payload(keysAndValues),
	}

	if s.source {
		// two frames here (write and Info/Error) plus the depth logr reports
		entry.SourceLocation = model.NewSourceLocation(runtime.Caller(2 + s.callDepth))
	}

	line, err := entry.JSON()
	if err != nil {
		return
	}

	// a logger has no better place to report its own write failures
	_, _ = io.WriteString(s.w, line+"\n")
}

func (s *sink) payload(keysAndValues []any) map[string]any {
	kvs := make([]any, 0, len(s.values)+len(keysAndValues))
	kvs = append(kvs, s.values...)
	kvs = append(kvs, keysAndValues...)

	payload := make(map[string]any, len(kvs)/2+1)
	for i := 0; i+1 < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			continue
		}

		value := payloadValue(kvs[i+1])
		if _, err := json.Marshal(value); err != nil {
			continue
		}

		payload[key] = value
	}

	if s.name != "" {
		payload["logger"] = s.name
	}

	if len(payload) == 0 {
		return nil
	}

	return payload
}

func payloadValue(v any) any {
	switch v := v.(type) {
	case logr.Marshaler:
		return v.MarshalLog()
	case error:
		return v.Error()
	default:
		return v
	}
}
