// Package gcpzerolog points rs/zerolog's global field configuration at the
// JSON format the Cloud Logging agent parses for structured logs.
package gcpzerolog

import (
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/logx-go/gcp-structlog/pkg/gcpstructlog/model"
)

// Setup rewires zerolog's package-level configuration: the agent's key
// names, severity tokens instead of zerolog's level names, and timestamps
// in the agent's UTC format. TimestampFunc must yield UTC or the literal Z
// of the layout would lie about the wall time.
func Setup() {
	zerolog.TimestampFieldName = model.TimeKey
	zerolog.LevelFieldName = model.SeverityKey
	zerolog.MessageFieldName = model.MessageKey
	zerolog.TimeFieldFormat = model.TimeLayout
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	zerolog.LevelFieldMarshalFunc = severityToken
}

func severityToken(l zerolog.Level) string {
	switch l {
	case zerolog.TraceLevel:
		return string(model.SeverityDefault)
	case zerolog.DebugLevel:
		return string(model.SeverityDebug)
	case zerolog.InfoLevel:
		return string(model.SeverityInfo)
	case zerolog.WarnLevel:
		return string(model.SeverityWarning)
	case zerolog.ErrorLevel:
		return string(model.SeverityError)
	case zerolog.FatalLevel:
		return string(model.SeverityAlert)
	case zerolog.PanicLevel:
		return string(model.SeverityEmergency)
	default:
		return string(model.SeverityDefault)
	}
}

// ErrorReportHook marks events of error level and above as reportable
// error events by adding the @type marker.
type ErrorReportHook struct{}

func (ErrorReportHook) Run(e *zerolog.Event, level zerolog.Level, _ string) {
	if level >= zerolog.ErrorLevel && level < zerolog.NoLevel {
		e.Str(model.TypeKey, model.ReportedErrorEventType)
	}
}

// New returns a logger writing agent-format JSON lines to w, with
// timestamps on every event and the error-report hook installed.
func New(w io.Writer) zerolog.Logger {
	Setup()

	return zerolog.New(w).With().Timestamp().Logger().Hook(ErrorReportHook{})
}
