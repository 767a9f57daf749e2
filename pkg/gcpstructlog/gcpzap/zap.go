// Package gcpzap configures go.uber.org/zap to emit the JSON format the
// Cloud Logging agent parses for structured logs. It only provides an
// encoder configuration and typed fields; cores, sampling and sinks stay
// with zap.
package gcpzap

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/logx-go/gcp-structlog/pkg/gcpstructlog/model"
)

// NewEncoderConfig returns an encoder configuration with the agent's key
// names and value formats. The caller and stacktrace keys are omitted;
// source locations travel as an explicit SourceLocation field instead.
func NewEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        model.TimeKey,
		LevelKey:       model.SeverityKey,
		NameKey:        "logger",
		CallerKey:      zapcore.OmitKey,
		MessageKey:     model.MessageKey,
		StacktraceKey:  zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    SeverityLevelEncoder,
		EncodeTime:     encodeTimeUTC,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// NewCore returns a core writing one JSON entry per line to ws.
func NewCore(ws zapcore.WriteSyncer, enab zapcore.LevelEnabler) zapcore.Core {
	return zapcore.NewCore(zapcore.NewJSONEncoder(NewEncoderConfig()), ws, enab)
}

// SeverityLevelEncoder encodes zap levels as severity tokens.
func SeverityLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(string(severityOf(l)))
}

func severityOf(l zapcore.Level) model.Severity {
	switch l {
	case zapcore.DebugLevel:
		return model.SeverityDebug
	case zapcore.InfoLevel:
		return model.SeverityInfo
	case zapcore.WarnLevel:
		return model.SeverityWarning
	case zapcore.ErrorLevel:
		return model.SeverityError
	case zapcore.DPanicLevel:
		return model.SeverityCritical
	case zapcore.PanicLevel:
		return model.SeverityAlert
	case zapcore.FatalLevel:
		return model.SeverityEmergency
	default:
		return model.SeverityDefault
	}
}

func encodeTimeUTC(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(model.FormatTime(t))
}

// Operation marks the entry as part of a long-running operation. The
// first and last markers are emitted only when true; use zap.Any with a
// model.Operation to emit an explicit false.
func Operation(id, producer string, first, last bool) zap.Field {
	op := &model.Operation{Id: id, Producer: producer}
	if first {
		op.First = &first
	}
	if last {
		op.Last = &last
	}

	return zap.Any(model.OperationKey, op)
}

// SourceLocation records where the entry was produced:
//
//	gcpzap.SourceLocation(runtime.Caller(0))
func SourceLocation(pc uintptr, file string, line int, ok bool) zap.Field {
	loc := model.NewSourceLocation(pc, file, line, ok)
	if loc == nil {
		return zap.Skip()
	}

	return zap.Any(model.SourceLocationKey, loc)
}

// HTTP attaches the request the entry was produced for.
func HTTP(r *model.HttpRequest) zap.Field {
	if r == nil {
		return zap.Skip()
	}

	return zap.Any(model.HTTPRequestKey, r)
}

// Labels attaches user-defined entry labels.
func Labels(labels map[string]string) zap.Field {
	if len(labels) == 0 {
		return zap.Skip()
	}

	return zap.Any(model.LabelsKey, labels)
}

// InsertID sets the entry's deduplication identifier.
func InsertID(id string) zap.Field {
	return zap.String(model.InsertIdKey, id)
}

// Trace correlates the entry with a trace in the given project.
func Trace(projectID, traceID string) zap.Field {
	return zap.String(model.TraceKey, fmt.Sprintf("projects/%s/traces/%s", projectID, traceID))
}

// SpanID correlates the entry with a span within its trace.
func SpanID(id string) zap.Field {
	return zap.String(model.SpanIdKey, id)
}

// TraceSampled records whether the correlated trace was sampled.
func TraceSampled(sampled bool) zap.Field {
	return zap.Bool(model.TraceSampledKey, sampled)
}

// ErrorReport marks the entry as a reportable error event.
func ErrorReport() zap.Field {
	return zap.String(model.TypeKey, model.ReportedErrorEventType)
}
