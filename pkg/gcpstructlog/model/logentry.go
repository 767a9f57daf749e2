package model

import (
	"encoding/json"
)

// JSON keys of the special fields recognized by the structured-logging agent.
// The agent strips the logging.googleapis.com/ keys from jsonPayload and
// promotes them to the matching LogEntry field at ingestion.
const (
	SeverityKey       = "severity"
	MessageKey        = "message"
	TypeKey           = "@type"
	HTTPRequestKey    = "httpRequest"
	TimeKey           = "time"
	InsertIdKey       = "logging.googleapis.com/insertId"
	LabelsKey         = "logging.googleapis.com/labels"
	OperationKey      = "logging.googleapis.com/operation"
	SourceLocationKey = "logging.googleapis.com/sourceLocation"
	SpanIdKey         = "logging.googleapis.com/spanId"
	TraceKey          = "logging.googleapis.com/trace"
	TraceSampledKey   = "logging.googleapis.com/trace_sampled"
)

// ReportedErrorEventType, set as the @type of an entry, makes Error Reporting
// pick the entry up and group it as a reportable error event.
// More info see: https://cloud.google.com/error-reporting/docs/formatting-error-messages#@type
const ReportedErrorEventType = "type.googleapis.com/google.devtools.clouderrorreporting.v1beta1.ReportedErrorEvent"

// LogEntry according to https://cloud.google.com/logging/docs/structured-logging
//
// Every field is optional: the zero value serializes to `{}` and set fields
// are overridden per entry with a composite literal. An absent field is never
// serialized, not even as null; some consumers treat missing and null
// differently.
type LogEntry struct {
	Severity       Severity          `json:"severity,omitempty"`
	Message        string            `json:"message,omitempty"`
	ReportType     string            `json:"@type,omitempty"`
	HttpRequest    *HttpRequest      `json:"httpRequest,omitempty"`
	Time           *Timestamp        `json:"time,omitempty"`
	InsertId       string            `json:"logging.googleapis.com/insertId,omitempty"`
	Labels         map[string]string `json:"logging.googleapis.com/labels,omitempty"`
	Operation      *Operation        `json:"logging.googleapis.com/operation,omitempty"`
	SourceLocation *SourceLocation   `json:"logging.googleapis.com/sourceLocation,omitempty"`
	SpanId         string            `json:"logging.googleapis.com/spanId,omitempty"`
	Trace          string            `json:"logging.googleapis.com/trace,omitempty"`
	TraceSampled   *bool             `json:"logging.googleapis.com/trace_sampled,omitempty"`

	// Payload holds the arbitrary structured fields of the entry. The agent
	// turns every non-special top-level key into jsonPayload, so Payload is
	// flattened into the object on marshal rather than nested under a key.
	Payload map[string]any `json:"-"`
}

// MarshalJSON emits the set special fields and flattens Payload alongside
// them. A Payload key never overrides a set special field.
func (l LogEntry) MarshalJSON() ([]byte, error) {
	type plain LogEntry

	b, err := json.Marshal(plain(l))
	if err != nil || len(l.Payload) == 0 {
		return b, err
	}

	merged := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &merged); err != nil {
		return nil, err
	}

	for k, v := range l.Payload {
		if _, taken := merged[k]; taken {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		merged[k] = raw
	}

	return json.Marshal(merged)
}

// JSON renders the entry as a single JSON object with the schema-mandated
// keys, ready to be written as one line of log output. Ingestion expects
// line-delimited JSON: one object per entry, never an array.
func (l *LogEntry) JSON() (string, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
