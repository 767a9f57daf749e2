package gcpstructlog

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/logx-go/commons/pkg/commons"
	"github.com/logx-go/contract/pkg/logx"

	"github.com/logx-go/gcp-structlog/pkg/gcpstructlog/model"
)

var _ logx.Formatter = (*StructLogFormatter)(nil)

// New returns a new formatter that renders each record as a single JSON
// line in the format the Cloud Logging agent parses for structured logs
func New() *StructLogFormatter {
	return &StructLogFormatter{
		logLevelToSeverityMap: map[int]model.Severity{
			logx.LogLevelDebug:   model.SeverityDebug,
			logx.LogLevelInfo:    model.SeverityInfo,
			logx.LogLevelNotice:  model.SeverityNotice,
			logx.LogLevelWarning: model.SeverityWarning,
			logx.LogLevelError:   model.SeverityError,
			logx.LogLevelFatal:   model.SeverityAlert,
			logx.LogLevelPanic:   model.SeverityEmergency,
		},
		logLevelDefault: logx.LogLevelInfo,
	}
}

type StructLogFormatter struct {
	logLevelToSeverityMap map[int]model.Severity
	logLevelDefault       int
	projectID             string
	reportErrors          bool
}

func (f *StructLogFormatter) clone() *StructLogFormatter {
	return &StructLogFormatter{
		logLevelToSeverityMap: f.logLevelToSeverityMap,
		logLevelDefault:       f.logLevelDefault,
		projectID:             f.projectID,
		reportErrors:          f.reportErrors,
	}
}

func (f *StructLogFormatter) WithLogLevelToSeverityMap(m map[int]model.Severity) *StructLogFormatter {
	c := f.clone()
	c.logLevelToSeverityMap = m

	return c
}

func (f *StructLogFormatter) WithLogLevelDefault(l int) *StructLogFormatter {
	c := f.clone()
	c.logLevelDefault = l

	return c
}

// WithProjectID enables deriving the trace fields from the
// X-Cloud-Trace-Context header of a logged request
func (f *StructLogFormatter) WithProjectID(p string) *StructLogFormatter {
	c := f.clone()
	c.projectID = p

	return c
}

// WithErrorReporting tags entries of severity error and above with the
// ReportedErrorEvent type so Error Reporting picks them up
func (f *StructLogFormatter) WithErrorReporting(enabled bool) *StructLogFormatter {
	c := f.clone()
	c.reportErrors = enabled

	return c
}

func (f *StructLogFormatter) Format(message string, fields map[string]any) string {
	severity := f.formatSeverity(fields)

	data := &model.LogEntry{
		Severity:       severity,
		Message:        message,
		ReportType:     f.formatReportType(severity, fields),
		Time:           model.NewTimestamp(commons.GetFieldAsTimeOrElse(logx.FieldNameTimestamp, fields, time.Now())),
		InsertId:       commons.GetFieldAsStringOrElse(FieldNameInsertId, fields, ""),
		Labels:         commons.GetFieldAsStringMapOrElse(FieldNameLabels, fields, nil),
		Trace:          commons.GetFieldAsStringOrElse(FieldNameTraceId, fields, ""),
		SpanId:         commons.GetFieldAsStringOrElse(FieldNameTraceSpanId, fields, ""),
		TraceSampled:   f.formatBoolPtr(FieldNameTraceEnabled, fields),
		Payload:        f.formatPayload(fields),
		HttpRequest:    f.formatHttpRequest(fields),
		Operation:      f.formatOperation(fields),
		SourceLocation: f.formatSourceLocation(fields),
	}

	f.formatTracing(fields, data)

	enc, err := data.JSON()
	if err != nil {
		log.Panic(err)
	}

	return enc
}

func (f *StructLogFormatter) formatSeverity(fields map[string]any) model.Severity {
	lvl := commons.GetFieldAsIntOrElse(logx.FieldNameLogLevel, fields, f.logLevelDefault)

	if s, ok := f.logLevelToSeverityMap[lvl]; ok {
		return s
	}

	return model.SeverityDefault
}

func (f *StructLogFormatter) formatReportType(severity model.Severity, fields map[string]any) string {
	if t := commons.GetFieldAsStringOrElse(FieldNameReportType, fields, ""); t != "" {
		return t
	}

	if !f.reportErrors {
		return ""
	}

	switch severity {
	case model.SeverityError, model.SeverityCritical, model.SeverityAlert, model.SeverityEmergency:
		return model.ReportedErrorEventType
	}

	return ""
}

func (f *StructLogFormatter) formatTracing(fields map[string]any, data *model.LogEntry) {
	req := commons.GetFieldAsRequestPtrOrElse(logx.FieldNameHTTPRequest, fields, nil)
	if data.Trace == "" && f.projectID != "" && req != nil {
		traceID := f.extractTraceID(req)
		if traceID == "" {
			return
		}

		sampled := f.extractTraceEnabled(req)

		data.Trace = fmt.Sprintf(`projects/%s/traces/%s`, f.projectID, traceID)
		data.SpanId = f.extractSpanID(req)
		data.TraceSampled = &sampled
	}
}

func (f *StructLogFormatter) formatSourceLocation(fields map[string]any) *model.SourceLocation {
	sourceLocation := &model.SourceLocation{
		File:     commons.GetFieldAsStringOrElse(logx.FieldNameCallerFile, fields, ""),
		Line:     commons.GetFieldAsStringOrElse(logx.FieldNameCallerLine, fields, ""),
		Function: commons.GetFieldAsStringOrElse(logx.FieldNameCallerFunc, fields, ""),
	}

	if sourceLocation.File == "" {
		return nil
	}

	return sourceLocation
}

func (f *StructLogFormatter) formatPayload(fields map[string]any) map[string]any {
	hasEntries := false
	payload := make(map[string]any)
	skip := []string{
		logx.FieldNameCallerFile,
		logx.FieldNameCallerLine,
		logx.FieldNameCallerFunc,
		logx.FieldNameLogLevel,
		logx.FieldNameMessage,
		logx.FieldNameTimestamp,
		logx.FieldNameHTTPRequest,
		logx.FieldNameHTTPResponse,
		FieldNameReportType,
		FieldNameTraceId,
		FieldNameTraceEnabled,
		FieldNameTraceSpanId,
		FieldNameServerIp,
		FieldNameCacheLookup,
		FieldNameCacheHit,
		FieldNameCacheValidatedWithOriginServer,
		FieldNameCacheFillBytes,
		FieldNameLatency,
		FieldNameInsertId,
		FieldNameLabels,
		FieldNameOperationId,
		FieldNameOperationProducer,
		FieldNameOperationFirst,
		FieldNameOperationLast,
	}

	for name, value := range fields {
		if commons.Contains(skip, name) {
			continue
		}

		// unencodable values are dropped so the entry as a whole still encodes
		if raw, err := json.Marshal(value); err == nil {
			payload[name] = json.RawMessage(raw)
			hasEntries = true
		}
	}

	if !hasEntries {
		return nil
	}

	return payload
}

func (f *StructLogFormatter) formatOperation(fields map[string]any) *model.Operation {
	opId := commons.GetFieldAsStringOrElse(FieldNameOperationId, fields, "")
	opProd := commons.GetFieldAsStringOrElse(FieldNameOperationProducer, fields, "")

	if opId == "" && opProd == "" {
		return nil
	}

	return &model.Operation{
		Id:       opId,
		Producer: opProd,
		First:    f.formatBoolPtr(FieldNameOperationFirst, fields),
		Last:     f.formatBoolPtr(FieldNameOperationLast, fields),
	}
}

// formatBoolPtr keeps absent fields distinguishable from false
func (f *StructLogFormatter) formatBoolPtr(name string, fields map[string]any) *bool {
	if _, ok := fields[name]; !ok {
		return nil
	}

	v := commons.GetFieldAsBoolOrElse(name, fields, false)

	return &v
}

func (f *StructLogFormatter) formatHttpRequest(fields map[string]any) *model.HttpRequest {
	req := commons.GetFieldAsRequestPtrOrElse(logx.FieldNameHTTPRequest, fields, nil)
	if req == nil {
		return nil
	}

	result := model.NewHTTPRequest(req, commons.GetFieldAsResponsePtrOrElse(logx.FieldNameHTTPResponse, fields, nil))

	result.ServerIp = commons.GetFieldAsStringOrElse(FieldNameServerIp, fields, "")
	result.Latency = commons.GetFieldAsStringOrElse(FieldNameLatency, fields, "")
	result.CacheLookup = commons.GetFieldAsBoolOrElse(FieldNameCacheLookup, fields, false)
	result.CacheHit = commons.GetFieldAsBoolOrElse(FieldNameCacheHit, fields, false)
	result.CacheValidatedWithOriginServer = commons.GetFieldAsBoolOrElse(FieldNameCacheValidatedWithOriginServer, fields, false)
	result.CacheFillBytes = commons.GetFieldAsStringOrElse(FieldNameCacheFillBytes, fields, "")

	return result
}

func (f *StructLogFormatter) extractTraceID(req *http.Request) string {
	if req == nil {
		return ""
	}

	header := req.Header.Get("X-Cloud-Trace-Context")
	if header == "" {
		return ""
	}

	parts := strings.Split(header, "/")
	if len(parts) != 2 {
		return ""
	}

	traceID := parts[0]

	return traceID
}

func (f *StructLogFormatter) extractSpanID(req *http.Request) string {
	if req == nil {
		return ""
	}

	header := req.Header.Get("X-Cloud-Trace-Context")
	if header == "" {
		return ""
	}

	parts := strings.Split(header, "/")
	if len(parts) != 2 {
		return ""
	}

	spanIDAndTraceTrue := strings.Split(parts[1], ";")
	if len(spanIDAndTraceTrue) != 2 {
		return ""
	}

	spanID := spanIDAndTraceTrue[0]

	return spanID
}

func (f *StructLogFormatter) extractTraceEnabled(req *http.Request) bool {
	if req == nil {
		return false
	}

	header := req.Header.Get("X-Cloud-Trace-Context")
	if header == "" {
		return false
	}

	parts := strings.Split(header, "/")
	if len(parts) != 2 {
		return false
	}

	spanIDAndTraceTrue := strings.Split(parts[1], ";")
	if len(spanIDAndTraceTrue) != 2 {
		return false
	}

	traceTrue := spanIDAndTraceTrue[1] == "o=1"

	return traceTrue
}
