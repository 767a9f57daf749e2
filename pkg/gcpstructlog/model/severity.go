package model

// Severity of the event described in a log entry, expressed as one of the
// standard levels listed in
// https://cloud.google.com/logging/docs/reference/v2/rest/v2/LogEntry#LogSeverity
//
// The Logging agent matches severity strings case-insensitively; this library
// always emits the lowercase tokens below. The zero value marks the severity
// as unset and keeps the field out of the serialized entry.
type Severity string

const (
	SeverityDefault   Severity = "default"   // The log entry has no assigned severity level.
	SeverityDebug     Severity = "debug"     // Debug or trace information.
	SeverityInfo      Severity = "info"      // Routine information, such as ongoing status or performance.
	SeverityNotice    Severity = "notice"    // Normal but significant events, such as start up, shut down, or a configuration change.
	SeverityWarning   Severity = "warning"   // Warning events might cause problems.
	SeverityError     Severity = "error"     // Error events are likely to cause problems.
	SeverityCritical  Severity = "critical"  // Critical events cause more severe problems or outages.
	SeverityAlert     Severity = "alert"     // A person must take an action immediately.
	SeverityEmergency Severity = "emergency" // One or more systems are unusable.
)
