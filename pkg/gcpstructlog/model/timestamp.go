package model

import (
	"encoding/json"
	"time"
)

// TimeLayout is the format of the entry's `time` field: UTC with nine
// fractional digits and a literal Z. Cloud Logging accepts any fractional
// precision; a fixed width keeps the field present even on whole seconds.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// FormatTime renders t in TimeLayout. Converting to UTC first keeps the
// literal Z truthful for any input location.
func FormatTime(t time.Time) string { return t.UTC().Format(TimeLayout) }

// Timestamp wraps time.Time to (un)marshal as the entry's `time` field.
type Timestamp struct{ time.Time }

// NewTimestamp returns a Timestamp for t, ready to set on a LogEntry.
func NewTimestamp(t time.Time) *Timestamp { return &Timestamp{Time: t} }

// MarshalJSON as a quoted TimeLayout string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, len(TimeLayout)+2)
	b = append(b, '"')
	b = t.UTC().AppendFormat(b, TimeLayout)
	b = append(b, '"')
	return b, nil
}

// UnmarshalJSON from an RFC3339 string with any number of fractional digits.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	t.Time = parsed
	return err
}
