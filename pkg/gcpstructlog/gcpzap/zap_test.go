package gcpzap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/logx-go/gcp-structlog/pkg/gcpstructlog/model"
)

var testTime = time.Date(2023, time.April, 5, 6, 7, 8, 123456789, time.UTC)

func writeEntry(t *testing.T, entry zapcore.Entry, fields ...zapcore.Field) string {
	t.Helper()

	var buf bytes.Buffer
	core := NewCore(zapcore.AddSync(&buf), zapcore.DebugLevel)
	require.NoError(t, core.Write(entry, fields))

	return buf.String()
}

func TestCore_Write(t *testing.T) {
	got := writeEntry(t,
		zapcore.Entry{Level: zapcore.InfoLevel, Time: testTime, Message: "hello"},
		InsertID("42"),
		Trace("my-project", "06796866738c859f2f19b7cfb3214824"),
		SpanID("000000000000004a"),
		TraceSampled(true),
	)

	assert.Equal(t,
		`{"severity":"info","time":"2023-04-05T06:07:08.123456789Z","message":"hello","logging.googleapis.com/insertId":"42","logging.googleapis.com/trace":"projects/my-project/traces/06796866738c859f2f19b7cfb3214824","logging.googleapis.com/spanId":"000000000000004a","logging.googleapis.com/trace_sampled":true}`+"\n",
		got)
}

func TestSeverityLevelEncoder(t *testing.T) {
	tests := []struct {
		level zapcore.Level
		want  model.Severity
	}{
		{zapcore.DebugLevel, model.SeverityDebug},
		{zapcore.InfoLevel, model.SeverityInfo},
		{zapcore.WarnLevel, model.SeverityWarning},
		{zapcore.ErrorLevel, model.SeverityError},
		{zapcore.DPanicLevel, model.SeverityCritical},
		{zapcore.PanicLevel, model.SeverityAlert},
		{zapcore.FatalLevel, model.SeverityEmergency},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			got := writeEntry(t, zapcore.Entry{Level: tt.level, Time: testTime, Message: "x"})

			assert.Equal(t, fmt.Sprintf(
				`{"severity":"%s","time":"2023-04-05T06:07:08.123456789Z","message":"x"}`+"\n",
				tt.want,
			), got)
		})
	}
}

func TestFields(t *testing.T) {
	entry := zapcore.Entry{Level: zapcore.InfoLevel, Time: testTime, Message: "x"}
	prefix := `{"severity":"info","time":"2023-04-05T06:07:08.123456789Z","message":"x",`

	t.Run("operation", func(t *testing.T) {
		got := writeEntry(t, entry, Operation("start", "billing.Backend", true, false))
		assert.Equal(t, prefix+`"logging.googleapis.com/operation":{"id":"start","producer":"billing.Backend","first":true}}`+"\n", got)
	})

	t.Run("http request", func(t *testing.T) {
		got := writeEntry(t, entry, HTTP(&model.HttpRequest{RequestMethod: "GET", Status: 200}))
		assert.Equal(t, prefix+`"httpRequest":{"requestMethod":"GET","status":200}}`+"\n", got)
	})

	t.Run("labels", func(t *testing.T) {
		got := writeEntry(t, entry, Labels(map[string]string{"app": "billing"}))
		assert.Equal(t, prefix+`"logging.googleapis.com/labels":{"app":"billing"}}`+"\n", got)
	})

	t.Run("error report marker", func(t *testing.T) {
		got := writeEntry(t, entry, ErrorReport())
		assert.Equal(t, prefix+`"@type":"`+model.ReportedErrorEventType+`"}`+"\n", got)
	})

	t.Run("latency as duration string", func(t *testing.T) {
		got := writeEntry(t, entry, zap.Duration("latency", 1500*time.Millisecond))
		assert.Equal(t, prefix+`"latency":"1.5s"}`+"\n", got)
	})

	t.Run("nil values are skipped", func(t *testing.T) {
		got := writeEntry(t, entry, HTTP(nil), Labels(nil), SourceLocation(0, "", 0, false))
		assert.Equal(t, `{"severity":"info","time":"2023-04-05T06:07:08.123456789Z","message":"x"}`+"\n", got)
	})

	t.Run("source location", func(t *testing.T) {
		got := writeEntry(t, entry, SourceLocation(runtime.Caller(0)))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal([]byte(got), &decoded))

		loc, ok := decoded[model.SourceLocationKey].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, loc["file"], "zap_test.go")
		assert.NotEmpty(t, loc["line"])
		assert.Contains(t, loc["function"], "TestFields")
	})
}
