package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_Tokens(t *testing.T) {
	tokens := map[Severity]string{
		SeverityDefault:   "default",
		SeverityDebug:     "debug",
		SeverityInfo:      "info",
		SeverityNotice:    "notice",
		SeverityWarning:   "warning",
		SeverityError:     "error",
		SeverityCritical:  "critical",
		SeverityAlert:     "alert",
		SeverityEmergency: "emergency",
	}

	seen := map[string]bool{}
	for severity, want := range tokens {
		assert.Equal(t, want, string(severity))
		assert.False(t, seen[string(severity)], "token %q assigned twice", severity)
		seen[string(severity)] = true
	}
	assert.Len(t, seen, 9)
}

func TestSeverity_MarshalJSON(t *testing.T) {
	got, err := json.Marshal(SeverityWarning)
	require.NoError(t, err)
	assert.Equal(t, `"warning"`, string(got))
}
