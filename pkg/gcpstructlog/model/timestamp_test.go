package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "nanosecond precision",
			in:   time.Date(2023, time.April, 5, 6, 7, 8, 123456789, time.UTC),
			want: "2023-04-05T06:07:08.123456789Z",
		},
		{
			name: "whole seconds keep the full fraction",
			in:   time.Date(2023, time.April, 5, 6, 7, 8, 0, time.UTC),
			want: "2023-04-05T06:07:08.000000000Z",
		},
		{
			name: "zoned times are rendered in UTC",
			in:   time.Date(2023, time.April, 5, 8, 7, 8, 0, time.FixedZone("CEST", 2*60*60)),
			want: "2023-04-05T06:07:08.000000000Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTime(tt.in))
		})
	}
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	got, err := json.Marshal(NewTimestamp(time.Date(2023, time.April, 5, 6, 7, 8, 500000000, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, `"2023-04-05T06:07:08.500000000Z"`, string(got))
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{
			name: "nine fractional digits",
			in:   `"2023-04-05T06:07:08.123456789Z"`,
			want: time.Date(2023, time.April, 5, 6, 7, 8, 123456789, time.UTC),
		},
		{
			name: "no fraction",
			in:   `"2023-04-05T06:07:08Z"`,
			want: time.Date(2023, time.April, 5, 6, 7, 8, 0, time.UTC),
		},
		{
			name: "single fractional digit",
			in:   `"2023-04-05T06:07:08.5Z"`,
			want: time.Date(2023, time.April, 5, 6, 7, 8, 500000000, time.UTC),
		},
		{
			name: "zone offset",
			in:   `"2023-04-05T08:07:08+02:00"`,
			want: time.Date(2023, time.April, 5, 6, 7, 8, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Timestamp
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got.Time.UTC())
		})
	}
}

func TestTimestamp_UnmarshalJSONInvalid(t *testing.T) {
	for _, in := range []string{`"not-a-time"`, `123`, `"2023-13-45T99:99:99Z"`} {
		var got Timestamp
		assert.Error(t, json.Unmarshal([]byte(in), &got), "input %s", in)
	}
}

func TestTimestamp_RoundTripNormalizesPrecision(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`"2023-04-05T06:07:08.5Z"`), &ts))

	got, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2023-04-05T06:07:08.500000000Z"`, string(got))
}
