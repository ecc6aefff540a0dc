package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_ProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", Out: &buf})

	zl := l.Zerolog()
	zl.Debug().Msg("hidden")
	l.Info().Str("bill", "FB-1").Msg("bill rendered")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "FB-1", entry["bill"])
	assert.Equal(t, "bill rendered", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNew_DevelopmentIsReadable(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "development", Level: "debug", Out: &buf})

	zl := l.Zerolog()
	zl.Debug().Msg("table placed")

	assert.Contains(t, buf.String(), "table placed")
	assert.NotContains(t, buf.String(), `"message"`)
}
