package logging

import (
	"bytes"
	"context"
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
		{"DEBUG", zerolog.DebugLevel},
		{" warn ", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"info", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(Config{Level: zerolog.InfoLevel, Format: "json"}, &buf)

	logger.Debug().Msg("hidden")
	logger.Info().Str("device", "vuzix").Msg("selected")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "selected", line["message"])
	assert.Equal(t, "vuzix", line["device"])
	assert.Contains(t, line, "time")
}

func TestWithComponent_AddsField(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(Config{Level: zerolog.DebugLevel, Format: "json"}, &buf)

	ctx := WithComponent(WithContext(context.Background(), logger), "probe")
	FromContext(ctx).Debug().Msg("started")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "probe", line["component"])
}

func TestFromContext_WithoutLoggerIsDisabled(t *testing.T) {
	logger := FromContext(context.Background())
	require.NotNil(t, logger)
	assert.Equal(t, zerolog.Disabled, logger.GetLevel())
}
