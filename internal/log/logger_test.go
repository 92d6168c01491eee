package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestLogger_JSONIncludesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelInfo, Format: "json", Output: &buf, Component: ComponentForm})

	logger.Info("hello", FieldEmployer, "Acme")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, ComponentForm, rec[FieldComponent])
	assert.Equal(t, "Acme", rec[FieldEmployer])
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Output: &buf})

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	base := New(Config{Output: &buf})
	logger := base.WithComponent(ComponentExport)

	assert.Equal(t, ComponentExport, logger.Component())
	assert.Equal(t, ComponentApp, base.Component())

	logger.Info("x")
	assert.Equal(t, 1, strings.Count(buf.String(), "component="))
	assert.Contains(t, buf.String(), "component=export")
}

func TestFromContext(t *testing.T) {
	fallback := FromContext(context.Background(), nil)
	assert.Equal(t, "unknown", fallback.Component())

	base := Discard().WithComponent(ComponentCLI)
	assert.Same(t, base, FromContext(context.Background(), base))

	logger := Discard().WithComponent(ComponentHTTP)
	ctx := NewContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx, base))
}

func TestStructuredLogger_LogExportCreated(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(New(Config{Output: &buf, Format: "json"}))

	sl.LogExportCreated(context.Background(), "Acme", "$60,000", "2020-01-01", "", "employment_data.json", 120)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "Life event exported", rec["msg"])
	assert.Equal(t, OpExport, rec[FieldOperation])
	assert.Equal(t, "employment_data.json", rec[FieldFilename])
	assert.EqualValues(t, 120, rec[FieldBytes])
}
