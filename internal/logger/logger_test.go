package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"WARNING": slog.LevelWarn,
		"ERROR":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "INFO", Format: "json"}, &buf)

	l.Debug("hidden")
	l.Info("step done", "rows_out", 3)

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "step done", rec["msg"])
	assert.Equal(t, float64(3), rec["rows_out"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Level: "DEBUG"}, &buf).Debug("loaded", "rows", 2)
	assert.Contains(t, buf.String(), "msg=loaded")
	assert.Contains(t, buf.String(), "rows=2")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Format: "text"}, &buf)

	FromContext(context.Background(), l).Info("no id")
	assert.NotContains(t, buf.String(), "run_id")

	buf.Reset()
	ctx := WithRunID(context.Background(), "abc")
	FromContext(ctx, l).Info("with id")
	assert.Contains(t, buf.String(), "run_id=abc")
}

func TestSetup(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	l := Setup(Config{Level: "ERROR"}, &buf)
	assert.Same(t, l, slog.Default())

	slog.Warn("dropped")
	slog.Error("kept")
	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}
