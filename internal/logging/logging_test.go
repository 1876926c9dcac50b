package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "json", "warn")
	l.Info("dropped")
	l.Warn("kept", "district", "Madurai")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "Madurai", rec["district"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "text", "info").Info("hello", "k", 1)
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "k=1")
}
