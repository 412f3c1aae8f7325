package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, Options{Level: "warn"})
	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestNewWithWriter_DebugOverridesLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, Options{Level: "error", Debug: true})
	l.Debug("trace me")
	assert.Contains(t, buf.String(), "trace me")
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := WithComponent(NewWithWriter(&buf, Options{Format: "json"}), "auth")
	l.Info("hello", "n", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "auth", rec["component"])
}

func TestDiscard(t *testing.T) {
	l := Discard()
	require.NotNil(t, l)
	l.Error("nothing happens")
}

func TestMasker(t *testing.T) {
	m := NewMasker("username")

	assert.True(t, m.IsSensitive("Password"))
	assert.True(t, m.IsSensitive("username"))
	assert.False(t, m.IsSensitive("_eventId"))

	assert.Equal(t, masked, m.MaskValue("password", "hunter2"))
	assert.Equal(t, "submit", m.MaskValue("_eventId", "submit"))
	assert.Equal(t, "Bearer "+masked, m.MaskValue("Authorization-ish", "Bearer abc.def"))
	assert.Equal(t, masked, m.Mask("cookie-value"))
	assert.Equal(t, "", m.Mask(""))

	m.SetEnabled(false)
	assert.False(t, m.Enabled())
	assert.Equal(t, "hunter2", m.MaskValue("password", "hunter2"))
}

func TestNilMaskerIsPassThrough(t *testing.T) {
	var m *Masker
	assert.False(t, m.Enabled())
	assert.Equal(t, "v", m.MaskValue("password", "v"))
	assert.Equal(t, "v", m.Mask("v"))
}

func TestConsole_PlaintextByDefault(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, nil)
	c.Property("password", "secret")
	c.Cookie("TGC", "abc")
	c.Header("Content-Type", []string{"text/html"})
	c.Println("Searched successfully")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "property name: password property value: secret", lines[0])
	assert.Equal(t, "Cookie name: TGC, cookie value: abc", lines[1])
	assert.Equal(t, `Authentication header Content-Type, value: ["text/html"]`, lines[2])
	assert.Equal(t, "Searched successfully", lines[3])
}

func TestConsole_Redacted(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, NewMasker())
	c.Property("password", "secret")
	c.Property("username", "alice")
	c.Cookie("TGC", "abc")
	c.Header("Set-Cookie", []string{"TGC=abc; Path=/"})

	out := buf.String()
	assert.NotContains(t, out, "secret")
	assert.NotContains(t, out, "abc")
	assert.Contains(t, out, "property value: alice")
}

func TestNilConsole(t *testing.T) {
	var c *Console
	c.Println("ignored")
	c.Property("a", "b")
}
