package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = '%s', expected '%s'", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
		ok       bool
	}{
		{"debug", LevelDebug, true},
		{"DEBUG", LevelDebug, true},
		{"info", LevelInfo, true},
		{"warning", LevelWarn, true},
		{" Error ", LevelError, true},
		{"", LevelInfo, true},
		{"verbose", LevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseLevel('%s') = (%v, %v), expected (%v, %v)", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Output: &buf, Prefix: "test"})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn %d", 1)
	logger.Error("error %s", "two")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below level were written: %q", out)
	}
	if !strings.Contains(out, "[WARN] test: warn 1") {
		t.Errorf("expected warn line, got %q", out)
	}
	if !strings.Contains(out, "[ERROR] test: error two") {
		t.Errorf("expected error line, got %q", out)
	}
}

func TestLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf})

	logger.WithFields(map[string]any{"b": 2, "a": 1}).WithComponent("page").Info("created")

	if !strings.Contains(buf.String(), "created {a=1, b=2, component=page}") {
		t.Errorf("unexpected line %q", buf.String())
	}
}

func TestLogger_DerivedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Config{Level: LevelInfo, Output: &buf})
	child := parent.WithComponent("window")

	parent.SetLevel(LevelError)
	child.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected derived logger to follow parent level, got %q", buf.String())
	}
	if child.Level() != LevelError {
		t.Errorf("expected LevelError, got %v", child.Level())
	}
}

func TestLogger_DisableEnable(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Output: &buf})

	logger.Disable()
	logger.Info("off")
	logger.Enable()
	logger.Info("on")

	if strings.Contains(buf.String(), "off") || !strings.Contains(buf.String(), "on") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestNull(t *testing.T) {
	logger := Null()
	logger.Error("nothing")
	logger.WithField("k", "v").Info("still nothing")
}

func TestDefault(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	custom := Null()
	SetDefault(custom)
	if Default() != custom {
		t.Error("expected SetDefault to replace the logger")
	}
}
