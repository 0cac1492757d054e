package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{
		Level:     DEBUG,
		Format:    JSONFormat,
		Output:    &buf,
		Component: "test",
	})

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 log lines, got %d", len(lines))
	}

	for i, line := range lines {
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Errorf("Line %d is not valid JSON: %v", i+1, err)
		}
		if entry.Component != "test" {
			t.Errorf("Line %d: expected component 'test', got %q", i+1, entry.Component)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{Level: WARN, Format: JSONFormat, Output: &buf})

	log.Debug("filtered")
	log.Info("filtered")
	log.Warn("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("Expected 1 log line after filtering, got %d", len(lines))
	}
	if !strings.Contains(buf.String(), "kept") {
		t.Error("WARN message should have been logged")
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer

	log := New(Config{Level: INFO, Format: TextFormat, Output: &buf, Component: "raster"})
	log.Info("screenshot captured", map[string]interface{}{"bytes": 1024})

	out := buf.String()
	if !strings.Contains(out, "[raster]") {
		t.Errorf("Text output missing component: %s", out)
	}
	if !strings.Contains(out, "screenshot captured") {
		t.Errorf("Text output missing message: %s", out)
	}
	if !strings.Contains(out, "bytes=1024") {
		t.Errorf("Text output missing fields: %s", out)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer

	parent := New(Config{Level: DEBUG, Format: JSONFormat, Output: &buf})
	child := parent.WithComponent("weather")
	child.Info("fetch complete")

	var entry LogEntry
	if err := json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if entry.Component != "weather" {
		t.Errorf("Expected component 'weather', got %q", entry.Component)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]LogLevel{
		"debug":   DEBUG,
		"INFO":    INFO,
		"Warning": WARN,
		"error":   ERROR,
		"fatal":   FATAL,
		"bogus":   -1,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %d, want %d", in, got, want)
		}
	}
}
