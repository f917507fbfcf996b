package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "DEBUG", "text", false)

	Info("sweep complete", "deleted", 4, "marked", 2)

	out := buf.String()
	if !strings.Contains(out, "sweep complete") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "deleted=4") {
		t.Errorf("expected deleted=4 in output, got %q", out)
	}
	if !strings.Contains(out, "marked=2") {
		t.Errorf("expected marked=2 in output, got %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "WARN", "text", false)

	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("levels below WARN should be suppressed, got %q", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("WARN and ERROR should be emitted, got %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "json", false)

	Info("catalog opened", "backend", "sqlite")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("output is not valid JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "catalog opened" {
		t.Errorf("expected msg field, got %v", record["msg"])
	}
	if record["backend"] != "sqlite" {
		t.Errorf("expected backend field, got %v", record["backend"])
	}
}

func TestSetLevelIgnoresInvalid(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	SetLevel("NOT_A_LEVEL")

	Info("still visible")
	if !strings.Contains(buf.String(), "still visible") {
		t.Errorf("invalid level should not change configuration")
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "INFO", "text", false)

	l := With("component", "sweeper")
	l.Info("started")

	out := buf.String()
	if !strings.Contains(out, "component=sweeper") {
		t.Errorf("expected bound attribute in output, got %q", out)
	}
}
