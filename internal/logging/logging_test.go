package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigLevelFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	cfg := DefaultConfig()
	if cfg.Level != DebugLevel {
		t.Errorf("expected Level to follow %s, got %v", EnvLevel, cfg.Level)
	}

	t.Setenv(EnvLevel, "")
	cfg = DefaultConfig()
	if cfg.Level != WarnLevel {
		t.Errorf("expected WarnLevel default, got %v", cfg.Level)
	}
	if cfg.Output != os.Stderr {
		t.Errorf("expected Output to be os.Stderr")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{"  DEBUG  ", DebugLevel},
		{"INFO", InfoLevel},
		{"info", InfoLevel},
		{"WARN", WarnLevel},
		{"WARNING", WarnLevel},
		{"warning", WarnLevel},
		{"ERROR", ErrorLevel},
		{"FATAL", FatalLevel},
		{"unknown", WarnLevel},
		{"", WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestInitWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: InfoLevel, Output: &buf})

	Info().Str("phrase", "check status").Msg("resolved")

	output := buf.String()
	if !strings.Contains(output, `"phrase":"check status"`) {
		t.Errorf("expected structured field in output, got %s", output)
	}
	if !strings.Contains(output, "resolved") {
		t.Errorf("expected message in output, got %s", output)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: WarnLevel, Output: &buf})

	Debug().Msg("debug message")
	Info().Msg("info message")
	Warn().Msg("warn message")
	Error().Msg("error message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("debug message should not appear when level is Warn")
	}
	if strings.Contains(output, "info message") {
		t.Error("info message should not appear when level is Warn")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should appear when level is Warn")
	}
	if !strings.Contains(output, "error message") {
		t.Error("error message should appear when level is Warn")
	}
}

func TestInitWithPrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: InfoLevel, Output: &buf, Pretty: true})

	Info().Msg("pretty test")

	if !strings.Contains(buf.String(), "pretty test") {
		t.Errorf("expected output to contain message, got %s", buf.String())
	}
}

func TestInitFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")

	f, err := InitFile(dir, Config{Level: InfoLevel})
	if err != nil {
		t.Fatalf("InitFile: %v", err)
	}
	defer f.Close()

	Info().Msg("file log test")

	content, err := os.ReadFile(filepath.Join(dir, "vibe.log"))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "file log test") {
		t.Errorf("log file should contain message, got: %s", content)
	}
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: InfoLevel, Output: &buf})

	child := With().Str("component", "matcher").Logger()
	child.Info().Msg("with context")

	output := buf.String()
	if !strings.Contains(output, `"component":"matcher"`) {
		t.Errorf("expected component field, got %s", output)
	}
}

func TestInitWithNilOutputDoesNotPanic(t *testing.T) {
	Init(Config{Level: InfoLevel, Output: nil})
}
