package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dbsmedya/goiconindex/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string // String representation of zapcore.Level
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"", "info"}, // empty defaults to info
		{"warn", "warn"},
		{"error", "error"},
		{"unknown", "info"}, // unknown defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level := parseLevel(tt.input)
			if level.String() != tt.expected {
				t.Errorf("parseLevel(%q) = %v, expected %v", tt.input, level.String(), tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.LoggingConfig
	}{
		{
			name: "json format info level",
			cfg:  &config.LoggingConfig{Level: "info", Format: "json", Output: "stderr"},
		},
		{
			name: "text format debug level",
			cfg:  &config.LoggingConfig{Level: "debug", Format: "text", Output: "stdout"},
		},
		{
			name: "rotated file output",
			cfg: &config.LoggingConfig{
				Level:      "warn",
				Format:     "json",
				Output:     filepath.Join(t.TempDir(), "goiconindex.log"),
				MaxSizeMB:  1,
				MaxBackups: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if logger == nil {
				t.Fatal("New() returned nil logger without error")
			}
			_ = logger.Sync()
		})
	}
}

func TestNewDefault(t *testing.T) {
	logger := NewDefault()
	if logger == nil {
		t.Fatal("NewDefault() returned nil")
	}

	logger.Info("test message")
	_ = logger.Sync()
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.WithSource("icons").Infow("discarded", "count", 3)
	if err := logger.Sync(); err != nil {
		t.Errorf("nop Sync() returned %v", err)
	}
}

func TestContextLoggers(t *testing.T) {
	logger := NewNop()

	sourceLogger := logger.WithSource("assets/icons")
	if sourceLogger == nil || sourceLogger == logger {
		t.Error("WithSource() should return a new logger instance")
	}

	sessionLogger := sourceLogger.WithSession("main")
	if sessionLogger == nil || sessionLogger == sourceLogger {
		t.Error("WithSession() should return a new logger instance")
	}

	fieldLogger := sessionLogger.WithFields(map[string]interface{}{"records": 12})
	if fieldLogger == nil {
		t.Fatal("WithFields() returned nil")
	}
	fieldLogger.Info("test chained context")
}

func TestBuildEncoder(t *testing.T) {
	for _, format := range []string{"json", "text", "unknown"} {
		if buildEncoder(format) == nil {
			t.Errorf("buildEncoder(%q) returned nil", format)
		}
	}
}

func TestLoggingOutputToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "index.log")

	logger, err := New(&config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: logPath,
	})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	logger.Info("test info message")
	logger.Debug("filtered debug message")
	logger.WithSource("icons").Warn("message with source context")
	_ = logger.Sync()

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}

	contentStr := string(content)
	if !strings.Contains(contentStr, "test info message") {
		t.Error("Log file should contain 'test info message'")
	}
	if strings.Contains(contentStr, "filtered debug message") {
		t.Error("Debug message should be filtered at info level")
	}
	if !strings.Contains(contentStr, `"source":"icons"`) {
		t.Error("Log file should contain source context")
	}
}
