package logger

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func testOptions(t *testing.T) Options {
	opts := DefaultOptions()
	opts.Dir = filepath.Join(t.TempDir(), "logs")
	opts.Debug = true
	return opts
}

func TestSetup_DisabledByDefault(t *testing.T) {
	l, closeFn, err := Setup(DefaultOptions())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer closeFn()

	if l.Out != io.Discard {
		t.Errorf("Expected logger output to be io.Discard, got %v", l.Out)
	}
	if log.Writer() != io.Discard {
		t.Errorf("Expected std log output to be io.Discard, got %v", log.Writer())
	}
}

func TestSetup_EnabledWithDebug(t *testing.T) {
	opts := testOptions(t)
	l, closeFn, err := Setup(opts)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer closeFn()

	l.WithField("coord", "(1,2,0)").Info("test log message")

	logPath := filepath.Join(opts.Dir, opts.File)
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "test log message") || !strings.Contains(string(data), "coord=") {
		t.Errorf("Expected log file to contain the message, got %q", data)
	}
}

func TestSetup_LevelAndFormat(t *testing.T) {
	opts := testOptions(t)
	opts.Level = "warn"
	opts.Format = "json"
	l, closeFn, err := Setup(opts)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer closeFn()

	if l.GetLevel() != logrus.WarnLevel {
		t.Errorf("Expected warn level, got %v", l.GetLevel())
	}
	if _, ok := l.Formatter.(*logrus.JSONFormatter); !ok {
		t.Errorf("Expected JSON formatter, got %T", l.Formatter)
	}

	opts.Level = "loud"
	l2, closeFn2, err := Setup(opts)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer closeFn2()
	if l2.GetLevel() != logrus.InfoLevel {
		t.Errorf("Expected fallback to info level, got %v", l2.GetLevel())
	}
}

func TestSetup_Rotation(t *testing.T) {
	opts := testOptions(t)
	opts.MaxSize = 1024
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}

	logPath := filepath.Join(opts.Dir, opts.File)
	if err := os.WriteFile(logPath, make([]byte, opts.MaxSize+1), 0o644); err != nil {
		t.Fatalf("Failed to write large log file: %v", err)
	}

	_, closeFn, err := Setup(opts)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer closeFn()

	entries, err := os.ReadDir(opts.Dir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != opts.File && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > opts.MaxSize {
		t.Errorf("Expected new log file below %d bytes, got %d", opts.MaxSize, info.Size())
	}
}

func TestSetup_NoStdoutStderr(t *testing.T) {
	l, closeFn, err := Setup(testOptions(t))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer closeFn()

	for _, w := range []io.Writer{l.Out, log.Writer()} {
		if w == os.Stdout || w == os.Stderr {
			t.Errorf("Log output must not be stdout or stderr")
		}
	}
}
