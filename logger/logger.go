package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/regionview/parameter"
)

// Options controls where and how the process logs
type Options struct {
	Debug   bool   // false discards all output
	Level   string // logrus level name, defaults to info
	Format  string // "text" or "json"
	Dir     string
	File    string
	MaxSize int64 // rotate the previous log above this size
}

// DefaultOptions returns disabled logging into the default log file
func DefaultOptions() Options {
	return Options{
		Level:   "info",
		Format:  "text",
		Dir:     parameter.LogDir,
		File:    parameter.LogFileName,
		MaxSize: parameter.MaxLogSize,
	}
}

// Setup builds the process logger
// The terminal owns stdout and stderr, so output goes only to the log file, and only in debug mode
// The standard library logger is redirected the same way
// The returned close func is never nil
func Setup(opts Options) (*logrus.Logger, func() error, error) {
	l := logrus.New()
	noop := func() error { return nil }

	if !opts.Debug {
		l.SetOutput(io.Discard)
		log.SetOutput(io.Discard)
		return l, noop, nil
	}

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.EqualFold(opts.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}

	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		l.SetOutput(io.Discard)
		return l, noop, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(opts.Dir, opts.File)
	if err := rotate(path, opts.MaxSize); err != nil {
		l.SetOutput(io.Discard)
		return l, noop, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		l.SetOutput(io.Discard)
		return l, noop, fmt.Errorf("open log file: %w", err)
	}
	l.SetOutput(f)
	log.SetOutput(f)
	return l, f.Close, nil
}

// rotate renames path to a timestamped sibling when it exceeds maxSize
func rotate(path string, maxSize int64) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat log file: %w", err)
	}
	if maxSize <= 0 || info.Size() <= maxSize {
		return nil
	}

	ext := filepath.Ext(path)
	rotated := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(path, ext), time.Now().Format("20060102-150405"), ext)
	if err := os.Rename(path, rotated); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}
	return nil
}
