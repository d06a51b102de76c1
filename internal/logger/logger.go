// Package logger wraps zerolog with the key/value call style used across
// switcheroo.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	zlog zerolog.Logger
	file *os.File
}

type Option func(*Logger) error

// WithConsole writes human-readable lines to stderr.
func WithConsole() Option {
	return func(l *Logger) error {
		l.zlog = l.zlog.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
		return nil
	}
}

// WithWriter sends JSON lines to w.
func WithWriter(w io.Writer) Option {
	return func(l *Logger) error {
		l.zlog = l.zlog.Output(w)
		return nil
	}
}

// WithLevel sets the minimum level.
func WithLevel(level zerolog.Level) Option {
	return func(l *Logger) error {
		l.zlog = l.zlog.Level(level)
		return nil
	}
}

// WithFile appends plain-text lines to the file at path.
func WithFile(path string) Option {
	return func(l *Logger) error {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = f
		l.zlog = l.zlog.Output(zerolog.ConsoleWriter{
			Out:        f,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
		return nil
	}
}

// New creates a logger writing JSON to stderr at info level, then applies opts.
func New(opts ...Option) (*Logger, error) {
	l := &Logger{
		zlog: zerolog.New(os.Stderr).Level(zerolog.InfoLevel).With().Timestamp().Logger(),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, fmt.Errorf("failed to apply logger option: %w", err)
		}
	}
	return l, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// ParseLevel maps a config string to a zerolog level.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func addSourceContext(e *zerolog.Event) *zerolog.Event {
	_, file, line, ok := runtime.Caller(2)
	if ok {
		return e.Str("file", filepath.Base(file)).Int("line", line)
	}
	return e
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	event := addSourceContext(l.zlog.Debug())
	logFields(event, fields...)
	event.Msg(msg)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	event := addSourceContext(l.zlog.Info())
	logFields(event, fields...)
	event.Msg(msg)
}

func (l *Logger) Warn(msg string, err error, fields ...interface{}) {
	event := addSourceContext(l.zlog.Warn())
	if err != nil {
		event = event.Err(err)
	}
	logFields(event, fields...)
	event.Msg(msg)
}

func (l *Logger) Error(msg string, err error, fields ...interface{}) {
	event := addSourceContext(l.zlog.Error())
	if err != nil {
		event = event.Err(err)
	}
	logFields(event, fields...)
	event.Msg(msg)
}

// logFields adds alternating key/value pairs to the event.
func logFields(event *zerolog.Event, fields ...interface{}) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		event.Interface(key, fields[i+1])
	}
}
