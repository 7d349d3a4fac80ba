package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogEntry is a captured WARN/ERROR record shown by the editor status bar.
type LogEntry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// ringBuffer keeps the most recent entries and running warn/error counts.
type ringBuffer struct {
	mu      sync.RWMutex
	entries []LogEntry
	size    int
	head    int
	count   int

	warnCount  int
	errorCount int
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		entries: make([]LogEntry, size),
		size:    size,
	}
}

func (rb *ringBuffer) add(entry LogEntry) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.entries[rb.head] = entry
	rb.head = (rb.head + 1) % rb.size
	if rb.count < rb.size {
		rb.count++
	}

	if entry.Level == slog.LevelWarn {
		rb.warnCount++
	} else if entry.Level >= slog.LevelError {
		rb.errorCount++
	}
}

func (rb *ringBuffer) getAll() []LogEntry {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	result := make([]LogEntry, rb.count)
	for i := 0; i < rb.count; i++ {
		idx := (rb.head - rb.count + i + rb.size) % rb.size
		result[i] = rb.entries[idx]
	}
	return result
}

func (rb *ringBuffer) getCounts() (warn, err int) {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.warnCount, rb.errorCount
}

func (rb *ringBuffer) clearCounts() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.warnCount = 0
	rb.errorCount = 0
}

// captureHandler wraps another handler and copies WARN/ERROR records into
// the ring buffer.
type captureHandler struct {
	inner  slog.Handler
	buffer *ringBuffer
}

func (h *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *captureHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.buffer.add(LogEntry{
			Time:    r.Time,
			Level:   r.Level,
			Message: r.Message,
		})
	}
	return h.inner.Handle(ctx, r)
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{inner: h.inner.WithAttrs(attrs), buffer: h.buffer}
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{inner: h.inner.WithGroup(name), buffer: h.buffer}
}

var (
	// Log is the global structured logger
	Log *slog.Logger
	// LogPath is the path to the current log file, empty when logging to a writer
	LogPath string

	logWriter    *lumberjack.Logger
	captured     *ringBuffer
	debugEnabled bool
)

// LogLevel represents the logging level
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel maps a config value ("debug", "info", "warn", "error") to a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// DefaultPath returns ~/.config/quill/quill.log, creating the directory.
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.TempDir()
	}
	logDir := filepath.Join(homeDir, ".config", "quill")
	_ = os.MkdirAll(logDir, 0755)
	return filepath.Join(logDir, "quill.log")
}

// InitLogger sends JSON records at or above level to a rotating file at
// logPath, or at DefaultPath when logPath is empty. The terminal belongs to
// the editor, so nothing is written to stderr.
func InitLogger(level LogLevel, logPath string) {
	if logPath == "" {
		logPath = DefaultPath()
	}
	Close()
	logWriter = &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     7, // days
		Compress:   true,
	}
	LogPath = logPath
	install(level, logWriter)
}

// InitWriter sends JSON records to w instead of a file.
func InitWriter(level LogLevel, w io.Writer) {
	Close()
	LogPath = ""
	install(level, w)
}

func install(level LogLevel, w io.Writer) {
	debugEnabled = level == LevelDebug
	captured = newRingBuffer(100)

	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level.slogLevel()})
	Log = slog.New(&captureHandler{inner: jsonHandler, buffer: captured})
	slog.SetDefault(Log)
}

// Close closes the log file
func Close() {
	if logWriter != nil {
		logWriter.Close()
		logWriter = nil
	}
}

// getLogger returns the global logger, or the default slog logger if not initialized.
func getLogger() *slog.Logger {
	if Log != nil {
		return Log
	}
	return slog.Default()
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	getLogger().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	getLogger().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	getLogger().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	getLogger().Error(msg, args...)
}

// With creates a new logger with additional attributes
func With(args ...any) *slog.Logger {
	return getLogger().With(args...)
}

// GetCounts returns the current warning and error counts.
func GetCounts() (warn, err int) {
	if captured == nil {
		return 0, 0
	}
	return captured.getCounts()
}

// ClearCounts resets the warning and error counters.
func ClearCounts() {
	if captured != nil {
		captured.clearCounts()
	}
}

// GetEntries returns all captured log entries.
func GetEntries() []LogEntry {
	if captured == nil {
		return nil
	}
	return captured.getAll()
}

// IsDebugEnabled returns true if debug mode is active.
func IsDebugEnabled() bool {
	return debugEnabled
}

// Summary renders the warn/error counts for the status bar, e.g. "2W 1E",
// or "" when nothing was captured.
func Summary() string {
	warn, errs := GetCounts()
	var parts []string
	if warn > 0 {
		parts = append(parts, fmt.Sprintf("%dW", warn))
	}
	if errs > 0 {
		parts = append(parts, fmt.Sprintf("%dE", errs))
	}
	return strings.Join(parts, " ")
}

// Format formats a log entry for display.
func (e LogEntry) Format() string {
	levelStr := "INFO"
	switch e.Level {
	case slog.LevelDebug:
		levelStr = "DEBUG"
	case slog.LevelWarn:
		levelStr = "WARN"
	case slog.LevelError:
		levelStr = "ERROR"
	}
	return fmt.Sprintf("%s %-5s %s", e.Time.Format("15:04:05"), levelStr, e.Message)
}
