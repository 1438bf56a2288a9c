// Package logger provides the console logger used by dnacount.
//
// Messages are written as "[HH:MM:SS] [LEVEL] message" lines, filtered by a
// minimum level. Output is colored when it goes to a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/taigrr/colorhash"

	"github.com/dendrascience/dnacount/count"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// pathPalette holds the colors a file path can be rendered in.
var pathPalette = []color.Attribute{
	color.FgCyan,
	color.FgGreen,
	color.FgMagenta,
	color.FgYellow,
	color.FgBlue,
	color.FgHiCyan,
	color.FgHiGreen,
	color.FgHiMagenta,
}

// ConsoleLogger writes leveled messages to a writer. It is safe for
// concurrent use and satisfies count.Logger.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

var _ count.Logger = (*ConsoleLogger)(nil)

// NewConsoleLogger creates a ConsoleLogger that writes to w.
// If w is nil, messages are discarded. Unknown levels fall back to "info".
func NewConsoleLogger(w io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		logLevel:    NormalizeLevel(logLevel),
		colorOutput: isTerminal(w),
	}
}

// isTerminal reports whether w is a TTY that should get colors.
// NO_COLOR is honoured through color.NoColor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// NormalizeLevel lowercases level and returns "info" for anything unknown.
func NormalizeLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	}
	return "info"
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	normalized := strings.ToLower(strings.TrimSpace(level))
	return NormalizeLevel(normalized) == normalized
}

func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogTrace logs a trace-level message.
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level, message string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	label := level
	if cl.colorOutput {
		label = levelColor(level).Sprint(level)
	}
	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", timestamp(), label, message)
}

func levelColor(level string) *color.Color {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack)
	case "DEBUG":
		return color.New(color.FgCyan)
	case "WARN":
		return color.New(color.FgYellow)
	case "ERROR":
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}

// LogFileResult logs one file's outcome at INFO level.
// Format: "[HH:MM:SS] [INFO] <path>: <count> matches" or "... <path>: failed: <err>"
// On a terminal the path is colored; the same path always gets the same color.
func (cl *ConsoleLogger) LogFileResult(r count.Result) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	path := r.Path
	if cl.colorOutput {
		path = PathColor(r.Path).Sprint(r.Path)
	}
	if r.OK() {
		cl.LogInfo(fmt.Sprintf("%s: %d matches (%s)", path, r.Count, formatDuration(r.Duration)))
		return
	}
	cl.LogInfo(fmt.Sprintf("%s: failed: %v", path, r.Err))
}

// PathColor picks a stable color for path from its color hash.
func PathColor(path string) *color.Color {
	idx := int(colorhash.HashString(path)) % len(pathPalette)
	if idx < 0 {
		idx = -idx
	}
	return color.New(pathPalette[idx])
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}
