package debug

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/malonaz/gemchat/internal/file"
)

// DefaultLogFile is used when no log file is configured.
const DefaultLogFile = "/tmp/gemchat-debug.log"

// LevelEnvVar overrides the configured log level.
const LevelEnvVar = "GEMCHAT_LOG_LEVEL"

var (
	once   sync.Once
	logger *slog.Logger

	mu    sync.Mutex
	path  = DefaultLogFile
	level = slog.LevelInfo
)

// Configure sets the sink and level of the logger. It only has an effect if
// called before the first call to GetLogger.
func Configure(logFile, logLevel string) {
	mu.Lock()
	defer mu.Unlock()
	if logFile != "" {
		path = logFile
	}
	if env := os.Getenv(LevelEnvVar); env != "" {
		logLevel = env
	}
	level = ParseLevel(logLevel)
}

// ParseLevel maps "debug", "info", "warn" and "error" to a slog level.
// Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetLogger returns a singleton slog logger instance.
// The TUI owns the terminal, so logs only ever go to a file.
func GetLogger() *slog.Logger {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()
		logger = newLogger(path, level)
	})
	return logger
}

func newLogger(path string, level slog.Level) *slog.Logger {
	var w io.Writer = io.Discard
	if expanded, err := file.ExpandPath(path); err == nil {
		if err := file.EnsureParentDirectory(expanded); err == nil {
			if f, err := os.OpenFile(expanded, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666); err == nil {
				w = f
			}
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}))
}
