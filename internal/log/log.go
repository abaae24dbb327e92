package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	charmlog "github.com/charmbracelet/log/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	initOnce    sync.Once
	initialized atomic.Bool
)

// Setup routes the default slog logger to a rotating JSON log file. It is
// used by the interactive UI, which owns the terminal.
func Setup(logFile string, debug bool) {
	initOnce.Do(func() {
		logRotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,    // Max size in MB
			MaxBackups: 0,     // Number of backups
			MaxAge:     30,    // Days
			Compress:   false, // Enable compression
		}

		logger := slog.NewJSONHandler(logRotator, &slog.HandlerOptions{
			Level:     level(debug),
			AddSource: true,
		})

		slog.SetDefault(slog.New(logger))
		initialized.Store(true)
	})
}

// SetupConsole routes the default slog logger to w through a human friendly
// handler. Non-interactive commands use it with stderr so stdout stays
// clean for piping.
func SetupConsole(w io.Writer, debug bool) {
	initOnce.Do(func() {
		logger := charmlog.New(w)
		logger.SetReportTimestamp(debug)
		if debug {
			logger.SetLevel(charmlog.DebugLevel)
		} else {
			logger.SetLevel(charmlog.WarnLevel)
		}
		slog.SetDefault(slog.New(logger))
		initialized.Store(true)
	})
}

func level(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func Initialized() bool {
	return initialized.Load()
}

// MaskToken masks a bearer token by showing only the first and last 5
// characters. For tokens shorter than 10 characters, it shows first 2 and
// last 2 characters. Returns "***EMPTY***" for empty strings.
func MaskToken(token string) string {
	if token == "" {
		return "***EMPTY***"
	}

	key := strings.TrimPrefix(token, "Bearer ")

	keyLen := len(key)
	if keyLen <= 4 {
		return strings.Repeat("*", keyLen)
	} else if keyLen <= 10 {
		return key[:2] + strings.Repeat("*", keyLen-4) + key[keyLen-2:]
	} else {
		return key[:5] + strings.Repeat("*", keyLen-10) + key[keyLen-5:]
	}
}

// RecoverPanic writes a panic report into dir (the working directory when
// empty) and runs cleanup. It must be deferred directly.
func RecoverPanic(dir, name string, cleanup func()) {
	if r := recover(); r != nil {
		timestamp := time.Now().Format("20060102-150405")
		filename := filepath.Join(dir, fmt.Sprintf("drive-panic-%s-%s.log", name, timestamp))

		file, err := os.Create(filename)
		if err == nil {
			defer file.Close()

			fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
			fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
			fmt.Fprintf(file, "Stack Trace:\n%s\n", debug.Stack())
		}

		if cleanup != nil {
			cleanup()
		}
	}
}
