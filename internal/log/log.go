// Package log is a thin adapter around glog with optional structured logging via slog.
//
// By default messages go to glog and debug messages are gated by glog verbosity.
// Structured logging is enabled when the --log-fmt flag is explicitly set.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
)

var (
	logFormat = "text"
	logLevel  = "info"

	structured atomic.Bool
)

// Flush ensures any pending glog output is written.
var Flush = glog.Flush

// RegisterFlags installs log flags on the given FlagSet.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVar(&logFormat, "log-fmt", logFormat, "format for structured logging output: text, json, or logfmt")
	fs.StringVar(&logLevel, "log-level", logLevel, "minimum structured logging level: debug, info, warn, or error")
}

// Init configures logging based on parsed flags. Nothing changes unless --log-fmt was set.
func Init(fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	f := fs.Lookup("log-fmt")
	if f == nil || !f.Changed {
		return nil
	}

	return Setup(os.Stderr, logFormat, logLevel)
}

// Setup switches logging to slog writing to w with given format and level.
func Setup(w io.Writer, format, level string) error {
	lvl, e := parseLevel(level)
	if e != nil {
		return e
	}

	h, e := newHandler(w, format, lvl)
	if e != nil {
		return e
	}

	slog.SetDefault(slog.New(h))
	structured.Store(true)
	return nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log-level %q: expected debug, info, warn, or error", level)
	}
}

func newHandler(w io.Writer, format string, level slog.Level) (slog.Handler, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{AddSource: true, Level: level}), nil
	case "logfmt":
		return slog.NewTextHandler(w, &slog.HandlerOptions{AddSource: true, Level: level}), nil
	case "text":
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.TimeOnly,
			NoColor:    !isTerminal(w),
		}), nil
	default:
		return nil, fmt.Errorf("invalid log-fmt %q: expected text, json, or logfmt", format)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Enabled reports whether a message of given level would be emitted.
func Enabled(level slog.Level) bool {
	if structured.Load() {
		return slog.Default().Enabled(context.Background(), level)
	}

	if level < slog.LevelInfo {
		return bool(glog.V(1))
	}
	return true
}

func logS(level slog.Level, msg string, args ...any) {
	if !Enabled(level) {
		return
	}

	if !structured.Load() {
		logGlog(level, msg, args...)
		return
	}

	// skip runtime.Callers, logS, and the exported wrapper
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = slog.Default().Handler().Handle(context.Background(), r)
}

func logGlog(level slog.Level, msg string, args ...any) {
	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i+1 < len(args); i += 2 {
		fmt.Fprintf(&sb, " %v=%v", args[i], args[i+1])
	}
	if len(args)%2 != 0 {
		fmt.Fprintf(&sb, " %v", args[len(args)-1])
	}

	const depth = 3
	switch {
	case level >= slog.LevelError:
		glog.ErrorDepth(depth, sb.String())
	case level >= slog.LevelWarn:
		glog.WarningDepth(depth, sb.String())
	default:
		glog.InfoDepth(depth, sb.String())
	}
}

// DebugS logs at the Debug level.
func DebugS(msg string, args ...any) {
	logS(slog.LevelDebug, msg, args...)
}

// InfoS logs at the Info level.
func InfoS(msg string, args ...any) {
	logS(slog.LevelInfo, msg, args...)
}

// WarnS logs at the Warn level.
func WarnS(msg string, args ...any) {
	logS(slog.LevelWarn, msg, args...)
}

// ErrorS logs at the Error level.
func ErrorS(msg string, args ...any) {
	logS(slog.LevelError, msg, args...)
}
