package log

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

var (
	lv   = new(slog.LevelVar) // default info
	opts = &slog.HandlerOptions{Level: lv}
	base atomic.Value // *slog.Logger
)

func init() {
	base.Store(slog.New(slog.NewJSONHandler(os.Stdout, opts)))
}

// SetLevel changes the runtime log level: debug, info, warn, error.
func SetLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		lv.Set(slog.LevelDebug)
	case "warn", "warning":
		lv.Set(slog.LevelWarn)
	case "error":
		lv.Set(slog.LevelError)
	default:
		lv.Set(slog.LevelInfo)
	}
}

// SetHandler swaps the base logger for one backed by h.
func SetHandler(h slog.Handler) {
	base.Store(slog.New(h))
}

// Options returns the handler options carrying the shared level.
func Options() *slog.HandlerOptions {
	return opts
}

// From returns the current base logger.
func From() *slog.Logger {
	if l, _ := base.Load().(*slog.Logger); l != nil {
		return l
	}
	l := slog.New(slog.NewJSONHandler(os.Stdout, opts))
	base.Store(l)
	return l
}

// FromContext returns the base logger tagged with the Lambda request id, if
// ctx carries one.
func FromContext(ctx context.Context) *slog.Logger {
	l := From()
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return l.With("request_id", lc.AwsRequestID)
	}
	return l
}

// With returns a child logger with default keyvals.
func With(args ...any) *slog.Logger {
	return From().With(args...)
}

// MaskEmail keeps the first character of the local part and the domain:
// "jane@example.com" becomes "j***@example.com".
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		if email == "" {
			return ""
		}
		return "***"
	}
	return email[:1] + "***" + email[at:]
}

func Debug(msg string, args ...any) {
	From().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	From().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	From().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	From().Error(msg, args...)
}
