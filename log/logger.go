package log

import (
	"io"
	"os"
	"strings"

	"log/slog"

	"github.com/dpotapov/slogpfx"
)

// Prefix key is the "magic" key that makes prefixing work. Any value sent to this key is
// rendered as a message prefix by the intermediate handler.
const prefixKey = "_prefixKey"

// Logger wraps a slog.Logger and tracks prefixes and the raw log level so that
// prefixes can be layered hierarchically as a logger moves through components.
type Logger struct {
	*slog.Logger

	rawLogLevel string
	prefixes    []string
}

// Default returns a logger at INFO level.
func Default() *Logger {
	return NewLogger("info")
}

// NewLogger creates a logger with no prefixes, writing to stderr.
func NewLogger(rawLogLevel string) *Logger {
	return NewLoggerWithPrefixes(rawLogLevel, []string{})
}

// NewLoggerWithPrefixes creates a logger with an initial set of prefixes, writing to stderr.
func NewLoggerWithPrefixes(rawLogLevel string, prefixes []string) *Logger {
	return NewWriterLogger(rawLogLevel, os.Stderr, prefixes)
}

// NewWriterLogger creates a logger that writes to the given writer. Tests use this to
// capture output deterministically.
func NewWriterLogger(rawLogLevel string, writer io.Writer, prefixes []string) *Logger {
	slogger := newSlogger(rawLogLevel, writer)
	return wrapSlogger(slogger, rawLogLevel, prefixes)
}

// ApplyPrefix returns a logger with an additional prefix appended.
func (l *Logger) ApplyPrefix(prefix string) *Logger {
	return wrapSlogger(l.Logger, l.rawLogLevel, append(l.prefixes, prefix))
}

// With returns a logger carrying additional key value pairs.
func (l *Logger) With(args ...any) *Logger {
	slogger := l.Logger.With(args...)
	return wrapSlogger(slogger, l.rawLogLevel, l.prefixes)
}

func wrapSlogger(slogger *slog.Logger, rawLogLevel string, prefixes []string) *Logger {
	prefix := strings.Join(prefixes, "")
	prefixedSlogger := slogger.With(prefixKey, prefix)

	return &Logger{
		Logger:      prefixedSlogger,
		rawLogLevel: rawLogLevel,
		prefixes:    prefixes,
	}
}

func newSlogger(rawLogLevel string, writer io.Writer) *slog.Logger {
	lvl := new(slog.LevelVar)
	lvl.Set(ParseLogLevel(rawLogLevel))

	textHandler := slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: lvl,
	})

	// Custom prefix formatter. The default in slogpfx uses a '>' symbol.
	prefixFormatter := func(prefixes []slog.Value) string {
		p := make([]string, 0, len(prefixes))
		for _, prefix := range prefixes {
			if prefix.Any() == nil || prefix.String() == "" {
				continue
			}
			p = append(p, prefix.String())
		}
		if len(p) == 0 {
			return ""
		}
		return strings.Join(p, "") + " "
	}

	prefixHandler := slogpfx.NewHandler(textHandler, &slogpfx.HandlerOptions{
		PrefixKeys:      []string{prefixKey},
		PrefixFormatter: prefixFormatter,
	})

	return slog.New(prefixHandler)
}
