package daybreak

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Severity of a driver diagnostic.
type Severity int

const (
	SeverityVerbose Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityVerbose:
		return "verbose"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	}
	return "error"
}

// Level maps the severity onto the slog level it is logged at.
func (s Severity) Level() slog.Level {
	switch s {
	case SeverityVerbose:
		return slog.LevelDebug
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	}
	return slog.LevelError
}

// Category tags a diagnostic with its origin. Categories combine.
type Category uint32

const (
	CategoryGeneral Category = 1 << iota
	CategoryValidation
	CategoryPerformance
)

func (c Category) String() string {
	var tags []string
	if c&CategoryGeneral != 0 {
		tags = append(tags, "general")
	}
	if c&CategoryValidation != 0 {
		tags = append(tags, "validation")
	}
	if c&CategoryPerformance != 0 {
		tags = append(tags, "performance")
	}
	if len(tags) == 0 {
		return "none"
	}
	return strings.Join(tags, "|")
}

// DiagnosticSink receives driver diagnostics. It only observes; it can
// never make the driver abort the call that produced the message.
type DiagnosticSink interface {
	Diagnostic(severity Severity, category Category, message string)
}

// SlogSink routes diagnostics to a structured logger.
type SlogSink struct {
	Logger *slog.Logger
}

func (s SlogSink) Diagnostic(severity Severity, category Category, message string) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Log(context.Background(), severity.Level(), message,
		slog.String("category", category.String()))
}

// NewLogger returns a text logger writing to w at DefaultLevel.
func NewLogger(w io.Writer) *slog.Logger {
	return NewLoggerLevel(w, DefaultLevel)
}

// NewLoggerLevel returns a text logger writing to w at level.
func NewLoggerLevel(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ParseLevel turns a level name such as "debug" or "warn" into a level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(name))
	return level, err
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
