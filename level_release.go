//go:build release

package daybreak

import "log/slog"

// DefaultLevel is the log level selected by the build configuration.
var DefaultLevel = slog.LevelWarn
