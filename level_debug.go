//go:build debug && !release

package daybreak

import "log/slog"

// DefaultLevel is the log level selected by the build configuration.
var DefaultLevel = slog.LevelDebug
