package logging

import "log/slog"

// Debug, Info, Warn and Error are no-ops on a nil logger so optional
// collaborators can log without guarding every call.

func Debug(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Debug(msg, args...)
	}
}

func Info(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Info(msg, args...)
	}
}

func Warn(logger *slog.Logger, msg string, args ...any) {
	if logger != nil {
		logger.Warn(msg, args...)
	}
}

// Error attaches err under FieldError when it is non-nil.
func Error(logger *slog.Logger, msg string, err error, args ...any) {
	if logger == nil {
		return
	}
	if err != nil {
		args = append(args, slog.Any(FieldError, err))
	}
	logger.Error(msg, args...)
}
