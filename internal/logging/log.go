package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
)

// Format represents the log output format.
type Format string

const (
	// FormatJSON outputs logs as JSON objects.
	FormatJSON Format = "json"
	// FormatText outputs logs in human-readable key=value text.
	FormatText Format = "text"
)

var (
	// ErrInvalidArgument indicates an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownLogLevel indicates an unrecognized log level string.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownLogFormat indicates an unrecognized log format string.
	ErrUnknownLogFormat = errors.New("unknown log format")
)

// NewHandlerFromStrings creates a [slog.Handler] from level and format
// strings, as read from configuration or CLI flags.
func NewHandlerFromStrings(w io.Writer, level, format string) (slog.Handler, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	fmtv, err := GetFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	return NewHandler(w, lvl, fmtv), nil
}

// NewHandler creates a [slog.Handler] with the specified level and format.
func NewHandler(w io.Writer, level slog.Level, format Format) slog.Handler {
	opts := &slog.HandlerOptions{AddSource: false, Level: level}

	switch format {
	case FormatJSON:
		return slog.NewJSONHandler(w, opts)
	case FormatText:
		return slog.NewTextHandler(w, opts)
	}

	return slog.NewTextHandler(w, opts)
}

// GetLevel parses a log level string (DEBUG, INFO, WARN, ERROR, case
// insensitive) into a [slog.Level].
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(level) {
	case "ERROR":
		return slog.LevelError, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "DEBUG":
		return slog.LevelDebug, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownLogLevel, level)
}

// GetFormat parses a log format string into a [Format].
func GetFormat(format string) (Format, error) {
	f := Format(strings.ToLower(format))
	if slices.Contains([]Format{FormatJSON, FormatText}, f) {
		return f, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownLogFormat, format)
}

// AllLevelStrings returns the recognized level strings for flag help text
// and shell completion.
func AllLevelStrings() []string {
	return []string{"DEBUG", "INFO", "WARN", "ERROR"}
}

// AllFormatStrings returns the recognized format strings for flag help
// text and shell completion.
func AllFormatStrings() []string {
	return []string{string(FormatJSON), string(FormatText)}
}
