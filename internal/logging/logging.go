// Package logging builds the zap loggers used by the command line tools.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrLevel is returned for an unrecognised log level name.
var ErrLevel = errors.New("logging: unknown level")

// ParseLevel maps debug, info, warn and error to zap levels.
// An empty name selects info.
func ParseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	switch lvl, err := zapcore.ParseLevel(name); {
	case err != nil:
		return 0, fmt.Errorf("%w: %q", ErrLevel, name)
	case lvl > zapcore.ErrorLevel:
		return 0, fmt.Errorf("%w: %q", ErrLevel, name)
	default:
		return lvl, nil
	}
}

// New returns a console logger writing to stderr. verbose forces debug
// level regardless of level.
func New(level string, verbose bool) (*zap.Logger, error) {
	return NewWithWriter(os.Stderr, level, verbose)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level string, verbose bool) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}
