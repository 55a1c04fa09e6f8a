// Package logging builds the zap logger used for a ddata run.
package logging

import (
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the logger's verbosity.
type Options struct {
	// Verbosity is the number of -v flags: 0 logs warnings and errors, 1 adds
	// debug messages, 2 or more also adds the caller.
	Verbosity int
	// Quiet discards every message.
	Quiet bool
	// Colour enables coloured level names.
	Colour bool
	// RunID is attached to every message when set.
	RunID string
}

// New returns a console logger writing to w.
func New(w io.Writer, opts Options) *zap.Logger {
	if opts.Quiet {
		return zap.NewNop()
	}

	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if opts.Verbosity > 0 {
		level.SetLevel(zapcore.DebugLevel)
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	if opts.Colour {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if opts.Verbosity < 2 {
		enc.CallerKey = ""
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)

	var zopts []zap.Option
	if opts.Verbosity >= 2 {
		zopts = append(zopts, zap.AddCaller())
	}
	log := zap.New(core, zopts...)
	if opts.RunID != "" {
		log = log.With(zap.String("run", opts.RunID))
	}
	return log
}

// NewRunID returns a time-ordered identifier for one invocation.
func NewRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
