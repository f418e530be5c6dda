// Package logging owns the process-wide zap logger. Commands call
// Initialize once after flag parsing; everything else reaches the
// logger through L, which is safe to use before Initialize.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop().Sugar()

// Initialize builds the global logger. Console output goes to stderr
// so that entity JSON on stdout stays machine-readable. With json set,
// log lines are structured records instead.
func Initialize(verbose, json bool) error {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	var logger *zap.Logger
	if json {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		built, err := cfg.Build()
		if err != nil {
			return err
		}
		logger = built
	} else {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		logger = zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.AddSync(os.Stderr),
			level,
		))
	}

	log = logger.Sugar()
	return nil
}

// L returns the global logger. Before Initialize it is a no-op logger,
// never nil.
func L() *zap.SugaredLogger { return log }

// Sync flushes buffered entries. Called on process exit.
func Sync() {
	_ = log.Sync()
}
