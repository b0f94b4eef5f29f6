package lgr

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newConsoleEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "",
		MessageKey:     "msg",
		StacktraceKey:  "",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

// New builds the converter logger. Verbose runs print progress and debug
// messages to stdout; quiet runs only report warnings and errors on stderr.
// LOG_LEVEL overrides the level in both cases.
func New(verbose bool) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	output := "stderr"
	if verbose {
		level = zapcore.DebugLevel
		output = "stdout"
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		if err := level.Set(logLevel); err != nil {
			return nil, fmt.Errorf("can't set log level: %w", err)
		}
	}

	logger, err := zap.Config{
		Encoding:          "console",
		Level:             zap.NewAtomicLevelAt(level),
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
		EncoderConfig:     newConsoleEncoderConfig(),
	}.Build()
	if err != nil {
		return nil, fmt.Errorf("can't initialise the logger: %w", err)
	}
	return logger, nil
}
