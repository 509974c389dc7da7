package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"oarc-decorators/internal/cli"
	"oarc-decorators/pkg/console"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Silent until --debug raises the level, so failures are only reported once.
	level := zap.NewAtomicLevelAt(zap.PanicLevel)
	logger, err := newConsoleLogger(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	app := cli.NewApp(logger, console.Default(), fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date))
	app.LogLevel = &level

	code := app.Reporter().Execute(cli.NewRootCmd(app))
	if err := app.Finish(); err != nil {
		app.Printer.Warning(fmt.Sprintf("Warning: %s", err))
	}
	return code
}

// newConsoleLogger returns a human-friendly console logger with timestamps
// whose level follows level.
func newConsoleLogger(level zap.AtomicLevel) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = level
	cfg.EncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "",
		CallerKey:      "",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalColorLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg.Build()
}
