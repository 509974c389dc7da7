package main

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"oarc-decorators/internal/cli"
	"oarc-decorators/pkg/console"
)

func TestRootCommandHelp(t *testing.T) {
	level := zap.NewAtomicLevelAt(zap.PanicLevel)
	logger, err := newConsoleLogger(level)
	if err != nil {
		t.Fatalf("newConsoleLogger() error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	var out bytes.Buffer
	app := cli.NewApp(logger, console.NewPrinter(&out, &out, console.ColorNever), "test")
	root := cli.NewRootCmd(app)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--help"})

	if code := app.Reporter().Execute(root); code != 0 {
		t.Fatalf("Execute() exit code = %d, output: %s", code, out.String())
	}
	if !strings.Contains(out.String(), "oarc exercises the OARC error reporting conventions") {
		t.Fatalf("help output missing expected text: %s", out.String())
	}
}

func TestNewConsoleLoggerFollowsLevel(t *testing.T) {
	level := zap.NewAtomicLevelAt(zap.PanicLevel)
	logger, err := newConsoleLogger(level)
	if err != nil {
		t.Fatalf("newConsoleLogger() error: %v", err)
	}

	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatalf("error level enabled while the level is panic")
	}
	level.SetLevel(zap.DebugLevel)
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug level not enabled after raising the level")
	}
}
