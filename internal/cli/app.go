package cli

// This file wires the shared collaborators of the oarc commands and builds
// the root command: settings loading, output rendering and the error reporter.

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/zapr"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"oarc-decorators/internal/config"
	"oarc-decorators/internal/metrics"
	"oarc-decorators/pkg/console"
	"oarc-decorators/pkg/handle"
	"oarc-decorators/pkg/runsync"
	"oarc-decorators/pkg/singleton"
)

// App holds the collaborators shared by the oarc commands.
type App struct {
	Version    string
	Logger     *zap.Logger
	LogLevel   *zap.AtomicLevel
	Printer    *console.Printer
	Metrics    *metrics.Recorder
	Runner     runsync.Runner
	HTTPClient *http.Client

	shared   *singleton.Singleton[*config.Settings]
	settings *config.Settings
}

// NewApp returns an App with a fresh metrics recorder observing bridge runs.
func NewApp(logger *zap.Logger, printer *console.Printer, version string) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	rec := metrics.New()
	return &App{
		Version:    version,
		Logger:     logger,
		Printer:    printer,
		Metrics:    rec,
		Runner:     runsync.Runner{Observer: rec},
		HTTPClient: &http.Client{},
	}
}

// Settings returns the loaded settings, or the defaults before they are loaded.
func (a *App) Settings() *config.Settings {
	if a.settings == nil {
		d := config.Defaults()
		return &d
	}
	return a.settings
}

// Reporter returns an error reporter rendering to the app's printer.
func (a *App) Reporter() *handle.Reporter {
	return handle.New(a.Printer,
		handle.WithLogger(zapr.NewLogger(a.Logger)),
		handle.WithObserver(a.Metrics),
		handle.WithTransportExitCodeFrom(func() int { return a.Settings().TransportExitCode }),
	)
}

// Finish writes the metrics textfile when one is configured.
func (a *App) Finish() error {
	path := a.Settings().MetricsFile
	if err := a.Metrics.WriteToTextfile(path); err != nil {
		return wrapWithSentinelAndContext(ErrWriteMetricsFailed, err, "failed to write metrics file", map[string]any{"path": path})
	}
	return nil
}

// NewRootCmd returns the oarc command tree.
func NewRootCmd(app *App) *cobra.Command {
	var cfgPath string

	root := &cobra.Command{
		Use:   "oarc",
		Short: "OARC error reporting toolkit",
		Long: `oarc exercises the OARC error reporting conventions:
- one bordered report per failure and a stable exit code per error kind
- the error taxonomy and its exit codes
- a network probe run through the synchronous bridge
- the effective configuration`,
		Version: app.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.loadSettings(cmd.Root(), cfgPath)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "config file (default is $HOME/.oarc/config.yaml)")
	flags.BoolP("verbose", "v", false, "Show the failure trace when a command fails")
	flags.Bool("debug", false, "Enable debug mode with structured error logging")
	flags.String("color", "auto", "Color output: auto, always or never")
	flags.StringP("output", "o", config.OutputText, "Output format: text, json or yaml")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file on exit")
	flags.Int("transport-exit-code", 0, "Exit code for MCP transport errors (0 reports them as unexpected)")
	flags.Duration("probe-timeout", 10*time.Second, "Timeout for the check command")

	root.AddCommand(newSimulateCmd(app))
	root.AddCommand(newErrorsCmd(app))
	root.AddCommand(newCheckCmd(app))
	root.AddCommand(newConfigCmd(app))
	root.AddCommand(newVersionCmd(app))

	return root
}

func (a *App) loadSettings(root *cobra.Command, path string) error {
	if a.shared == nil {
		a.shared = config.NewShared(root.PersistentFlags(),
			singleton.WithWarner(a.Printer),
			singleton.WithLogger(zapr.NewLogger(a.Logger)),
			singleton.WithDriftHook(a.Metrics.DriftHook()),
		)
	}
	s, err := config.Open(a.shared, path)
	if err != nil {
		return err
	}
	a.settings = s

	if s.Debug && a.LogLevel != nil {
		a.LogLevel.SetLevel(zap.DebugLevel)
	}
	a.Printer.SetColorMode(s.ColorMode())
	if s.Verbose {
		// verbose from the file or environment reaches the reporter through the flag
		_ = root.PersistentFlags().Set("verbose", "true")
	}
	a.Logger.Debug("Configuration loaded", zap.String("path", s.Path), zap.String("output", s.Output))
	return nil
}

// render writes v in the configured output format. In text mode text is
// called instead; a nil text falls back to YAML.
func (a *App) render(v any, text func() error) error {
	var (
		data []byte
		err  error
	)
	switch a.Settings().Output {
	case config.OutputJSON:
		data, err = json.MarshalIndent(v, "", "  ")
	case config.OutputYAML:
		data, err = yaml.Marshal(v)
	default:
		if text != nil {
			return text()
		}
		data, err = yaml.Marshal(v)
	}
	if err != nil {
		return wrapWithSentinel(ErrRenderOutputFailed, err, fmt.Sprintf("failed to render output: %v", err))
	}
	a.Printer.Plain(strings.TrimRight(string(data), "\n"))
	return nil
}

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the oarc version",
		Args:  handle.Args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.render(map[string]string{"version": app.Version}, func() error {
				app.Printer.Plain(app.Version)
				return nil
			})
		},
	}
}
