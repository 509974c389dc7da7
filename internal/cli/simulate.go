package cli

// This file implements the "simulate" command, which fails in a chosen way so
// the error report and exit code of every error kind can be observed.
// Its arguments are parsed by the Scenario constructor, not by cobra; root
// flags given alongside them are applied to the root before settings load.

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"oarc-decorators/pkg/errx"
	"oarc-decorators/pkg/factory"
)

type scenarioMode struct {
	message string
	fail    func(msg string) error
}

func raise(kind errx.Kind) func(string) error {
	return func(msg string) error { return errx.New(kind, msg) }
}

var scenarioModes = map[string]scenarioMode{
	"success":                  {message: "Success message"},
	"unexpected":               {message: "An unexpected standard error.", fail: errors.New},
	"usage_error":              {message: "Simulated usage error.", fail: raise(errx.KindUsage)},
	"transport_error":          {message: "MCP transport failed.", fail: raise(errx.KindTransport)},
	"mcp_error":                {message: "MCP server failed.", fail: raise(errx.KindMCP)},
	"panic":                    {message: "Simulated panic.", fail: func(msg string) error { panic(msg) }},
	"oarc_error":               {message: "Generic OARC error.", fail: raise(errx.KindOARC)},
	"auth_error":               {message: "Authentication failed.", fail: raise(errx.KindAuthentication)},
	"build_error":              {message: "Build process failed.", fail: raise(errx.KindBuild)},
	"config_error":             {message: "Invalid configuration.", fail: raise(errx.KindConfiguration)},
	"crawler_op_error":         {message: "Crawler operation failed.", fail: raise(errx.KindCrawlerOp)},
	"data_extraction_error":    {message: "Data extraction failed.", fail: raise(errx.KindDataExtraction)},
	"network_error":            {message: "Network connection failed.", fail: raise(errx.KindNetwork)},
	"publish_error":            {message: "Publishing failed.", fail: raise(errx.KindPublish)},
	"resource_not_found_error": {message: "Resource not found.", fail: raise(errx.KindResourceNotFound)},
}

// ScenarioModes returns the simulation mode names in sorted order.
func ScenarioModes() []string {
	modes := make([]string, 0, len(scenarioModes))
	for mode := range scenarioModes {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	return modes
}

// Scenario is one simulated command run.
type Scenario struct {
	Mode     string
	Message  string
	Verbose  bool
	Describe bool
}

// Err returns the failure the scenario simulates, nil for "success".
// The "panic" mode panics.
func (s *Scenario) Err() error {
	mode := scenarioModes[s.Mode]
	if mode.fail == nil {
		return nil
	}
	msg := s.Message
	if msg == "" {
		msg = mode.message
	}
	return mode.fail(msg)
}

func newScenarioFlags(s *Scenario) *pflag.FlagSet {
	fs := pflag.NewFlagSet("simulate", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVarP(&s.Message, "message", "m", "", "Override the failure message")
	fs.BoolVarP(&s.Verbose, "verbose", "v", false, "Show the failure trace")
	fs.BoolVar(&s.Describe, "describe", false, "Print the failure summary instead of failing")
	return fs
}

// newScenario builds a Scenario from raw arguments ("MODE --message ...") or
// from "mode", "message", "verbose" and "describe" keywords. A help request
// produces the flag usage as the result instead of a Scenario.
func newScenario(r factory.Request) (factory.Built[*Scenario], error) {
	s := &Scenario{}
	if raw, ok := r.RawArgs(); ok {
		fs := newScenarioFlags(s)
		if err := fs.Parse(raw); err != nil {
			if errors.Is(err, pflag.ErrHelp) {
				return factory.WithResult(s, scenarioUsage(fs)), nil
			}
			return factory.Built[*Scenario]{}, errx.WrapUsage(err.Error(), err)
		}
		switch fs.NArg() {
		case 0:
			return factory.Built[*Scenario]{}, newWithSentinel(ErrModeRequired, "Missing argument 'MODE'.")
		case 1:
			s.Mode = fs.Arg(0)
		default:
			return factory.Built[*Scenario]{}, errx.Usage(fmt.Sprintf("Got unexpected extra argument (%s)", strings.Join(fs.Args()[1:], " ")))
		}
	} else {
		if len(r.Args) > 0 {
			s.Mode, _ = r.Args[0].(string)
		} else {
			s.Mode = r.String("mode")
		}
		s.Message = r.String("message")
		s.Verbose, _ = r.Kwargs["verbose"].(bool)
		s.Describe, _ = r.Kwargs["describe"].(bool)
	}

	if _, ok := scenarioModes[s.Mode]; !ok {
		return factory.Built[*Scenario]{}, newWithSentinel(ErrUnknownMode,
			fmt.Sprintf("Invalid value for 'MODE': '%s' is not one of %s.", s.Mode, quoteAll(ScenarioModes()))).
			WithContext("mode", s.Mode)
	}
	return factory.Instance(s), nil
}

func scenarioUsage(fs *pflag.FlagSet) string {
	return "Usage: oarc simulate MODE [flags]\n\nModes: " + strings.Join(ScenarioModes(), ", ") +
		"\n\nFlags:\n" + strings.TrimRight(fs.FlagUsages(), "\n")
}

func quoteAll(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = "'" + item + "'"
	}
	return strings.Join(quoted, ", ")
}

func newSimulateCmd(app *App) *cobra.Command {
	var raw []string
	return &cobra.Command{
		Use:   "simulate MODE [--message TEXT] [--verbose] [--describe]",
		Short: "Fail in a chosen way to exercise error reporting",
		Long: `Run a command that succeeds or fails with the chosen kind of error, so the
report and exit code of each kind can be observed.

Modes: ` + strings.Join(ScenarioModes(), ", "),
		DisableFlagParsing: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			rest, err := splitRootFlags(cmd.Root(), args)
			if err != nil {
				return err
			}
			raw = rest
			return cmd.Root().PersistentPreRunE(cmd, rest)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := factory.Create(newScenario, factory.Raw(raw))
			if err != nil {
				return err
			}
			if out.HasResult() {
				app.Printer.Plain(fmt.Sprint(out.Value()))
				return nil
			}
			s := out.Instance
			if s.Verbose {
				_ = cmd.Root().PersistentFlags().Set("verbose", "true")
			}
			return app.RunScenario(s)
		},
	}
}

// splitRootFlags applies the root persistent flags found in args, before or
// after the mode, and returns the remaining arguments for the scenario.
// Flags the scenario defines itself, and everything after "--", are kept.
func splitRootFlags(root *cobra.Command, args []string) ([]string, error) {
	own := newScenarioFlags(&Scenario{})
	global := root.PersistentFlags()
	rest := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			rest = append(rest, args[i:]...)
			break
		}
		if f, _, hasValue := lookupFlag(own, arg); f != nil {
			rest = append(rest, arg)
			if !hasValue && f.NoOptDefVal == "" && i+1 < len(args) {
				i++
				rest = append(rest, args[i])
			}
			continue
		}
		f, value, hasValue := lookupFlag(global, arg)
		if f == nil {
			rest = append(rest, arg)
			continue
		}
		if !hasValue {
			switch {
			case f.NoOptDefVal != "":
				value = f.NoOptDefVal
			case i+1 < len(args):
				i++
				value = args[i]
			default:
				return nil, newWithSentinel(ErrInvalidRootFlag, fmt.Sprintf("flag needs an argument: --%s", f.Name)).
					WithContext("flag", f.Name)
			}
		}
		if err := global.Set(f.Name, value); err != nil {
			return nil, wrapWithSentinelAndContext(ErrInvalidRootFlag, err,
				fmt.Sprintf("invalid argument %q for \"--%s\" flag: %v", value, f.Name, err),
				map[string]any{"flag": f.Name})
		}
	}
	return rest, nil
}

// lookupFlag finds the flag of fs named by arg ("--name", "--name=value",
// "-n", "-nvalue" or "-n=value") and the inline value, if any.
func lookupFlag(fs *pflag.FlagSet, arg string) (*pflag.Flag, string, bool) {
	switch {
	case strings.HasPrefix(arg, "--") && len(arg) > 2:
		name, value, hasValue := strings.Cut(arg[2:], "=")
		return fs.Lookup(name), value, hasValue
	case strings.HasPrefix(arg, "-") && len(arg) > 1 && arg[1] != '-':
		f := fs.ShorthandLookup(arg[1:2])
		return f, strings.TrimPrefix(arg[2:], "="), len(arg) > 2
	}
	return nil, "", false
}

// RunScenario announces and runs s. With Describe set the failure summary is
// printed and the command succeeds.
func (a *App) RunScenario(s *Scenario) error {
	a.Printer.Plain(fmt.Sprintf("Executing mode: %s, Verbose: %t", s.Mode, s.Verbose))

	err := s.Err()
	if s.Describe {
		format := a.Settings().Output
		if format == "" || format == "text" {
			format = "yaml"
		}
		data, merr := a.Reporter().Describe(err, s.Verbose).Marshal(format)
		if merr != nil {
			return wrapWithSentinel(ErrRenderOutputFailed, merr, "failed to render failure summary")
		}
		a.Printer.Plain(strings.TrimRight(string(data), "\n"))
		return nil
	}
	if err != nil {
		return err
	}
	a.Printer.Plain(scenarioModes[s.Mode].message)
	return nil
}
