package cli

// This file implements the "errors" command, which documents the error
// taxonomy: codes, exit codes and how each kind is reported.

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"oarc-decorators/internal/config"
	"oarc-decorators/pkg/errx"
	"oarc-decorators/pkg/handle"
)

// KindInfo describes how one error kind is reported by this CLI.
type KindInfo struct {
	Name        string `json:"name" yaml:"name"`
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	Root        string `json:"root" yaml:"root"`
	ExitCode    int    `json:"exit_code" yaml:"exit_code"`
	Report      string `json:"report" yaml:"report"`
}

func newErrorsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "errors",
		Short: "Describe the error taxonomy",
		Long:  "Commands that list the error kinds, their codes and the exit code each kind produces",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every error kind",
		Args:  handle.Args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.listKinds()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "explain KIND|CODE|MODE",
		Short: "Explain one error kind",
		Long: `Explain one error kind. The kind may be given by name (NetworkError),
by code (80200) or by simulate mode (network_error).`,
		Args: handle.Args(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.explainKind(args[0])
		},
	})

	return cmd
}

// Kinds returns the reporting details of every registered kind.
func (a *App) Kinds() []KindInfo {
	reporter := a.Reporter()
	entries := errx.ErrorRegistry()
	infos := make([]KindInfo, 0, len(entries))
	for _, entry := range entries {
		infos = append(infos, kindInfo(reporter, entry))
	}
	return infos
}

func kindInfo(reporter *handle.Reporter, entry errx.RegistryEntry) KindInfo {
	sample := errx.New(entry.Kind, entry.Description)
	info := KindInfo{
		Name:        entry.Name,
		Code:        entry.Code,
		Description: entry.Description,
		Root:        entry.Root.String(),
		ExitCode:    reporter.ExitCode(sample),
	}
	info.Report = reporter.Title(sample)
	if info.Report == "" {
		info.Report = "Error: line"
	}
	return info
}

func (a *App) listKinds() error {
	infos := a.Kinds()
	return a.render(infos, func() error {
		rows := [][]string{{"Name", "Code", "Exit", "Root", "Report", "Description"}}
		for _, info := range infos {
			rows = append(rows, []string{info.Name, info.Code, strconv.Itoa(info.ExitCode), info.Root, info.Report, info.Description})
		}
		return a.Printer.Table(rows)
	})
}

// LookupKind resolves a kind by registry name (case-insensitive, with or
// without the "Error" suffix), by code, or by simulate mode name.
func LookupKind(query string) (errx.RegistryEntry, bool) {
	q := strings.TrimSpace(query)
	if entry, ok := errx.LookupCode(q); ok {
		return entry, true
	}
	if entry, ok := errx.LookupName(q); ok {
		return entry, true
	}
	if mode, ok := scenarioModes[q]; ok && mode.fail != nil {
		if kind := errx.KindOf(safeErr(mode)); kind != errx.KindUnknown {
			return errx.EntryFor(kind)
		}
	}
	for _, entry := range errx.ErrorRegistry() {
		name := strings.ToLower(entry.Name)
		if name == strings.ToLower(q) || strings.TrimSuffix(name, "error") == strings.ToLower(q) {
			return entry, true
		}
	}
	return errx.RegistryEntry{}, false
}

// safeErr returns the error a mode raises, or nil for modes that panic.
func safeErr(mode scenarioMode) (err error) {
	defer func() {
		if recover() != nil {
			err = nil
		}
	}()
	return mode.fail(mode.message)
}

func (a *App) explainKind(query string) error {
	entry, ok := LookupKind(query)
	if !ok {
		return newWithSentinel(ErrUnknownErrorKind, fmt.Sprintf("unknown error kind %q; run 'oarc errors list'", query)).
			WithContext("query", query)
	}
	info := kindInfo(a.Reporter(), entry)

	var (
		data []byte
		err  error
	)
	switch a.Settings().Output {
	case config.OutputJSON:
		data, err = json.MarshalIndent(info, "", "  ")
	case config.OutputYAML:
		data, err = yaml.Marshal(info)
	default:
		a.Printer.Section(info.Name)
		a.Printer.Plain(fmt.Sprintf("Code:        %s", info.Code))
		a.Printer.Plain(fmt.Sprintf("Description: %s", info.Description))
		a.Printer.Plain(fmt.Sprintf("Root:        %s", info.Root))
		a.Printer.Plain(fmt.Sprintf("Exit code:   %d", info.ExitCode))
		a.Printer.Plain(fmt.Sprintf("Reported as: %s", info.Report))
		return nil
	}
	if err != nil {
		return wrapWithSentinel(ErrRenderOutputFailed, err, fmt.Sprintf("failed to render output: %v", err))
	}
	a.Printer.Plain(strings.TrimRight(string(data), "\n"))
	return nil
}
