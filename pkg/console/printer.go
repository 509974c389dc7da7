// Package console renders styled messages for the OARC tools: plain lines,
// warnings, bordered error boxes, and tables.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// Warner accepts caution-level messages.
type Warner interface {
	Warning(msg string)
}

// Console is the output sink used by the error reporter.
type Console interface {
	Warner
	Plain(msg string)
	ErrorLine(msg string)
	ErrorBox(title, msg string)
	Detail(text string)
}

// ColorMode selects when styling is applied.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode converts a configuration value to a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways, ColorNever:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown color mode %q", s)
	}
}

// isTerminal is a test seam for terminal detection.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Printer renders messages with pterm. Regular output goes to Out,
// warnings and error reports to Err.
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	Quiet bool

	interactive bool
}

// NewPrinter returns a Printer writing to out and errOut.
// In auto mode styling is enabled only when errOut is a terminal.
func NewPrinter(out, errOut io.Writer, mode ColorMode) *Printer {
	p := &Printer{Out: out, Err: errOut, interactive: isTerminal(errOut)}
	p.SetColorMode(mode)
	return p
}

// SetColorMode switches styling on or off. pterm styling is process-wide.
func (p *Printer) SetColorMode(mode ColorMode) {
	switch mode {
	case ColorAlways:
		pterm.EnableColor()
	case ColorNever:
		pterm.DisableColor()
	default:
		if p.interactive {
			pterm.EnableColor()
		} else {
			pterm.DisableColor()
		}
	}
}

// Default returns a Printer on the process standard streams.
func Default() *Printer {
	return NewPrinter(os.Stdout, os.Stderr, ColorAuto)
}

// Plain prints msg as-is on its own line.
func (p *Printer) Plain(msg string) {
	fmt.Fprintln(p.Out, msg)
}

// Printf prints formatted text to the regular output.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.Out, format, args...)
}

// Warning prints msg in the caution style. Warnings are shown even in quiet mode.
func (p *Printer) Warning(msg string) {
	fmt.Fprintln(p.Err, pterm.Yellow(msg))
}

// ErrorLine prints a one-line error message.
func (p *Printer) ErrorLine(msg string) {
	fmt.Fprintln(p.Err, pterm.Red(msg))
}

// ErrorBox prints msg inside a red bordered box labeled with title.
func (p *Printer) ErrorBox(title, msg string) {
	box := pterm.DefaultBox.
		WithTitle(pterm.Red(title)).
		WithTitleTopLeft().
		WithBoxStyle(pterm.NewStyle(pterm.FgRed))
	fmt.Fprintln(p.Err, box.Sprint(msg))
}

// Detail prints supplementary text such as a failure trace.
func (p *Printer) Detail(text string) {
	fmt.Fprintln(p.Err, pterm.Gray(strings.TrimRight(text, "\n")))
}

// Section prints a section heading.
func (p *Printer) Section(title string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.Out, pterm.Cyan(pterm.Bold.Sprint(title)))
}

// Info prints an informational line.
func (p *Printer) Info(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.Out, pterm.Cyan("ℹ ")+msg)
}

// Success prints a success line.
func (p *Printer) Success(msg string) {
	if p.Quiet {
		return
	}
	fmt.Fprintln(p.Out, pterm.Green("✓ ")+msg)
}

// Table renders data with the first row as header. Empty data prints nothing.
func (p *Printer) Table(data [][]string) error {
	if len(data) == 0 {
		return nil
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(data)).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(p.Out, out)
	return nil
}

// SpinnerStart shows a spinner while work is in progress and returns a stop
// function. No spinner is drawn in quiet mode or without a terminal.
func (p *Printer) SpinnerStart(text string) func(ok bool, msg string) {
	if p.Quiet || !p.interactive {
		return func(bool, string) {}
	}
	spinner, err := pterm.DefaultSpinner.WithWriter(p.Err).WithRemoveWhenDone().Start(text)
	if err != nil {
		return func(bool, string) {}
	}
	return func(ok bool, msg string) {
		if ok {
			spinner.Success(msg)
			return
		}
		spinner.Fail(msg)
	}
}
