package handle

// This file converts argument-parsing failures reported by cobra and pflag
// into errx usage errors so the reporter can classify them by kind.

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"oarc-decorators/pkg/errx"
)

// ContextUnknownCommand is the errx context key holding the name of an
// unrecognized subcommand.
const ContextUnknownCommand = "unknown_command"

var unknownCommandRe = regexp.MustCompile(`^unknown command "([^"]*)" for "([^"]*)"`)

// usagePrefixes are the message prefixes of cobra/pflag parse and arity errors.
var usagePrefixes = []string{
	"unknown flag: ",
	"unknown shorthand flag: ",
	"flag needs an argument: ",
	"bad flag syntax: ",
	"invalid argument ",
	"required flag(s) ",
	"accepts ",
	"requires at least ",
	"if any flags in the group ",
}

// commandError marks an error returned by a command's own hooks, which is
// never an argument-parsing failure whatever its text.
type commandError struct {
	err error
}

func (e *commandError) Error() string { return e.err.Error() }
func (e *commandError) Unwrap() error { return e.err }

func markCommandError(err error) error {
	var ce *commandError
	if err == nil || errors.As(err, &ce) {
		return err
	}
	return &commandError{err: err}
}

// markCommandErrors wraps the error-returning hooks of cmd and its
// subcommands so their failures reach AsUsage marked.
func markCommandErrors(cmd *cobra.Command) {
	for _, hook := range []*func(*cobra.Command, []string) error{
		&cmd.PersistentPreRunE, &cmd.PreRunE, &cmd.RunE, &cmd.PostRunE, &cmd.PersistentPostRunE,
	} {
		if run := *hook; run != nil {
			*hook = func(c *cobra.Command, args []string) error {
				return markCommandError(run(c, args))
			}
		}
	}
	for _, sub := range cmd.Commands() {
		markCommandErrors(sub)
	}
}

// AsUsage returns err as an errx usage error when it is an argument-parsing
// failure raised by cobra or pflag. Errors returned by command hooks wrapped
// by Execute are unwrapped and never treated as usage errors. Other errors,
// including errx errors of any kind, are returned unchanged.
func AsUsage(err error) error {
	var ce *commandError
	if errors.As(err, &ce) {
		return ce.err
	}
	if err == nil || errx.IsError(err) {
		return err
	}
	msg := err.Error()
	if m := unknownCommandRe.FindStringSubmatch(msg); m != nil {
		return errx.WrapUsage(firstLine(msg), err).
			WithContext(ContextUnknownCommand, m[1]).
			WithContext("program", m[2])
	}
	for _, prefix := range usagePrefixes {
		if strings.HasPrefix(msg, prefix) {
			return errx.WrapUsage(firstLine(msg), err)
		}
	}
	return err
}

// FlagErrorFunc is a cobra flag error func that tags flag parse failures as
// usage errors.
func FlagErrorFunc(_ *cobra.Command, err error) error {
	return errx.WrapUsage(err.Error(), err)
}

// Args wraps a cobra positional-argument validator so its failures are usage errors.
func Args(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errx.WrapUsage(err.Error(), err).WithContext("command", cmd.CommandPath())
		}
		return nil
	}
}

func usageLine(err *errx.Error, program string) string {
	if name, ok := err.Context()[ContextUnknownCommand]; ok {
		if p, ok := err.Context()["program"].(string); ok && p != "" {
			program = p
		}
		if program != "" {
			return fmt.Sprintf("Error: No such command '%v'. Try '%s --help' for help.", name, program)
		}
		return fmt.Sprintf("Error: No such command '%v'.", name)
	}
	return "Error: " + firstLine(err.Message())
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
