// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cli provides the command line front end of a crucible test
// program: the program registers its tests at a runner and hands over
// to Main which runs them selected by command line filters, reports the
// outcomes on the console and returns the program's exit code.
//
//	func main() {
//	    os.Exit(cli.Main(func(r *crucible.Runner) error {
//	        _, err := r.AddTest("math.sum", "", sum)
//	        return err
//	    }))
//	}
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/slukits/crucible"
	"github.com/slukits/crucible/pkg/report"
	"github.com/spf13/cobra"
)

// Exit codes returned by Main.
const (
	// ExitOK is returned if all run tests passed.
	ExitOK = 0

	// ExitFailed is returned if a test failed or had an exception or if
	// the run was interrupted.
	ExitFailed = 1

	// ExitUsage is returned for malformed flags, settings, filters or
	// registrations.
	ExitUsage = 2
)

// ErrFailed is returned by a command whose run had failures or
// exceptions.
var ErrFailed = errors.New("cli: run had failures or exceptions")

// Register registers a program's tests at given runner.
type Register func(r *crucible.Runner) error

// ExitError associates an error with an exit code.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

// Unwrap returns the error associated with the exit code.
func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the exit code for given error returned by a command
// created by NewCommand.  Errors without associated code are usage
// errors, e.g. unknown flags.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitUsage
}

// Main runs the command created by NewCommand with the process's
// arguments and standard streams until it finishes or the process is
// interrupted and returns the exit code.
func Main(register Register) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	cmd := NewCommand(register, os.Stdin, os.Stdout, os.Stderr)
	err := cmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, ErrFailed) {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return ExitCode(err)
}

// NewCommand creates the command running the tests given register
// function registers.  Its arguments and --filter flags are glob
// filters selecting the tests to run.  Messages which tests display are
// answered through given reader, the report goes to given out writer
// while logs and the progress bar go to given error writer.
func NewCommand(
	register Register, in io.Reader, out, errOut io.Writer,
) *cobra.Command {
	var (
		filters           []string
		config            string
		noColor, progress bool
		verbose           bool
	)
	cmd := &cobra.Command{
		Use:           "crucible [filter...]",
		Short:         "Run the registered tests one after another",
		Long:          `Run the registered tests one after another and report their outcomes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
	}
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	flags := cmd.Flags()
	flags.StringArrayVarP(&filters, "filter", "f", nil,
		"glob filter of test ids, e.g. 'parser.*' (repeatable)")
	flags.StringVarP(&config, "config", "c", "",
		"YAML settings file")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&progress, "progress", false,
		"show a progress bar on the error output")
	flags.BoolVarP(&verbose, "verbose", "v", false,
		"log the runner's and the tests' messages")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		s := DefaultSettings()
		if config != "" {
			var err error
			if s, err = LoadSettings(config); err != nil {
				return &ExitError{Code: ExitUsage, Err: err}
			}
		}
		if f := append(filters, args...); len(f) > 0 {
			s.Filters = f
		}
		if flags.Changed("no-color") {
			s.Color = !noColor
		}
		if flags.Changed("progress") {
			s.Progress = progress
		}
		if flags.Changed("verbose") {
			s.Verbose = verbose
		}
		return run(cmd.Context(), register, s, in, out, errOut)
	}
	return cmd
}

func run(
	ctx context.Context, register Register, s *Settings,
	in io.Reader, out, errOut io.Writer,
) error {
	cfg := crucible.Config{Displayer: report.NewConsole(in, out)}
	if s.Verbose {
		logger := log.New(errOut, "crucible: ", 0)
		cfg.Logger = logger.Println
	}
	r := crucible.New(cfg)
	if err := register(r); err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}
	opts := report.Options{Out: out, Color: s.Color, Width: s.Width}
	if s.Progress {
		opts.Progress = errOut
	}
	if err := report.New(opts).Attach(r); err != nil {
		return &ExitError{Code: ExitUsage, Err: err}
	}

	sum, err := r.Run(ctx, s.Filters...)
	switch {
	case errors.Is(err, crucible.ErrUsage):
		return &ExitError{Code: ExitUsage, Err: err}
	case err != nil:
		return &ExitError{Code: ExitFailed, Err: err}
	case !sum.OK():
		return &ExitError{Code: ExitFailed, Err: ErrFailed}
	}
	return nil
}
