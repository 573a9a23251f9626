// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package report provides a console driver for crucible runners: the
// Reporter prints the outcomes of a run as aligned and colored lines
// while the Console lets a user answer the messages tests display.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/schollz/progressbar/v3"
	"github.com/slukits/crucible"
)

// DefaultWidth is the default width of the test name column.
const DefaultWidth = 50

// Options configure a Reporter.
type Options struct {
	// Out receives the report; it must not be nil.
	Out io.Writer

	// Color enables colored outcomes.
	Color bool

	// Progress receives a progress bar of the run if not nil.
	Progress io.Writer

	// Width of the test name column; defaults to DefaultWidth.
	Width int
}

// listeners maps the events a Reporter listens to to its methods.
var listeners = map[string]string{
	crucible.StartEvent:  "Start",
	crucible.OpenEvent:   "Open",
	crucible.ResultEvent: "Result",
	crucible.CloseEvent:  "Close",
	crucible.FinishEvent: "Finish",
}

// Reporter prints a line for each reported test outcome and a summary
// at the end of a run.  Failures and exceptions are reported in detail
// after all tests ran.
type Reporter struct {
	out      io.Writer
	width    int
	progress io.Writer
	bar      *progressbar.ProgressBar
	indent   string
	pass     *color.Color
	fail     *color.Color
	except   *color.Color
	faint    *color.Color
	details  []crucible.Event
}

// New creates a new reporter configured by given options.
func New(opts Options) *Reporter {
	r := &Reporter{
		out:      opts.Out,
		width:    opts.Width,
		progress: opts.Progress,
		pass:     color.New(color.FgGreen),
		fail:     color.New(color.FgRed),
		except:   color.New(color.FgYellow, color.Bold),
		faint:    color.New(color.Faint),
	}
	if r.width <= 0 {
		r.width = DefaultWidth
	}
	for _, c := range []*color.Color{r.pass, r.fail, r.except, r.faint} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Attach registers the reporter at given runner's events.
func (r *Reporter) Attach(runner *crucible.Runner) error {
	for event, method := range listeners {
		if err := runner.On(event, r, method); err != nil {
			return err
		}
	}
	return nil
}

// Detach removes the reporter from given runner's events.
func (r *Reporter) Detach(runner *crucible.Runner) {
	for event, method := range listeners {
		runner.Off(event, r, method)
	}
}

// Start resets the reporter and starts the progress bar.
func (r *Reporter) Start(e crucible.Event) {
	r.details, r.indent = nil, ""
	if r.progress == nil || e.Total == 0 {
		return
	}
	r.bar = progressbar.NewOptions(e.Total,
		progressbar.OptionSetWriter(r.progress),
		progressbar.OptionSetDescription("running"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(r.progress, "\n")
		}),
	)
}

// Open prints the name of the opened fixture and indents the lines of
// its tests.
func (r *Reporter) Open(e crucible.Event) {
	fmt.Fprintln(r.out, e.Fixture.Name())
	r.indent = "  "
}

// Close ends the indentation of a fixture's tests.
func (r *Reporter) Close(crucible.Event) { r.indent = "" }

// Result prints the line of a reported outcome.
func (r *Reporter) Result(e crucible.Event) {
	width := r.width - runewidth.StringWidth(r.indent)
	name := runewidth.FillRight(
		runewidth.Truncate(e.Test.Name(), width, "…"), width)
	fmt.Fprintf(r.out, "%s%s %s %s\n", r.indent, name,
		r.kind(e.Outcome.Kind), r.faint.Sprint(duration(e.Outcome.Duration)))
	if e.Outcome.Kind != crucible.Pass {
		r.details = append(r.details, e)
	}
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
}

// Finish prints the details of failures and exceptions followed by the
// run's summary.
func (r *Reporter) Finish(e crucible.Event) {
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
	for _, d := range r.details {
		fmt.Fprintf(r.out, "\n%s %s\n", r.kind(d.Outcome.Kind), d.Test.ID())
		fmt.Fprintln(r.out, indent(detail(d.Outcome)))
	}
	s := e.Summary
	fmt.Fprintf(r.out, "\n%s, %s, %s in %s\n",
		r.pass.Sprintf("%d passed", s.Pass),
		r.fail.Sprintf("%d failed", s.Fail),
		r.except.Sprintf("%d exception(s)", s.Exception),
		duration(s.Duration))
}

func (r *Reporter) kind(k crucible.Kind) string {
	switch k {
	case crucible.Pass:
		return r.pass.Sprint(k)
	case crucible.Fail:
		return r.fail.Sprint(k)
	}
	return r.except.Sprint(k)
}

func detail(o *crucible.Outcome) string {
	var ef *crucible.ExpectationFailure
	if errors.As(o.Err, &ef) && ef.Diff != "" {
		return ef.Error() + "\n" + ef.Diff
	}
	if o.Kind == crucible.Exception {
		return fmt.Sprintf("%+v", o.Err)
	}
	return o.Err.Error()
}

func indent(s string) string {
	return "    " + strings.ReplaceAll(strings.TrimRight(s, "\n"), "\n", "\n    ")
}

func duration(d time.Duration) string {
	return d.Round(time.Microsecond).String()
}
