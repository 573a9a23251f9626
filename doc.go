// Package crucible runs tests one after another and reports their
// outcomes to listeners.  It is the engine of test drivers like a
// command line tool or an interactive user interface: the driver
// registers tests and fixtures at a Runner, subscribes to the runner's
// events and starts a run.
//
//	import github.com/slukits/crucible
//
//	r := crucible.New(crucible.Config{})
//	r.AddTest("math.sum", "", func(c *crucible.Context) error {
//	    c.AssertEqual(4, 2+2)
//	    return nil
//	})
//	r.On(crucible.ResultEvent, func(e crucible.Event) {
//	    fmt.Println(e.Test.Name(), e.Outcome.Kind)
//	}, nil)
//	summary, err := r.Run(context.Background(), "math.*")
//
// A test body passes if it returns nil.  It fails if it returns or
// panics with a [Failure], which is what the assertions of the
// [Context] passed to the body do.  Any other error returned or panic
// raised by a body is an exception unless the body declared it as
// expected:
//
//	func(c *crucible.Context) error {
//	    c.Expect("*fs.PathError")
//	    _, err := os.Open("missing")
//	    return err
//	}
//
// An expectation without names is met by any error; named expectations
// are matched against the error's name (see [ErrorName]), never against
// its message.  Failures are never expected errors.  A body which
// declared an expectation and returns nil fails.
//
// A body may suspend its test by obtaining a [Resumer] from
// [Context.Async] and returning [ErrPending].  The runner then waits for
// the continuation passed to Resume and executes it in place of the
// body; the next test is started only after the suspended test's
// outcome was reported.  [Context.Later] and [Context.Display] are
// suspending helpers resuming a test after a duration respectively
// after a user pressed a button presented by the runner's [Displayer].
//
// Tests may be grouped in a [Fixture] whose set-up and tear-down are
// executed before respectively after each of its tests and whose shared
// context is reused by all of them.  [FixtureOf] creates a fixture from
// the methods of a suite:
//
//	type Parser struct{}
//
//	func (s *Parser) Parses_empty_input(c *crucible.Context) {
//	    c.AssertEqual(0, len(parse("")))
//	}
//
//	fx, err := crucible.FixtureOf("parser", "", &Parser{})
//	r.Add(fx)
//
// During a run a Runner emits the events start, run, pass, fail,
// exception, result and finish; the tests of a fixture are bracketed by
// open and close.  Listeners are registered with [Runner.On] and called
// synchronously in the order of their registration on the goroutine
// executing [Runner.Run].
package crucible
