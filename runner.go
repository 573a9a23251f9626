// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crucible

import (
	"context"
	"fmt"
	"sync"

	"code.cloudfoundry.org/clock"
	"github.com/slukits/crucible/pkg/bus"
)

// Config configures a Runner.  The zero value is a valid configuration.
type Config struct {
	// Logger receives the runner's and the tests' log messages; they are
	// discarded if nil.
	Logger func(args ...interface{})

	// Clock measures durations and drives Context.Later; defaults to
	// the real clock.
	Clock clock.Clock

	// Displayer presents messages with buttons to a user on behalf of
	// Context.Display; without it Display fails with ErrCannotDisplay.
	Displayer Displayer
}

// Runner executes registered tests one after another and reports their
// outcomes to the listeners of its events.  A Runner runs the next test
// only after the previous test's outcome was reported, also if that
// test suspended itself (see Context.Async).
//
//	r := crucible.New(crucible.Config{})
//	r.AddTest("t1", "", func(c *crucible.Context) error {
//	    c.AssertEqual(1, 1)
//	    return nil
//	})
//	r.On(crucible.ResultEvent, func(e crucible.Event) {
//	    fmt.Println(e.Test.ID(), e.Outcome.Kind)
//	}, nil)
//	summary, err := r.Run(context.Background())
type Runner struct {
	logger    func(args ...interface{})
	clock     clock.Clock
	displayer Displayer
	events    map[string]*bus.Delegator[Event]

	mutex   sync.Mutex
	tasks   []Task
	running bool
}

// New creates a new runner configured by given configuration.
func New(cfg Config) *Runner {
	r := &Runner{
		logger:    cfg.Logger,
		clock:     cfg.Clock,
		displayer: cfg.Displayer,
		events:    map[string]*bus.Delegator[Event]{},
	}
	if r.logger == nil {
		r.logger = func(...interface{}) {}
	}
	if r.clock == nil {
		r.clock = clock.NewClock()
	}
	for _, name := range Events {
		r.events[name] = bus.New[Event](name)
	}
	return r
}

// Add registers given tasks, i.e. tests and fixtures, in given order.
// Add fails with ErrRegistration for a nil task.
func (r *Runner) Add(tasks ...Task) error {
	for _, t := range tasks {
		switch t := t.(type) {
		case *Test:
			if t == nil {
				return fmt.Errorf("%w: nil test", ErrRegistration)
			}
		case *Fixture:
			if t == nil {
				return fmt.Errorf("%w: nil fixture", ErrRegistration)
			}
		default:
			return fmt.Errorf("%w: unknown task %T", ErrRegistration, t)
		}
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.tasks = append(r.tasks, tasks...)
	return nil
}

// AddTest creates a test with given id, name and body (see NewTest) and
// registers it.
func (r *Runner) AddTest(id, name string, body Body) (*Test, error) {
	t, err := NewTest(id, name, body)
	if err != nil {
		return nil, err
	}
	return t, r.Add(t)
}

// AddFixture creates a fixture with given id, name and spec (see
// NewFixture) and registers it.
func (r *Runner) AddFixture(
	id, name string, spec FixtureSpec,
) (*Fixture, error) {
	f, err := NewFixture(id, name, spec)
	if err != nil {
		return nil, err
	}
	return f, r.Add(f)
}

// Tests returns the registered tests in registration order; the tests
// of a fixture take the fixture's place.
func (r *Runner) Tests() []*Test {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.flatten(nil)
}

func (r *Runner) flatten(f filter) []*Test {
	tt := []*Test{}
	add := func(t *Test) {
		if f.matches(t.id) {
			tt = append(tt, t)
		}
	}
	for _, task := range r.tasks {
		switch task := task.(type) {
		case *Test:
			add(task)
		case *Fixture:
			for _, t := range task.Tests() {
				add(t)
			}
		}
	}
	return tt
}

// IsRunning returns true while a run is in progress.
func (r *Runner) IsRunning() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.running
}

// On registers given listener with given context for the event with
// given name (see bus.Delegator.Add).  On fails with ErrUnknownEvent if
// there is no such event and with a usage error wrapping
// bus.ErrListener if the listener can't be called.
func (r *Runner) On(name string, listener, context interface{}) error {
	d, ok := r.events[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownEvent, name)
	}
	if err := d.Add(listener, context); err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

// Off removes the first registration of given listener with given
// context from the event with given name and reports if there was one.
func (r *Runner) Off(name string, listener, context interface{}) bool {
	d, ok := r.events[name]
	if !ok {
		return false
	}
	return d.Remove(listener, context)
}

// Event returns the delegator of the event with given name; nil if
// there is no such event.
func (r *Runner) Event(name string) *bus.Delegator[Event] {
	return r.events[name]
}

// Run runs the registered tests whose ids match one of given glob
// filters (see Glob), all tests if there are none, in registration
// order and returns the summary of their outcomes.  Run returns once
// all queued tests reported their outcome.  Run fails with ErrRunning
// if the runner is already running and with ErrFilter for a malformed
// filter; in both cases no event is emitted.  If given context is done
// before the run finishes the currently executed test is abandoned
// without reporting an outcome, the finish event is not emitted and Run
// returns the summary so far with the context's error.
func (r *Runner) Run(
	ctx context.Context, filters ...string,
) (*Summary, error) {
	match, err := newFilter(filters)
	if err != nil {
		return nil, err
	}
	r.mutex.Lock()
	if r.running {
		r.mutex.Unlock()
		return nil, ErrRunning
	}
	r.running = true
	queue := r.flatten(match)
	r.mutex.Unlock()
	defer r.stop()

	started, sum := r.clock.Now(), &Summary{}
	r.log(fmt.Sprintf("run: %d test(s) queued", len(queue)))
	r.emit(Event{Name: StartEvent, Total: len(queue)})
	var open *Fixture
	for _, t := range queue {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if t.fixture != open {
			if open != nil {
				r.emit(Event{Name: CloseEvent, Fixture: open})
			}
			if open = t.fixture; open != nil {
				r.emit(Event{Name: OpenEvent, Fixture: open})
			}
		}
		r.emit(Event{Name: RunEvent, Test: t, Fixture: t.fixture})
		if err := r.execute(ctx, t, sum); err != nil {
			return sum, err
		}
	}
	if open != nil {
		r.emit(Event{Name: CloseEvent, Fixture: open})
	}
	sum.Duration = r.clock.Since(started)
	r.emit(Event{Name: FinishEvent, Summary: sum})
	return sum, nil
}

func (r *Runner) stop() {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.running = false
}

// execute runs given test and waits for the continuations of its
// suspensions until it has an outcome which is reported.  execute fails
// only if given context is done while the test is suspended.
func (r *Runner) execute(ctx context.Context, t *Test, sum *Summary) error {
	u := newUnit(r, t)
	res := u.start()
	for res.kind == pending {
		r.log(t.id + ": suspended")
		select {
		case cont := <-u.suspended():
			res = u.resume(cont)
		case <-ctx.Done():
			r.log(t.id + ": abandoned: " + ctx.Err().Error())
			u.release()
			return ctx.Err()
		}
	}
	u.report(u.tearDown(res), sum)
	return nil
}

// report tallies given outcome of given test and emits the outcome's
// event followed by the result event.  report panics if the outcome's
// kind is not a terminal kind.
func (r *Runner) report(t *Test, o *Outcome, sum *Summary) {
	name := o.Kind.Event()
	if name == "" {
		panic(fmt.Sprintf(
			"crucible: unable to understand test result %v of %s",
			o.Kind, t.id))
	}
	sum.add(o.Kind)
	e := Event{Name: name, Test: t, Fixture: t.fixture, Outcome: o}
	r.emit(e)
	e.Name = ResultEvent
	r.emit(e)
}

func (r *Runner) emit(e Event) { r.events[e.Name].Call(e) }

func (r *Runner) log(args ...interface{}) { r.logger(args...) }
