// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crucible

import (
	"time"

	"github.com/pkg/errors"
)

// result is the classification of an executed body.
type result struct {
	kind   Kind
	err    error
	caught error
}

// unit is the execution of a single test: it runs the fixture's
// set-up, the test's body, the continuations of the body's suspensions
// and the fixture's tear-down, classifies what happened and reports the
// test's outcome exactly once to its runner.  A unit is created for
// every execution of a test and released after the report.
type unit struct {
	runner   *Runner
	test     *Test
	ctx      *Context
	expected expectation
	resumer  *Resumer
	started  time.Time
	reported bool
}

func newUnit(r *Runner, t *Test) *unit {
	u := &unit{runner: r, test: t, started: r.clock.Now()}
	u.ctx = &Context{test: t, unit: u}
	return u
}

// start runs the fixture's set-up and then the test's body unless the
// set-up failed.
func (u *unit) start() result {
	if f := u.test.fixture; f != nil && f.setUp != nil {
		if res := u.hook(f.setUp); res.kind != Pass {
			return res
		}
	}
	u.expected = u.test.expected
	return u.run(u.test.body)
}

// resume runs given continuation of a suspended body with a fresh
// expectation.
func (u *unit) resume(cont Body) result {
	u.expected = expectation{}
	return u.run(cont)
}

func (u *unit) run(body Body) result {
	u.voidResumer()
	u.resumer = nil
	res := u.classify(u.call(body))
	if res.kind != pending && u.resumer != nil && u.resumer.invalidate() {
		u.runner.log(u.test.id+":",
			"continuation dropped: body resumed without suspending")
	}
	return res
}

// suspended returns the channel providing the continuation of a
// suspended body.
func (u *unit) suspended() <-chan Body { return u.resumer.cont }

// tearDown runs the fixture's tear-down.  A failing tear-down decides
// the outcome only if the test passed so far.
func (u *unit) tearDown(res result) result {
	f := u.test.fixture
	if f == nil || f.tearDown == nil {
		return res
	}
	td := u.hook(f.tearDown)
	if td.kind == Pass {
		return res
	}
	if res.kind != Pass {
		u.runner.log(u.test.id+":", "tear-down:", td.err)
		return res
	}
	return td
}

// hook runs a set-up or tear-down; these can't suspend and have no
// expectations.
func (u *unit) hook(h Body) result {
	u.voidResumer()
	u.resumer, u.expected = nil, expectation{}
	err := u.call(h)
	u.voidResumer()
	switch {
	case err == nil:
		return result{kind: Pass}
	case IsFailure(err):
		return result{kind: Fail, err: err}
	}
	return result{kind: Exception,
		err: &UnexpectedError{Test: u.test, Err: err}}
}

// call executes given body recovering a panic into an error.
func (u *unit) call(body Body) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return body(u.ctx)
}

// classify interprets the error produced by a test body.
func (u *unit) classify(err error) result {
	switch {
	case err == nil && u.expected.declared:
		return result{kind: Fail, err: u.expected.unmet(u.test)}
	case err == nil:
		return result{kind: Pass}
	case errors.Is(err, ErrPending):
		if u.resumer == nil {
			return result{kind: Exception, err: &UnexpectedError{
				Test: u.test, Err: ErrNoResumer}}
		}
		return result{kind: pending}
	case IsFailure(err):
		return result{kind: Fail, err: err}
	case u.expected.matches(err):
		return result{kind: Pass, caught: err}
	}
	return result{kind: Exception,
		err: &UnexpectedError{Test: u.test, Err: err}}
}

// report reports given final result to the runner and releases the
// unit.  report panics if called a second time.
func (u *unit) report(res result, sum *Summary) {
	if u.reported {
		panic("crucible: unit reported twice for " + u.test.id)
	}
	u.reported = true
	defer u.release()
	u.runner.report(u.test, &Outcome{
		Kind:     res.kind,
		Err:      res.err,
		Caught:   res.caught,
		Duration: u.runner.clock.Since(u.started),
	}, sum)
}

func (u *unit) voidResumer() {
	if u.resumer != nil {
		u.resumer.invalidate()
	}
}

// release drops the references to the runner and the context.
func (u *unit) release() {
	u.voidResumer()
	u.resumer = nil
	if u.ctx != nil {
		u.ctx.unit = nil
	}
	u.ctx, u.runner = nil, nil
}
