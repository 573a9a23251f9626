// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crucible

import (
	"fmt"
	"sync"
	"time"

	"github.com/iancoleman/orderedmap"
	"github.com/slukits/crucible/pkg/inspect"
)

// Context instances are passed to test bodies providing means for
// logging, assertion, declaring expected errors, suspending and
// accessing the shared fixture context:
//
//	r.AddTest("math.sum", "", func(c *crucible.Context) error {
//	    c.AssertEqual(4, 2+2)
//	    return nil
//	})
//
// A Context must only be used from the goroutine which runs the body it
// was passed to.  Once the test's outcome is reported the context is
// released from its runner: logging goes nowhere and Async, Display and
// Later report ErrNotSuspended or ErrCannotDisplay.
type Context struct {
	test *Test
	unit *unit
}

// Test returns the test whose body is executed.
func (c *Context) Test() *Test { return c.test }

// Fixture returns the fixture of the executed test or nil.
func (c *Context) Fixture() *Fixture { return c.test.fixture }

// Log writes given arguments prefixed by the test's id to the runner's
// logger.
func (c *Context) Log(args ...interface{}) {
	if c.unit == nil {
		return
	}
	c.unit.runner.log(append([]interface{}{c.test.id + ":"}, args...)...)
}

// Logf writes given format string leveraging fmt.Sprintf to the
// runner's logger (see Log).
func (c *Context) Logf(format string, args ...interface{}) {
	c.Log(fmt.Sprintf(format, args...))
}

// Expect declares that the currently executed body must produce an
// error to pass.  Without names any error will do; otherwise the name
// of the produced error (see ErrorName) must be one of given names.  A
// failed assertion is never an expected error.  An expectation is
// valid for the body it was declared in, i.e. a continuation resumed
// after a suspension starts without expectation.
func (c *Context) Expect(names ...string) {
	if c.unit == nil {
		return
	}
	c.unit.expected = expectationOf(names)
}

// Async returns the Resumer of the executed body.  A body which
// obtained a Resumer and returns ErrPending suspends its test: the
// runner neither reports an outcome nor starts another test until the
// continuation passed to the Resumer's Resume method is executed and
// produced the test's outcome:
//
//	func(c *crucible.Context) error {
//	    r := c.Async()
//	    go func() {
//	        v := <-values
//	        r.Resume(func(c *crucible.Context) error {
//	            c.AssertEqual(42, v)
//	            return nil
//	        })
//	    }()
//	    return crucible.ErrPending
//	}
//
// The continuation is executed like a test body on the runner's
// goroutine.  Repeated calls of Async from the same body return the same
// Resumer.  If the body doesn't return ErrPending its Resumer becomes
// void.
func (c *Context) Async() *Resumer {
	if c.unit == nil {
		return voidResumer()
	}
	if c.unit.resumer == nil {
		c.unit.resumer = newResumer()
	}
	return c.unit.resumer
}

// Later suspends the executed test and resumes it with given
// continuation after given duration elapsed on the runner's clock.
// Later returns ErrPending which the calling body should return.
func (c *Context) Later(d time.Duration, cont Body) error {
	if c.unit == nil {
		return ErrNotSuspended
	}
	if cont == nil {
		return fmt.Errorf("%w: nil continuation", ErrUsage)
	}
	r, after := c.Async(), c.unit.runner.clock.After(d)
	go func() {
		select {
		case <-after:
			_ = r.Resume(cont)
		case <-r.Done():
		}
	}()
	return ErrPending
}

// Shared returns the shared context of the executed test's fixture or
// the test's own shared context if it has no fixture.
func (c *Context) Shared() *orderedmap.OrderedMap { return c.test.store() }

// Get returns the value of given key of the shared context or
// inspect.Undefined if there is no such key.
func (c *Context) Get(key string) interface{} {
	v, ok := c.Shared().Get(key)
	if !ok {
		return inspect.Undefined
	}
	return v
}

// Set sets given key of the shared context to given value.
func (c *Context) Set(key string, value interface{}) {
	c.Shared().Set(key, value)
}

// Delete removes given key from the shared context.
func (c *Context) Delete(key string) { c.Shared().Delete(key) }

// Resumer resumes a suspended test exactly once.
type Resumer struct {
	mutex   sync.Mutex
	cont    chan Body
	done    chan struct{}
	resumed bool
	void    bool
}

func newResumer() *Resumer {
	return &Resumer{cont: make(chan Body, 1), done: make(chan struct{})}
}

func voidResumer() *Resumer {
	r := newResumer()
	r.invalidate()
	return r
}

// Resume hands given continuation to the runner which executes it in
// place of the suspended body.  Resume fails with ErrResumed if it was
// called before and with ErrNotSuspended if its test didn't suspend or
// its run was canceled.  Resume may be called before the body returned
// ErrPending; if the body then returns anything else the continuation
// is dropped without being executed and the runner logs that.
func (r *Resumer) Resume(cont Body) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.resumed {
		return ErrResumed
	}
	if r.void {
		return ErrNotSuspended
	}
	if cont == nil {
		return fmt.Errorf("%w: nil continuation", ErrUsage)
	}
	r.resumed = true
	r.cont <- cont
	return nil
}

// Done is closed once the Resumer became void.
func (r *Resumer) Done() <-chan struct{} { return r.done }

// invalidate voids the resumer and reports if it was resumed before.
func (r *Resumer) invalidate() (resumed bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if r.void {
		return false
	}
	r.void = true
	close(r.done)
	return r.resumed
}
