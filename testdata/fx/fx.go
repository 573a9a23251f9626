// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fx provides suites to test the creation of fixtures from
// suites and their execution.
package fx

import (
	"errors"
	"fmt"
	"sync"

	"github.com/iancoleman/orderedmap"
	"github.com/slukits/crucible"
)

// FixtureLog provides the general logging facility for suites.  A
// FixtureLog mustn't been copied once it has been used.
type FixtureLog struct {
	Logs  string
	mutex sync.Mutex
}

// log logs concurrency save given arguments to the *Logs* property.
func (fl *FixtureLog) log(args ...interface{}) {
	fl.mutex.Lock()
	defer fl.mutex.Unlock()
	fl.Logs += fmt.Sprint(args...)
}

// AllSuiteTestsAreRun is a suite to verify that public methods with a
// context argument are turned into tests.
type AllSuiteTestsAreRun struct {
	FixtureLog
	// Exp is logged iff *A_test*-method is called
	Exp string
}

// A_test as a public method is a test, i.e. log the content of *Exp*.
func (s *AllSuiteTestsAreRun) A_test(c *crucible.Context) { s.log(s.Exp) }

// private can't be a test.
func (s *AllSuiteTestsAreRun) private(c *crucible.Context) { s.log("failed") }

// Helper has not the signature of a test.
func (s *AllSuiteTestsAreRun) Helper(v int) int { return v }

// NoArg has not the signature of a test.
func (s *AllSuiteTestsAreRun) NoArg() { s.log("failed") }

// SetUpTearDown logs "s" for each set-up, "t" for each tear-down and
// the test's index for each test, i.e. "s0ts1t" if both tests run.
type SetUpTearDown struct {
	FixtureLog
}

func (s *SetUpTearDown) SetUp(c *crucible.Context) { s.log("s") }

func (s *SetUpTearDown) TearDown(c *crucible.Context) error {
	s.log("t")
	return nil
}

func (s *SetUpTearDown) Test_0(c *crucible.Context) { s.log(0) }

func (s *SetUpTearDown) Test_1(c *crucible.Context) { s.log(1) }

// ErrSuite is returned by the test Returns_an_error of Results.
var ErrSuite = errors.New("fx: suite error")

// Results has a test for each outcome.
type Results struct{}

func (s *Results) Passes(c *crucible.Context) error { return nil }

func (s *Results) Fails(c *crucible.Context) { c.Fail("fx") }

func (s *Results) Returns_an_error(c *crucible.Context) error {
	return ErrSuite
}

// Helpers provides a shared context from its helpers.
type Helpers struct {
	Got interface{}
}

func (s *Helpers) Helpers() []*orderedmap.OrderedMap {
	h := orderedmap.New()
	h.Set("answer", 42)
	return []*orderedmap.OrderedMap{h}
}

func (s *Helpers) Reads_helper(c *crucible.Context) { s.Got = c.Get("answer") }

// NoTests has no methods which are tests.
type NoTests struct{}

func (s *NoTests) SetUp(c *crucible.Context) {}

// Declared declares its tests neither in alphabetical order nor all with
// the same receiver kind.
type Declared struct{}

func (s *Declared) Zeta(c *crucible.Context) {}

func (s Declared) Alpha(c *crucible.Context) {}

func (s *Declared) Mid(c *crucible.Context) {}

// Base provides a test to suites embedding it.
type Base struct{}

func (b *Base) Inherited(c *crucible.Context) {}

// Promoted has a declared test and a test promoted from Base.
type Promoted struct{ Base }

func (s *Promoted) Own(c *crucible.Context) {}
