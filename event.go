// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crucible

import (
	"fmt"
	"time"
)

// Names of the events a Runner emits during a run.  Per run there is
// exactly one start and one finish event; per queued test in this order
// exactly one run event, one of the pass, fail or exception events and
// one result event.  The tests of a fixture which are queued next to
// each other are bracketed by an open and a close event.
const (
	StartEvent     = "start"
	OpenEvent      = "open"
	RunEvent       = "run"
	PassEvent      = "pass"
	FailEvent      = "fail"
	ExceptionEvent = "exception"
	ResultEvent    = "result"
	CloseEvent     = "close"
	FinishEvent    = "finish"
)

// Events lists the event names in the order of their first appearance
// during a run.
var Events = []string{StartEvent, OpenEvent, RunEvent, PassEvent,
	FailEvent, ExceptionEvent, ResultEvent, CloseEvent, FinishEvent}

// Kind classifies the terminal outcome of a test.
type Kind int

const (
	// Pass is the outcome of a test whose body returned without error
	// or produced an expected error.
	Pass Kind = iota

	// Fail is the outcome of a test whose body produced a Failure or
	// didn't produce an expected error.
	Fail

	// Exception is the outcome of a test whose body produced an
	// unexpected error.
	Exception

	// pending is the classification of a suspended body; it is never
	// reported.
	pending
)

func (k Kind) String() string {
	switch k {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	case Exception:
		return "exception"
	case pending:
		return "pending"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Event returns the name of the event reporting an outcome of given
// kind.
func (k Kind) Event() string {
	switch k {
	case Pass:
		return PassEvent
	case Fail:
		return FailEvent
	case Exception:
		return ExceptionEvent
	}
	return ""
}

// Outcome is the terminal result of a test's execution.
type Outcome struct {
	Kind Kind

	// Err is the failure of a failed test or the *UnexpectedError of a
	// test with an exception; nil for a passed test.
	Err error

	// Caught is the expected error a passed test produced if any.
	Caught error

	// Duration is the time from the start of the test's set-up to the
	// end of its tear-down including suspensions.
	Duration time.Duration
}

// Summary tallies the outcomes of a run.
type Summary struct {
	Pass, Fail, Exception int

	// Duration is the time from the start to the finish of the run.
	Duration time.Duration
}

// Total returns the number of reported outcomes.
func (s *Summary) Total() int { return s.Pass + s.Fail + s.Exception }

// OK returns true iff neither a test failed nor had an exception.
func (s *Summary) OK() bool { return s.Fail == 0 && s.Exception == 0 }

func (s *Summary) add(k Kind) {
	switch k {
	case Pass:
		s.Pass++
	case Fail:
		s.Fail++
	case Exception:
		s.Exception++
	}
}

// Event is passed to the listeners of a Runner's events.  Which fields
// are set depends on the event:
//
//	start:                     Total is the number of queued tests
//	open, close:               Fixture
//	run:                       Test, Fixture
//	pass, fail, exception,
//	result:                    Test, Fixture, Outcome
//	finish:                    Summary
type Event struct {
	Name    string
	Test    *Test
	Fixture *Fixture
	Outcome *Outcome
	Total   int
	Summary *Summary
}
