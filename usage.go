// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crucible

import (
	"errors"
	"fmt"
)

// ErrPending is returned by a test body to signal that the test's
// outcome will be provided later by the continuation passed to the
// Resume method of the Resumer obtained from Context.Async.  It is not
// an error outcome.
var ErrPending = errors.New(
	"test will be completed asynchronously (not an error)")

// ErrUsage is the general type of errors caused by using crucible in a
// way it is not meant to be used.  Usage errors are never turned into
// test outcomes; they are returned to the caller.
var ErrUsage = errors.New("crucible: usage")

// ErrRunning is returned by Run while a run is in progress.
var ErrRunning = fmt.Errorf("%w: runner is already running", ErrUsage)

// ErrRegistration is returned for malformed registration arguments.
var ErrRegistration = fmt.Errorf("%w: registration", ErrUsage)

// ErrFilter is returned for a malformed run filter.
var ErrFilter = fmt.Errorf("%w: filter", ErrUsage)

// ErrCannotDisplay is returned by Context.Display if the runner has no
// Displayer.
var ErrCannotDisplay = fmt.Errorf(
	"%w: the base runner cannot display messages", ErrUsage)

// ErrResumed is returned by a Resumer which was already resumed.
var ErrResumed = fmt.Errorf("%w: test was already resumed", ErrUsage)

// ErrNotSuspended is returned by a Resumer whose test is not suspended
// (anymore).
var ErrNotSuspended = fmt.Errorf("%w: test is not suspended", ErrUsage)

// ErrNoResumer is the unexpected error of a test body which returned
// ErrPending without having obtained a Resumer.
var ErrNoResumer = fmt.Errorf(
	"%w: suspended without obtaining a resumer", ErrUsage)

// ErrUnknownEvent is returned for listener registrations at an event
// name the runner doesn't know.
var ErrUnknownEvent = fmt.Errorf("%w: unknown event", ErrUsage)
