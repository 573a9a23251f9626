// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crucible

import (
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/slukits/crucible/pkg/inspect"
)

// Failure reports a failed assertion of a test.  A test whose body
// returns or panics with a Failure is reported as failed.
type Failure struct {
	// Test is the test which failed; it may be nil.
	Test *Test

	// Description explains the failure.
	Description string
}

// NewFailure creates a new failure of given test with given
// description.
func NewFailure(t *Test, description string) *Failure {
	return &Failure{Test: t, Description: description}
}

func (f *Failure) Error() string {
	if f.Test == nil {
		return "Failure: " + f.Description
	}
	return fmt.Sprintf("Failure in test %q: %s", f.Test.Name(), f.Description)
}

// Name of a failure is "crucible.Failure".
func (f *Failure) Name() string { return "crucible.Failure" }

func (f *Failure) failure() *Failure { return f }

// ExpectationFailure is the failure of an equality or sameness
// assertion carrying the inspected expected and actual values.
type ExpectationFailure struct {
	Failure

	// Expected is the inspected representation of the expected value.
	Expected string

	// Actual is the inspected representation of the actual value.
	Actual string

	// Diff is a line-diff of Expected and Actual.
	Diff string
}

// NewExpectationFailure creates the failure of given test whose
// expected value differs from its actual value.  A non-empty message
// prefixes the failure's description.
func NewExpectationFailure(
	t *Test, expected, actual interface{}, message string,
) *ExpectationFailure {
	exp, act := inspect.Inspect(expected), inspect.Inspect(actual)
	description := fmt.Sprintf("Expected %s but actually got %s.", exp, act)
	if message != "" {
		description = message + ": " + description
	}
	return &ExpectationFailure{
		Failure:  Failure{Test: t, Description: description},
		Expected: exp,
		Actual:   act,
		Diff:     cmp.Diff(exp, act),
	}
}

// Name of an expectation failure is "crucible.ExpectationFailure".
func (f *ExpectationFailure) Name() string {
	return "crucible.ExpectationFailure"
}

// failureKind is implemented by the failure types.
type failureKind interface {
	error
	failure() *Failure
}

// IsFailure returns true iff given error or an error it wraps is a
// Failure or an ExpectationFailure.
func IsFailure(err error) bool {
	var f failureKind
	return errors.As(err, &f)
}

// AsFailure returns the Failure of given error's chain; nil if there is
// none.
func AsFailure(err error) *Failure {
	var f failureKind
	if !errors.As(err, &f) {
		return nil
	}
	return f.failure()
}

// UnexpectedError wraps an error which escaped a test's body without
// being expected.  A test whose body produces an UnexpectedError is
// reported as exception.
type UnexpectedError struct {
	// Test is the test whose body produced the error.
	Test *Test

	// Err is the unexpected error.
	Err error
}

func (e *UnexpectedError) Error() string {
	name := "<nil>"
	if e.Test != nil {
		name = e.Test.Name()
	}
	return fmt.Sprintf("Unexpected %s thrown from test %q: %v",
		ErrorName(e.Err), name, e.Err)
}

// Unwrap returns the unexpected error.
func (e *UnexpectedError) Unwrap() error { return e.Err }

// Format prints with the "%+v" verb the wrapped error's stack trace if
// it has one.
func (e *UnexpectedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s\n%+v", e.Error(), e.Err)
		return
	}
	fmt.Fprint(s, e.Error())
}

// Named is implemented by errors which have a name.  The name of an
// error decides if it matches a test's expectation.
type Named interface {
	Name() string
}

type namedError struct{ name, msg string }

func (e *namedError) Error() string { return e.msg }
func (e *namedError) Name() string  { return e.name }

// NamedError returns an error with given name and message.
func NamedError(name, message string) error {
	return &namedError{name: name, msg: message}
}

// ErrorName returns the name of the first error in given error's chain
// implementing Named.  If there is none the type of the error's root
// cause is returned, e.g. "*errors.errorString".
func ErrorName(err error) string {
	if err == nil {
		return ""
	}
	var n Named
	if errors.As(err, &n) {
		return n.Name()
	}
	root := errors.Cause(err)
	for u := errors.Unwrap(root); u != nil; u = errors.Unwrap(root) {
		root = errors.Cause(u)
	}
	return reflect.TypeOf(root).String()
}

// Panic is the error of a recovered panic whose value isn't an error.
type Panic struct {
	Value interface{}
}

func (p *Panic) Error() string { return fmt.Sprintf("panic: %v", p.Value) }

// Name of a Panic is "panic".
func (p *Panic) Name() string { return "panic" }

// recovered turns a recovered panic value into an error.  Failures and
// the pending signal are returned as they are while other errors get a
// stack trace attached.
func recovered(r interface{}) error {
	err, ok := r.(error)
	if !ok {
		return errors.WithStack(&Panic{Value: r})
	}
	if IsFailure(err) || errors.Is(err, ErrPending) {
		return err
	}
	return errors.WithStack(err)
}
