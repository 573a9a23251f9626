// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crucible

import (
	"fmt"
	"strings"
	"sync"

	"github.com/iancoleman/orderedmap"
	"golang.org/x/exp/slices"
)

// Body is the code of a test.  A body passes if it returns nil, fails
// if it returns (or panics with) a Failure, which is what Context's
// assertions do, and throws an exception if it returns or panics with
// any other error unless that error was expected (see Context.Expect).
// Returning ErrPending suspends the test (see Context.Async).
type Body func(c *Context) error

// Task is a registrable unit of a Runner: either a *Test or a *Fixture.
type Task interface {
	// ID returns the task's identifier.
	ID() string

	task()
}

// Test is a named unit of verification code.
type Test struct {
	id, name string
	body     Body
	fixture  *Fixture
	expected expectation

	mutex  sync.Mutex
	shared *orderedmap.OrderedMap
}

// NewTest creates a test with given id, name and body.  The id may
// carry the name after a colon, e.g. "parser.empty: parses nothing".
// An empty name defaults to the name given with the id and then to the
// id.  NewTest fails if the id is empty or the body is nil.
func NewTest(id, name string, body Body) (*Test, error) {
	id, idName := ParseID(id)
	if id == "" {
		return nil, fmt.Errorf("%w: test must be identified", ErrRegistration)
	}
	if body == nil {
		return nil, fmt.Errorf("%w: test %s has no body", ErrRegistration, id)
	}
	if name == "" {
		name = idName
	}
	if name == "" {
		name = id
	}
	return &Test{id: id, name: name, body: body}, nil
}

// ParseID splits given test id at its first colon into the identifier
// and a human readable name; both are trimmed.  The name is empty if
// there is no colon.
func ParseID(id string) (string, string) {
	idx := strings.Index(id, ":")
	if idx < 0 {
		return strings.TrimSpace(id), ""
	}
	return strings.TrimSpace(id[:idx]), strings.TrimSpace(id[idx+1:])
}

// ID returns the test's identifier which is unique within a run.
func (t *Test) ID() string { return t.id }

// Name returns the test's human readable name.
func (t *Test) Name() string { return t.name }

// Fixture returns the fixture the test belongs to or nil.
func (t *Test) Fixture() *Fixture { return t.fixture }

// Expect declares that the test's body must produce an error to pass.
// Without names any error will do; otherwise the error's name (see
// ErrorName) must be one of the given names.  Expect returns the test.
func (t *Test) Expect(names ...string) *Test {
	t.expected = expectationOf(names)
	return t
}

func (t *Test) task() {}

// store returns the shared context of the test's fixture or the
// test's own context if it has no fixture.
func (t *Test) store() *orderedmap.OrderedMap {
	if t.fixture != nil {
		return t.fixture.Context()
	}
	t.mutex.Lock()
	defer t.mutex.Unlock()
	if t.shared == nil {
		t.shared = orderedmap.New()
	}
	return t.shared
}

// expectation is the declaration of the errors a test body must
// produce.
type expectation struct {
	declared bool
	names    []string
}

func expectationOf(names []string) expectation {
	return expectation{declared: true, names: names}
}

func (e expectation) matches(err error) bool {
	if !e.declared || err == nil {
		return false
	}
	if len(e.names) == 0 {
		return true
	}
	return slices.Contains(e.names, ErrorName(err))
}

func (e expectation) String() string {
	if len(e.names) == 0 {
		return "an exception"
	}
	ss := make([]string, len(e.names))
	for i, n := range e.names {
		article := "a"
		if n != "" && strings.ContainsRune("aeiouAEIOU", rune(n[0])) {
			article = "an"
		}
		ss[i] = article + " " + n
	}
	return strings.Join(ss, " or ")
}

// unmet returns the failure of given test whose expectation wasn't met.
func (e expectation) unmet(t *Test) *Failure {
	return NewFailure(t, fmt.Sprintf(
		"Expected %s to be thrown, but none was.", e))
}
