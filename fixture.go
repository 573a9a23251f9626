// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crucible

import (
	"fmt"
	"sync"

	"github.com/iancoleman/orderedmap"
)

// TestSpec describes a test of a fixture.
type TestSpec struct {
	// ID identifies the test within its fixture; it may carry the
	// test's name after a colon.
	ID string

	// Name is the test's human readable name.
	Name string

	// Body is the test's code.
	Body Body
}

// FixtureSpec describes a fixture: its tests, the code run around each
// of them and the helpers making up its shared context.
type FixtureSpec struct {
	// SetUp is called before each test of the fixture.
	SetUp Body

	// TearDown is called after each test of the fixture, even if its
	// SetUp failed.
	TearDown Body

	// Helpers are merged in the given order into the fixture's shared
	// context when it is first accessed; later keys overwrite earlier
	// ones.
	Helpers []*orderedmap.OrderedMap

	// Tests are the fixture's tests in the order they are run.
	Tests []TestSpec
}

// Fixture is a named group of tests sharing set-up, tear-down and a
// mutable context.  The context is created on first access and reused
// by all of the fixture's tests, i.e. changes a test makes persist
// unless the tear-down or the test itself reverts them.
type Fixture struct {
	id, name        string
	setUp, tearDown Body
	helpers         []*orderedmap.OrderedMap

	mutex   sync.Mutex
	tests   []*Test
	context *orderedmap.OrderedMap
}

// NewFixture creates a fixture with given id and name from given spec.
// The ids of the fixture's tests are prefixed by the fixture's id, e.g.
// the test "empty" of fixture "parser" has the id "parser.empty".  The
// fixture's name defaults like a test's name.  NewFixture fails if the
// id is empty or a test spec is malformed.
func NewFixture(id, name string, spec FixtureSpec) (*Fixture, error) {
	id, idName := ParseID(id)
	if id == "" {
		return nil, fmt.Errorf("%w: fixture must be identified",
			ErrRegistration)
	}
	if name == "" {
		name = idName
	}
	if name == "" {
		name = id
	}
	f := &Fixture{
		id:       id,
		name:     name,
		setUp:    spec.SetUp,
		tearDown: spec.TearDown,
		helpers:  spec.Helpers,
	}
	for _, ts := range spec.Tests {
		if _, err := f.Add(ts.ID, ts.Name, ts.Body); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Add creates a test with given id, name and body and appends it to
// the fixture's tests.  See NewTest.
func (f *Fixture) Add(id, name string, body Body) (*Test, error) {
	id, idName := ParseID(id)
	if id == "" {
		return nil, fmt.Errorf("%w: test of fixture %s must be identified",
			ErrRegistration, f.id)
	}
	if name == "" {
		name = idName
	}
	t, err := NewTest(f.id+"."+id, name, body)
	if err != nil {
		return nil, err
	}
	t.fixture = f
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.tests = append(f.tests, t)
	return t, nil
}

// ID returns the fixture's identifier.
func (f *Fixture) ID() string { return f.id }

// Name returns the fixture's human readable name.
func (f *Fixture) Name() string { return f.name }

// Tests returns a copy of the fixture's tests.
func (f *Fixture) Tests() []*Test {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	tt := make([]*Test, len(f.tests))
	copy(tt, f.tests)
	return tt
}

// Context returns the fixture's shared context which is created from
// the fixture's helpers on first access.
func (f *Fixture) Context() *orderedmap.OrderedMap {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	if f.context != nil {
		return f.context
	}
	f.context = orderedmap.New()
	for _, h := range f.helpers {
		if h == nil {
			continue
		}
		for _, k := range h.Keys() {
			v, _ := h.Get(k)
			f.context.Set(k, v)
		}
	}
	return f.context
}

func (f *Fixture) task() {}
