// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crucible

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/iancoleman/orderedmap"
	"golang.org/x/exp/slices"
)

var (
	contextType = reflect.TypeOf((*Context)(nil))
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// SuiteHelpers implementation of a suite passed to FixtureOf provides
// the helpers which make up the created fixture's shared context (see
// FixtureSpec.Helpers).
type SuiteHelpers interface {
	Helpers() []*orderedmap.OrderedMap
}

// FixtureOf creates a fixture with given id and name whose tests are
// the methods of given suite which are public, have exactly one
// argument of type *crucible.Context and return nothing or an error;
// the optional methods SetUp and TearDown of the same signature become
// the fixture's set-up and tear-down:
//
//	type Parser struct{ input string }
//
//	func (s *Parser) SetUp(c *crucible.Context) { s.input = "" }
//
//	func (s *Parser) Parses_empty_input(c *crucible.Context) {
//	    c.AssertEqual(0, len(parse(s.input)))
//	}
//
//	fx, err := crucible.FixtureOf("parser", "", &Parser{})
//
// A test's id is its method's name, e.g. "parser.Parses_empty_input",
// its name is the method name with underscores replaced by blanks, e.g.
// "Parses empty input".  Tests are ordered by the appearance of their
// methods' declarations in the suite's source files; methods without
// source, e.g. promoted methods, follow ordered by name.
// FixtureOf fails with ErrRegistration if given suite has no tests.
func FixtureOf(id, name string, suite interface{}) (*Fixture, error) {
	if suite == nil {
		return nil, fmt.Errorf("%w: nil suite", ErrRegistration)
	}
	spec := FixtureSpec{}
	if h, ok := suite.(SuiteHelpers); ok {
		spec.Helpers = h.Helpers()
	}
	value, rtype := reflect.ValueOf(suite), reflect.TypeOf(suite)
	tests := []suiteTest{}
	for i := 0; i < rtype.NumMethod(); i++ {
		m := rtype.Method(i)
		body, ok := bodyOf(value.Method(i), m.Type)
		if !ok {
			continue
		}
		switch m.Name {
		case "SetUp":
			spec.SetUp = body
			continue
		case "TearDown":
			spec.TearDown = body
			continue
		}
		src, ok := sourceOf(rtype, m.Name)
		tests = append(tests, suiteTest{src: src, located: ok,
			spec: TestSpec{
				ID:   m.Name,
				Name: strings.ReplaceAll(m.Name, "_", " "),
				Body: body,
			}})
	}
	// reflect provides the methods sorted by name
	slices.SortStableFunc(tests, func(a, b suiteTest) bool {
		if a.located != b.located {
			return a.located
		}
		return a.located && a.src.before(b.src)
	})
	for _, t := range tests {
		spec.Tests = append(spec.Tests, t.spec)
	}
	if len(spec.Tests) == 0 {
		return nil, fmt.Errorf("%w: suite %T has no tests",
			ErrRegistration, suite)
	}
	return NewFixture(id, name, spec)
}

type suiteTest struct {
	spec    TestSpec
	src     source
	located bool
}

// bodyOf wraps given bound method into a Body if its method type (the
// receiver being the first argument) takes a *Context and returns
// nothing or an error.
func bodyOf(method reflect.Value, mtype reflect.Type) (Body, bool) {
	if mtype.NumIn() != 2 || mtype.In(1) != contextType {
		return nil, false
	}
	switch {
	case mtype.NumOut() == 0:
		return func(c *Context) error {
			method.Call([]reflect.Value{reflect.ValueOf(c)})
			return nil
		}, true
	case mtype.NumOut() == 1 && mtype.Out(0) == errorType:
		return func(c *Context) error {
			err, _ := method.Call(
				[]reflect.Value{reflect.ValueOf(c)})[0].Interface().(error)
			return err
		}, true
	}
	return nil, false
}
