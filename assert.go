// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crucible

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/slukits/crucible/pkg/inspect"
)

// unspecified is the default message of assertions without a more
// specific default.
const unspecified = "(unspecified reason)"

// typeErr default message for failed 'type'-assertion.
const typeErr = "Object should be of type %q."

// definedErr default message for failed 'defined'-assertion.
const definedErr = "Object should not be undefined."

// nullErr default message for failed 'null'-assertion.
const nullErr = "Object should be null."

// notNullErr default message for failed 'not-null'-assertion.
const notNullErr = "Object should not be null."

// containsErr default message for failed 'contains'-assertion.
const containsErr = "%s doesn't contain %s."

// matchedErr default message for failed 'matched'-assertion.
const matchedErr = "Regexp %q doesn't match %s."

// errIsErr default message for failed 'error is'-assertion.
const errIsErr = "Error %v doesn't wrap %v."

// message joins given optional message arguments and falls back to
// given default if there are none.
func message(dflt string, msg []interface{}) string {
	if len(msg) == 0 {
		return dflt
	}
	return fmt.Sprint(msg...)
}

// raise ends the execution of the current body with given failure; the
// executing unit recovers it and reports the test as failed.
func (c *Context) raise(f error) { panic(f) }

// AssertEqual fails the test with an ExpectationFailure iff given values
// are not loosely and deeply equal (see inspect.Equal).
func (c *Context) AssertEqual(expected, actual interface{}, msg ...interface{}) {
	if inspect.Equal(expected, actual) {
		return
	}
	c.raise(NewExpectationFailure(c.test, expected, actual, message("", msg)))
}

// AssertSame fails the test with an ExpectationFailure iff given values
// are not identical (see inspect.Same).
func (c *Context) AssertSame(expected, actual interface{}, msg ...interface{}) {
	if inspect.Same(expected, actual) {
		return
	}
	c.raise(NewExpectationFailure(c.test, expected, actual, message("", msg)))
}

// AssertType fails the test iff given value's type tag (see
// inspect.TypeOf) or its Go type differs from given type name.
func (c *Context) AssertType(typeName string, v interface{}, msg ...interface{}) {
	if inspect.TypeOf(v) == typeName || fmt.Sprintf("%T", v) == typeName {
		return
	}
	c.raise(NewFailure(c.test, message(fmt.Sprintf(typeErr, typeName), msg)))
}

// AssertDefined fails the test iff given value is inspect.Undefined.
func (c *Context) AssertDefined(v interface{}, msg ...interface{}) {
	if !inspect.IsUndefined(v) {
		return
	}
	c.raise(NewFailure(c.test, message(definedErr, msg)))
}

// AssertNull fails the test iff given value is not null (see
// inspect.IsNull).
func (c *Context) AssertNull(v interface{}, msg ...interface{}) {
	if inspect.IsNull(v) {
		return
	}
	c.raise(NewFailure(c.test, message(nullErr, msg)))
}

// AssertNotNull fails the test iff given value is null or undefined.
func (c *Context) AssertNotNull(v interface{}, msg ...interface{}) {
	if !inspect.IsNull(v) && !inspect.IsUndefined(v) {
		return
	}
	c.raise(NewFailure(c.test, message(notNullErr, msg)))
}

// Assert fails the test iff given condition is not truthy (see
// inspect.Truthy).
func (c *Context) Assert(cond interface{}, msg ...interface{}) {
	if inspect.Truthy(cond) {
		return
	}
	c.raise(NewFailure(c.test, message(unspecified, msg)))
}

// AssertFalse fails the test iff given condition is truthy.
func (c *Context) AssertFalse(cond interface{}, msg ...interface{}) {
	if !inspect.Truthy(cond) {
		return
	}
	c.raise(NewFailure(c.test, message(unspecified, msg)))
}

// Fail fails the test unconditionally.
func (c *Context) Fail(msg ...interface{}) {
	c.raise(NewFailure(c.test, message(unspecified, msg)))
}

// FatalOn fails the test iff given error is not nil using the error's
// message as the failure's description.
func (c *Context) FatalOn(err error) {
	if err == nil {
		return
	}
	c.raise(NewFailure(c.test, err.Error()))
}

// AssertContains fails the test iff given value's string representation
// doesn't contain given sub-string.  The string representation of a
// string is the string itself, of a fmt.Stringer the return value of
// its String method and inspect.Inspect's rendering otherwise.
func (c *Context) AssertContains(v interface{}, sub string, msg ...interface{}) {
	str := toString(v)
	if strings.Contains(str, sub) {
		return
	}
	c.raise(NewFailure(c.test, message(fmt.Sprintf(
		containsErr, inspect.Inspect(str), inspect.Inspect(sub)), msg)))
}

// AssertMatched fails the test iff given regular expression doesn't
// match given value's string representation (see AssertContains).  An
// invalid regular expression fails the test as well.
func (c *Context) AssertMatched(v interface{}, re string, msg ...interface{}) {
	str := toString(v)
	rx, err := regexp.Compile(re)
	if err != nil {
		c.raise(NewFailure(c.test, err.Error()))
	}
	if rx.MatchString(str) {
		return
	}
	c.raise(NewFailure(c.test, message(fmt.Sprintf(
		matchedErr, re, inspect.Inspect(str)), msg)))
}

// AssertErrIs fails the test iff given error doesn't wrap given target.
func (c *Context) AssertErrIs(err, target error, msg ...interface{}) {
	if errors.Is(err, target) {
		return
	}
	c.raise(NewFailure(c.test, message(fmt.Sprintf(
		errIsErr, err, target), msg)))
}

func toString(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case fmt.Stringer:
		if !isNilPointer(v) {
			return v.String()
		}
	}
	return inspect.Inspect(v)
}

func isNilPointer(v interface{}) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}
