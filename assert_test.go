// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crucible_test

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"testing"

	"github.com/slukits/crucible"
	"github.com/slukits/crucible/pkg/inspect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failureOf returns the description of the failure the test with given
// body fails with; it fails the go test if the test doesn't fail.
func failureOf(t *testing.T, body func(c *crucible.Context)) string {
	t.Helper()
	o := outcomeOf(t, func(c *crucible.Context) error {
		body(c)
		return nil
	})
	require.Equal(t, crucible.Fail, o.Kind, "outcome: %v", o.Err)
	f := crucible.AsFailure(o.Err)
	require.NotNil(t, f)
	return f.Description
}

// passes fails the go test if the test with given body doesn't pass.
func passes(t *testing.T, body func(c *crucible.Context)) {
	t.Helper()
	o := outcomeOf(t, func(c *crucible.Context) error {
		body(c)
		return nil
	})
	require.Equal(t, crucible.Pass, o.Kind, "outcome: %v", o.Err)
}

func Test_assert_equal_compares_structurally(t *testing.T) {
	passes(t, func(c *crucible.Context) {
		c.AssertEqual(
			map[string]interface{}{"a": 1, "b": map[string]int{"c": 2}},
			map[string]interface{}{"b": map[string]int{"c": 2}, "a": 1},
		)
		c.AssertEqual(1, 1.0)
		c.AssertEqual([]int{1, 2}, []interface{}{1, 2})
		c.AssertEqual(nil, inspect.Undefined)
	})
}

func Test_assert_equal_fails_with_an_expectation_failure(t *testing.T) {
	assert.Equal(t, "Expected {a: 1} but actually got {a: 1, b: 2}.",
		failureOf(t, func(c *crucible.Context) {
			c.AssertEqual(map[string]int{"a": 1},
				map[string]int{"a": 1, "b": 2})
		}))
}

func Test_assert_equal_prefixes_description_with_message(t *testing.T) {
	assert.Equal(t, `sum: Expected 4 but actually got 5.`,
		failureOf(t, func(c *crucible.Context) {
			c.AssertEqual(4, 5, "sum")
		}))
}

func Test_assert_equal_considers_nan_unequal(t *testing.T) {
	failureOf(t, func(c *crucible.Context) {
		c.AssertEqual(math.NaN(), math.NaN())
	})
}

func Test_assert_same_checks_identity(t *testing.T) {
	v := &struct{ a int }{}
	passes(t, func(c *crucible.Context) {
		c.AssertSame(v, v)
		c.AssertSame("s", "s")
	})
	failureOf(t, func(c *crucible.Context) {
		c.AssertSame(&struct{ a int }{}, &struct{ a int }{})
	})
}

func Test_assert_type_checks_type_tag_or_go_type(t *testing.T) {
	passes(t, func(c *crucible.Context) {
		c.AssertType("number", 42)
		c.AssertType("string", "s")
		c.AssertType("int", 42)
		c.AssertType("object", map[string]int{})
	})
	assert.Equal(t, fmt.Sprintf(crucible.TypeErr, "string"),
		failureOf(t, func(c *crucible.Context) {
			c.AssertType("string", 42)
		}))
}

func Test_assert_defined_fails_for_undefined(t *testing.T) {
	passes(t, func(c *crucible.Context) { c.AssertDefined(nil) })
	assert.Equal(t, crucible.DefinedErr, failureOf(t,
		func(c *crucible.Context) { c.AssertDefined(c.Get("missing")) }))
}

func Test_assert_null_fails_for_non_nil(t *testing.T) {
	passes(t, func(c *crucible.Context) {
		c.AssertNull(nil)
		c.AssertNull((*int)(nil))
	})
	assert.Equal(t, crucible.NullErr, failureOf(t,
		func(c *crucible.Context) { c.AssertNull(0) }))
	assert.Equal(t, crucible.NullErr, failureOf(t,
		func(c *crucible.Context) { c.AssertNull(inspect.Undefined) }))
}

func Test_assert_not_null_fails_for_nil_or_undefined(t *testing.T) {
	passes(t, func(c *crucible.Context) { c.AssertNotNull(0) })
	assert.Equal(t, crucible.NotNullErr, failureOf(t,
		func(c *crucible.Context) { c.AssertNotNull(nil) }))
	assert.Equal(t, crucible.NotNullErr, failureOf(t,
		func(c *crucible.Context) { c.AssertNotNull(inspect.Undefined) }))
}

func Test_assert_and_assert_false_check_truthiness(t *testing.T) {
	passes(t, func(c *crucible.Context) {
		c.Assert(true)
		c.Assert(1)
		c.Assert("s")
		c.AssertFalse(false)
		c.AssertFalse(0)
		c.AssertFalse("")
		c.AssertFalse(nil)
	})
	assert.Equal(t, crucible.Unspecified, failureOf(t,
		func(c *crucible.Context) { c.Assert(false) }))
	assert.Equal(t, "custom 42", failureOf(t,
		func(c *crucible.Context) { c.AssertFalse(true, "custom ", 42) }))
}

func Test_fail_fails_unconditionally(t *testing.T) {
	assert.Equal(t, crucible.Unspecified, failureOf(t,
		func(c *crucible.Context) { c.Fail() }))
	assert.Equal(t, "reason", failureOf(t,
		func(c *crucible.Context) { c.Fail("reason") }))
}

func Test_failed_assertion_ends_the_body(t *testing.T) {
	reached := false
	failureOf(t, func(c *crucible.Context) {
		c.Fail()
		reached = true
	})
	assert.False(t, reached)
}

func Test_fatal_on_fails_for_an_error(t *testing.T) {
	passes(t, func(c *crucible.Context) { c.FatalOn(nil) })
	assert.Equal(t, "broken", failureOf(t,
		func(c *crucible.Context) { c.FatalOn(errors.New("broken")) }))
}

func Test_assert_contains_checks_string_representation(t *testing.T) {
	passes(t, func(c *crucible.Context) {
		c.AssertContains("haystack", "st")
		c.AssertContains([]int{1, 2}, "1, 2")
	})
	assert.Equal(t, fmt.Sprintf(crucible.ContainsErr, `"hay"`, `"x"`),
		failureOf(t, func(c *crucible.Context) {
			c.AssertContains("hay", "x")
		}))
}

func Test_assert_matched_checks_regular_expression(t *testing.T) {
	passes(t, func(c *crucible.Context) {
		c.AssertMatched("crucible 42", `^cru.*\d+$`)
	})
	assert.Equal(t, fmt.Sprintf(crucible.MatchedErr, `^\d+$`, `"abc"`),
		failureOf(t, func(c *crucible.Context) {
			c.AssertMatched("abc", `^\d+$`)
		}))
	failureOf(t, func(c *crucible.Context) { c.AssertMatched("abc", "(") })
}

func Test_assert_err_is_checks_the_error_chain(t *testing.T) {
	err := fmt.Errorf("open: %w", fs.ErrNotExist)
	passes(t, func(c *crucible.Context) { c.AssertErrIs(err, fs.ErrNotExist) })
	assert.Equal(t,
		fmt.Sprintf(crucible.ErrIsErr, err, fs.ErrExist),
		failureOf(t, func(c *crucible.Context) {
			c.AssertErrIs(err, fs.ErrExist)
		}))
}
