// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crucible_test

import (
	"context"
	"testing"

	"github.com/slukits/crucible"
	"github.com/slukits/crucible/testdata/fx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runFixture(t *testing.T, f *crucible.Fixture) *recorder {
	t.Helper()
	r := crucible.New(crucible.Config{})
	require.NoError(t, r.Add(f))
	rec := record(t, r)
	_, err := r.Run(context.Background())
	require.NoError(t, err)
	return rec
}

func Test_a_suite_s_tests_are_run(t *testing.T) {
	suite := &fx.AllSuiteTestsAreRun{Exp: "A_test has been run"}
	f, err := crucible.FixtureOf("fx", "", suite)
	require.NoError(t, err)

	runFixture(t, f)

	assert.Equal(t, suite.Exp, suite.Logs)
}

func Test_a_suite_s_tests_are_its_context_taking_methods(t *testing.T) {
	f, err := crucible.FixtureOf("fx", "", &fx.AllSuiteTestsAreRun{})
	require.NoError(t, err)

	tt := f.Tests()

	require.Len(t, tt, 1)
	assert.Equal(t, "fx.A_test", tt[0].ID())
	assert.Equal(t, "A test", tt[0].Name())
	assert.Same(t, f, tt[0].Fixture())
}

func Test_a_suite_s_set_up_and_tear_down_run_around_each_test(t *testing.T) {
	suite := &fx.SetUpTearDown{}
	f, err := crucible.FixtureOf("fx", "", suite)
	require.NoError(t, err)

	runFixture(t, f)

	assert.Equal(t, "s0ts1t", suite.Logs)
	assert.Len(t, f.Tests(), 2)
}

func Test_a_suite_s_test_outcomes_are_classified(t *testing.T) {
	f, err := crucible.FixtureOf("results", "", &fx.Results{})
	require.NoError(t, err)

	rec := runFixture(t, f)

	assert.Equal(t, crucible.Pass, rec.outcome("results.Passes").Kind)
	assert.Equal(t, crucible.Fail, rec.outcome("results.Fails").Kind)
	o := rec.outcome("results.Returns_an_error")
	assert.Equal(t, crucible.Exception, o.Kind)
	assert.ErrorIs(t, o.Err, fx.ErrSuite)
}

func Test_a_suite_s_tests_are_ordered_by_declaration(t *testing.T) {
	f, err := crucible.FixtureOf("results", "", &fx.Results{})
	require.NoError(t, err)

	rec := runFixture(t, f)

	assert.Equal(t, []string{
		"start", "open:results",
		"run:results.Passes", "pass:results.Passes",
		"result:results.Passes",
		"run:results.Fails", "fail:results.Fails",
		"result:results.Fails",
		"run:results.Returns_an_error",
		"exception:results.Returns_an_error",
		"result:results.Returns_an_error",
		"close:results", "finish",
	}, rec.get())
}

func ids(f *crucible.Fixture) []string {
	ii := []string{}
	for _, t := range f.Tests() {
		ii = append(ii, t.ID())
	}
	return ii
}

func Test_a_suite_s_declaration_order_ignores_receiver_kinds(t *testing.T) {
	f, err := crucible.FixtureOf("fx", "", &fx.Declared{})
	require.NoError(t, err)

	assert.Equal(t, []string{"fx.Zeta", "fx.Alpha", "fx.Mid"}, ids(f))
}

func Test_a_suite_s_promoted_tests_follow_its_declared_tests(t *testing.T) {
	f, err := crucible.FixtureOf("fx", "", &fx.Promoted{})
	require.NoError(t, err)

	assert.Equal(t, []string{"fx.Own", "fx.Inherited"}, ids(f))
}

func Test_a_suite_s_helpers_make_up_the_shared_context(t *testing.T) {
	suite := &fx.Helpers{}
	f, err := crucible.FixtureOf("fx", "", suite)
	require.NoError(t, err)

	runFixture(t, f)

	assert.Equal(t, 42, suite.Got)
}

func Test_a_suite_without_tests_is_rejected(t *testing.T) {
	_, err := crucible.FixtureOf("fx", "", &fx.NoTests{})
	assert.ErrorIs(t, err, crucible.ErrRegistration)
	_, err = crucible.FixtureOf("fx", "", nil)
	assert.ErrorIs(t, err, crucible.ErrRegistration)
}

func Test_fixture_ids_prefix_their_test_ids(t *testing.T) {
	f, err := crucible.NewFixture("parser: Parser", "", crucible.FixtureSpec{
		Tests: []crucible.TestSpec{
			{ID: "empty: parses nothing", Body: pass},
			{ID: "full", Name: "parses all", Body: pass},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "parser", f.ID())
	assert.Equal(t, "Parser", f.Name())
	tt := f.Tests()
	require.Len(t, tt, 2)
	assert.Equal(t, "parser.empty", tt[0].ID())
	assert.Equal(t, "parses nothing", tt[0].Name())
	assert.Equal(t, "parser.full", tt[1].ID())
	assert.Equal(t, "parses all", tt[1].Name())
}

func Test_fixture_rejects_malformed_test_specs(t *testing.T) {
	_, err := crucible.NewFixture("fx", "", crucible.FixtureSpec{
		Tests: []crucible.TestSpec{{ID: "", Body: pass}},
	})
	assert.ErrorIs(t, err, crucible.ErrRegistration)
	_, err = crucible.NewFixture("fx", "", crucible.FixtureSpec{
		Tests: []crucible.TestSpec{{ID: "a"}},
	})
	assert.ErrorIs(t, err, crucible.ErrRegistration)
}

func Test_test_name_defaults_to_its_id(t *testing.T) {
	tst, err := crucible.NewTest(" id ", "", pass)
	require.NoError(t, err)
	assert.Equal(t, "id", tst.ID())
	assert.Equal(t, "id", tst.Name())

	id, name := crucible.ParseID("a.b : c: d")
	assert.Equal(t, "a.b", id)
	assert.Equal(t, "c: d", name)
}
