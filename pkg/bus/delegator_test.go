// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bus

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct{ got []string }

func (r *recorder) HandleEvent(e string) { r.got = append(r.got, "handle:"+e) }
func (r *recorder) Other(e string)       { r.got = append(r.got, "other:"+e) }
func (r *recorder) Wrong(e int)          {}

func Test_delegator_calls_listeners_in_registration_order(t *testing.T) {
	t.Parallel()
	d, log := New[string]("order"), []string{}
	for i := 0; i < 3; i++ {
		i := i
		require.NoError(t, d.Add(func(e string) {
			log = append(log, fmt.Sprintf("%d:%s", i, e))
		}, nil))
	}
	d.Call("x")
	assert.Equal(t, []string{"0:x", "1:x", "2:x"}, log)
	assert.Equal(t, "order", d.Name())
	assert.Equal(t, 3, d.Len())
}

func Test_delegator_calls_named_methods_of_object_listeners(t *testing.T) {
	t.Parallel()
	d, r := New[string](""), &recorder{}
	require.NoError(t, d.Add(r, nil))
	require.NoError(t, d.Add(r, "Other"))
	d.Call("e")
	assert.Equal(t, []string{"handle:e", "other:e"}, r.got)
}

func Test_delegator_rejects_invalid_listeners(t *testing.T) {
	t.Parallel()
	d := New[string]("")
	for _, l := range []struct {
		listener, context interface{}
	}{
		{nil, nil},
		{func(int) {}, nil},
		{&recorder{}, "Missing"},
		{&recorder{}, "Wrong"},
		{&recorder{}, 42},
		{struct{}{}, nil},
	} {
		assert.ErrorIs(t, d.Add(l.listener, l.context), ErrListener)
	}
	assert.Equal(t, 0, d.Len())
}

func Test_delegator_removes_at_most_one_matching_registration(t *testing.T) {
	t.Parallel()
	d, r := New[string](""), &recorder{}
	calls := 0
	fn := func(string) { calls++ }
	ctx := &struct{ n int }{}
	require.NoError(t, d.Add(fn, ctx))
	require.NoError(t, d.Add(fn, ctx))
	require.NoError(t, d.Add(r, "Other"))

	assert.False(t, d.Remove(fn, nil))
	assert.False(t, d.Remove(fn, &struct{ n int }{}))
	assert.True(t, d.Remove(fn, ctx))
	assert.Equal(t, 2, d.Len())
	assert.False(t, d.Remove(r, nil))
	assert.True(t, d.Remove(r, "Other"))
	assert.False(t, d.Remove(r, "Other"))

	d.Call("e")
	assert.Equal(t, 1, calls)
	assert.Empty(t, r.got)
}

func Test_delegator_removes_the_given_closure_of_a_function_literal(
	t *testing.T,
) {
	t.Parallel()
	d, got := New[int](""), []string{}
	ll := []func(int){}
	for _, s := range []string{"a", "b"} {
		ll = append(ll, func(int) { got = append(got, s) })
	}
	for _, l := range ll {
		require.NoError(t, d.Add(l, nil))
	}

	assert.True(t, d.Remove(ll[1], nil))
	assert.False(t, d.Remove(ll[1], nil))

	d.Call(1)
	assert.Equal(t, []string{"a"}, got)
}

func Test_delegator_does_not_isolate_panicking_listeners(t *testing.T) {
	t.Parallel()
	d, reached := New[string](""), false
	require.NoError(t, d.Add(func(string) { panic("boom") }, nil))
	require.NoError(t, d.Add(func(string) { reached = true }, nil))
	assert.Panics(t, func() { d.Call("e") })
	assert.False(t, reached)
}

func Test_listener_changes_take_effect_with_next_call(t *testing.T) {
	t.Parallel()
	d, calls := New[string](""), 0
	var late func(string)
	late = func(string) { calls++ }
	require.NoError(t, d.Add(func(string) {
		_ = d.Add(late, nil)
	}, nil))
	d.Call("first")
	assert.Equal(t, 0, calls)
	d.Call("second")
	assert.Equal(t, 1, calls)
}
