// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package inspect

import (
	"math"
	"testing"

	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/assert"
)

func Test_inspect_renders_primitives(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "null", Inspect(nil))
	assert.Equal(t, "undefined", Inspect(Undefined))
	assert.Equal(t, "42", Inspect(42))
	assert.Equal(t, "42", Inspect(uint8(42)))
	assert.Equal(t, "1.5", Inspect(1.5))
	assert.Equal(t, "100", Inspect(100.0))
	assert.Equal(t, "NaN", Inspect(math.NaN()))
	assert.Equal(t, "-Infinity", Inspect(math.Inf(-1)))
	assert.Equal(t, "true", Inspect(true))
}

func Test_inspect_quotes_and_escapes_strings(t *testing.T) {
	t.Parallel()
	assert.Equal(t, `"say \"hi\"\n\tnow"`, Inspect("say \"hi\"\n\tnow"))
}

func namedForInspection() {}

func Test_inspect_renders_functions_by_name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "function namedForInspection()",
		Inspect(namedForInspection))
}

func Test_inspect_renders_objects(t *testing.T) {
	t.Parallel()
	type point struct {
		X, Y   int
		hidden string
	}
	assert.Equal(t, "{X: 1, Y: 2}", Inspect(point{X: 1, Y: 2}))
	assert.Equal(t, "{X: 1, Y: 2}", Inspect(&point{X: 1, Y: 2}))
	assert.Equal(t, `[1, "two", null]`, Inspect([]interface{}{1, "two", nil}))
	assert.Equal(t, `{a: 1, b: {c: 2}}`, Inspect(map[string]interface{}{
		"b": map[string]int{"c": 2}, "a": 1}))
}

func Test_inspect_keeps_ordered_map_key_order(t *testing.T) {
	t.Parallel()
	om := orderedmap.New()
	om.Set("z", 1)
	om.Set("a", "x")
	assert.Equal(t, `{z: 1, a: "x"}`, Inspect(om))
	assert.Equal(t, `{z: 1, a: "x"}`, Inspect(*om))
}

func Test_type_of_reports_type_tags(t *testing.T) {
	t.Parallel()
	assert.Equal(t, TypeUndefined, TypeOf(Undefined))
	assert.Equal(t, TypeObject, TypeOf(nil))
	assert.Equal(t, TypeNumber, TypeOf(3))
	assert.Equal(t, TypeNumber, TypeOf(float32(3)))
	assert.Equal(t, TypeString, TypeOf(""))
	assert.Equal(t, TypeBoolean, TypeOf(false))
	assert.Equal(t, TypeFunction, TypeOf(namedForInspection))
	assert.Equal(t, TypeObject, TypeOf(map[string]int{}))
	assert.Equal(t, TypeObject, TypeOf(struct{}{}))
}

func Test_truthy_follows_condition_semantics(t *testing.T) {
	t.Parallel()
	for _, v := range []interface{}{
		nil, Undefined, false, 0, 0.0, math.NaN(), "", (*int)(nil),
	} {
		assert.False(t, Truthy(v), "%#v", v)
	}
	for _, v := range []interface{}{
		true, 1, -1.5, "0", struct{}{}, []int{}, map[string]int{},
	} {
		assert.True(t, Truthy(v), "%#v", v)
	}
}

func Test_null_covers_typed_nils(t *testing.T) {
	t.Parallel()
	var m map[string]int
	var s []int
	var err error
	assert.True(t, IsNull(nil))
	assert.True(t, IsNull(m))
	assert.True(t, IsNull(s))
	assert.True(t, IsNull(err))
	assert.True(t, IsNull((*int)(nil)))
	assert.False(t, IsNull(0))
	assert.False(t, IsNull(Undefined))
	assert.True(t, IsUndefined(Undefined))
	assert.False(t, IsUndefined(nil))
}
