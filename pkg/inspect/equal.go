// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package inspect

import (
	"reflect"
	"strconv"

	"github.com/iancoleman/orderedmap"
)

// Equal reports if given values are loosely and deeply equal:
//   - null and Undefined are equal to each other and to nothing else,
//   - numbers are compared by value regardless of their kind, i.e.
//     int(1) equals float64(1), -0 equals +0 while NaN equals nothing,
//   - strings and booleans are compared by value,
//   - values of different primitive kinds are never equal,
//   - two objects (maps, structs with exported fields, slices, arrays
//     or ordered maps) are equal iff every key of a is a key of b with an
//     equal value and every key of b is a key of a,
//   - pointers are followed and functions are equal iff they are the
//     same function,
//   - all other values are compared with reflect.DeepEqual.
//
// NOTE Equal has no protection against cyclic values; comparing them
// recurses until the stack is exhausted.
func Equal(a, b interface{}) bool {
	if isNothing(a) || isNothing(b) {
		return isNothing(a) && isNothing(b)
	}
	objA, okA := objectOf(a)
	objB, okB := objectOf(b)
	if okA || okB {
		return okA && okB && objA.equals(objB)
	}
	return loosely(reflect.ValueOf(a), reflect.ValueOf(b))
}

// Same reports if given values are identical: references (pointers,
// maps, slices, functions, channels) must refer to the same thing,
// other values must be of the same type and equal without any
// conversion; NaN is not the same as NaN.
func Same(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if IsUndefined(a) || IsUndefined(b) {
		return IsUndefined(a) && IsUndefined(b)
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	switch va.Kind() {
	case reflect.Slice:
		return va.Len() == vb.Len() && va.Pointer() == vb.Pointer()
	case reflect.Map, reflect.Func, reflect.Chan, reflect.Ptr,
		reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Float32, reflect.Float64:
		return va.Float() == vb.Float()
	}
	if !va.Type().Comparable() {
		return false
	}
	return identical(a, b)
}

// identical compares given values with == turning a runtime panic
// about an incomparable dynamic value into false.
func identical(a, b interface{}) (same bool) {
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}

func isNothing(v interface{}) bool { return IsNull(v) || IsUndefined(v) }

// object is the key/value view on a value which has "own keys".
type object struct {
	keys   []string
	values map[string]interface{}
}

func (o *object) equals(other *object) bool {
	for _, k := range o.keys {
		v, ok := other.values[k]
		if !ok || !Equal(o.values[k], v) {
			return false
		}
	}
	for _, k := range other.keys {
		if _, ok := o.values[k]; !ok {
			return false
		}
	}
	return true
}

func orderedObject(om *orderedmap.OrderedMap) *object {
	o := &object{values: map[string]interface{}{}}
	for _, k := range om.Keys() {
		v, _ := om.Get(k)
		o.keys = append(o.keys, k)
		o.values[k] = v
	}
	return o
}

// objectOf returns the key/value view of given value and true if it is
// an object; otherwise false is returned.
func objectOf(v interface{}) (*object, bool) {
	switch v := v.(type) {
	case orderedmap.OrderedMap:
		return orderedObject(&v), true
	case *orderedmap.OrderedMap:
		return orderedObject(v), true
	}

	rv, ok := deref(reflect.ValueOf(v))
	if !ok {
		return nil, false
	}
	o := &object{values: map[string]interface{}{}}
	add := func(k string, v reflect.Value) {
		o.keys = append(o.keys, k)
		o.values[k] = v.Interface()
	}
	switch rv.Kind() {
	case reflect.Map:
		iter := rv.MapRange()
		for iter.Next() {
			add(keyString(iter.Key()), iter.Value())
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			add(strconv.Itoa(i), rv.Index(i))
		}
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			if f := rv.Type().Field(i); f.IsExported() {
				add(f.Name, rv.Field(i))
			}
		}
		if len(o.keys) == 0 {
			return nil, false
		}
	default:
		return nil, false
	}
	return o, true
}

// deref follows pointers and interfaces; it returns false if it hits a
// nil.
func deref(rv reflect.Value) (reflect.Value, bool) {
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return rv, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}

func loosely(a, b reflect.Value) bool {
	a, okA := deref(a)
	b, okB := deref(b)
	if !okA || !okB {
		return !okA && !okB
	}
	switch {
	case isNumber(a) && isNumber(b):
		return numbersEqual(a, b)
	case isNumber(a) || isNumber(b):
		return false
	case a.Kind() == reflect.String && b.Kind() == reflect.String:
		return a.String() == b.String()
	case a.Kind() == reflect.Bool && b.Kind() == reflect.Bool:
		return a.Bool() == b.Bool()
	case a.Kind() == reflect.Func && b.Kind() == reflect.Func:
		return a.Pointer() == b.Pointer()
	}
	if a.Type() != b.Type() || !a.CanInterface() || !b.CanInterface() {
		return false
	}
	return reflect.DeepEqual(a.Interface(), b.Interface())
}

func numbersEqual(a, b reflect.Value) bool {
	switch {
	case isInt(a) && isInt(b):
		return a.Int() == b.Int()
	case isUint(a) && isUint(b):
		return a.Uint() == b.Uint()
	case isInt(a) && isUint(b):
		return a.Int() >= 0 && uint64(a.Int()) == b.Uint()
	case isUint(a) && isInt(b):
		return b.Int() >= 0 && a.Uint() == uint64(b.Int())
	}
	return toFloat(a) == toFloat(b)
}
