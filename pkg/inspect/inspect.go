// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package inspect renders arbitrary values in a readable form and
// provides the value predicates crucible's assertions are built on.
// Values are looked at the way a dynamically typed test author looks at
// them: numbers are numbers regardless of their Go kind, maps, structs,
// slices and ordered maps are "objects" made of keys and values, nil is
// null and Undefined stands for a value which isn't there at all.
package inspect

import (
	"fmt"
	"math"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/iancoleman/orderedmap"
	"golang.org/x/exp/slices"
)

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined represents a value which isn't there, e.g. the value of a
// missing key in a test's shared context.  Undefined is not null but
// loosely equal to it.
var Undefined interface{} = undefined{}

// IsUndefined returns true iff given value is the Undefined sentinel.
func IsUndefined(v interface{}) bool {
	_, ok := v.(undefined)
	return ok
}

// IsNull returns true iff given value is nil or a nil pointer, map,
// slice, function, channel or interface.
func IsNull(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func,
		reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}

// Type tags reported by TypeOf.
const (
	TypeUndefined = "undefined"
	TypeObject    = "object"
	TypeNumber    = "number"
	TypeString    = "string"
	TypeBoolean   = "boolean"
	TypeFunction  = "function"
)

// TypeOf returns given value's type tag: "undefined" for Undefined,
// "boolean", "number" for all integer and float kinds, "string",
// "function" for non-nil functions and "object" for everything else
// including null.
func TypeOf(v interface{}) string {
	if IsUndefined(v) {
		return TypeUndefined
	}
	if IsNull(v) {
		return TypeObject
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.Bool:
		return TypeBoolean
	case isNumber(rv):
		return TypeNumber
	case rv.Kind() == reflect.String:
		return TypeString
	case rv.Kind() == reflect.Func:
		return TypeFunction
	}
	return TypeObject
}

// Truthy reports if given value counts as true in a condition: null,
// Undefined, false, zero, NaN and the empty string don't; everything
// else does.
func Truthy(v interface{}) bool {
	if IsUndefined(v) || IsNull(v) {
		return false
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Kind() == reflect.Bool:
		return rv.Bool()
	case isNumber(rv):
		f := toFloat(rv)
		return f != 0 && !math.IsNaN(f)
	case rv.Kind() == reflect.String:
		return rv.Len() > 0
	}
	return true
}

// Inspect returns a readable representation of given value, e.g.
//
//	{a: 1, b: "two", c: [true, null]}
//
// Strings are double-quoted with control characters escaped, map keys
// are sorted, struct fields appear in declaration order and ordered maps
// in insertion order.  NOTE cyclic values are not detected and make
// Inspect recurse until the stack is exhausted.
func Inspect(v interface{}) string {
	switch v := v.(type) {
	case undefined:
		return TypeUndefined
	case orderedmap.OrderedMap:
		return inspectOrdered(&v)
	case *orderedmap.OrderedMap:
		if v == nil {
			return "null"
		}
		return inspectOrdered(v)
	}
	if IsNull(v) {
		return "null"
	}
	return inspectValue(reflect.ValueOf(v))
}

func inspectValue(rv reflect.Value) string {
	switch {
	case rv.Kind() == reflect.String:
		return quote(rv.String())
	case rv.Kind() == reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case isInt(rv):
		return strconv.FormatInt(rv.Int(), 10)
	case isUint(rv):
		return strconv.FormatUint(rv.Uint(), 10)
	case isFloat(rv):
		return formatFloat(rv.Float())
	}

	switch rv.Kind() {
	case reflect.Func:
		return "function " + funcName(rv) + "()"
	case reflect.Ptr, reflect.Interface:
		return Inspect(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		ss := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ss[i] = Inspect(rv.Index(i).Interface())
		}
		return "[" + strings.Join(ss, ", ") + "]"
	case reflect.Map:
		byKey := map[string]string{}
		kk := []string{}
		iter := rv.MapRange()
		for iter.Next() {
			k := keyString(iter.Key())
			kk = append(kk, k)
			byKey[k] = Inspect(iter.Value().Interface())
		}
		slices.Sort(kk)
		ss := make([]string, len(kk))
		for i, k := range kk {
			ss[i] = k + ": " + byKey[k]
		}
		return "{" + strings.Join(ss, ", ") + "}"
	case reflect.Struct:
		ss := []string{}
		for i := 0; i < rv.NumField(); i++ {
			f := rv.Type().Field(i)
			if !f.IsExported() {
				continue
			}
			ss = append(ss, f.Name+": "+Inspect(rv.Field(i).Interface()))
		}
		if len(ss) == 0 && rv.CanInterface() {
			return fmt.Sprintf("%v", rv.Interface())
		}
		return "{" + strings.Join(ss, ", ") + "}"
	}
	return fmt.Sprintf("%v", rv.Interface())
}

func inspectOrdered(om *orderedmap.OrderedMap) string {
	ss := []string{}
	for _, k := range om.Keys() {
		v, _ := om.Get(k)
		ss = append(ss, k+": "+Inspect(v))
	}
	return "{" + strings.Join(ss, ", ") + "}"
}

var escaper = strings.NewReplacer(
	"\b", `\b`,
	"\t", `\t`,
	"\n", `\n`,
	"\v", `\v`,
	"\f", `\f`,
	"\r", `\r`,
	`"`, `\"`,
)

func quote(s string) string { return `"` + escaper.Replace(s) + `"` }

// formatFloat renders integral floats without fraction and the special
// values as NaN, Infinity and -Infinity.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == math.Trunc(f) && math.Abs(f) < 1e21:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func funcName(rv reflect.Value) string {
	fn := runtime.FuncForPC(rv.Pointer())
	if fn == nil {
		return ""
	}
	name := fn.Name()
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// keyString renders a map key the way it appears in front of a colon:
// strings unquoted, anything else inspected.
func keyString(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return Inspect(k.Interface())
}

func isInt(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64:
		return true
	}
	return false
}

func isUint(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(rv reflect.Value) bool {
	return rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64
}

func isNumber(rv reflect.Value) bool {
	return isInt(rv) || isUint(rv) || isFloat(rv)
}

func toFloat(rv reflect.Value) float64 {
	switch {
	case isInt(rv):
		return float64(rv.Int())
	case isUint(rv):
		return float64(rv.Uint())
	}
	return rv.Float()
}
