// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bus provides the Delegator, a named channel which transmits
// events to all of its registered listeners.
package bus

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"golang.org/x/exp/slices"
)

// DefaultMethod is the name of the method which is called on an object
// listener registered without a method name.
const DefaultMethod = "HandleEvent"

// ErrListener is returned if a value is added which can't be called
// as a listener.
var ErrListener = errors.New("bus: invalid listener")

// Delegator resembles a concurrency save ordered list of listeners of
// events of type E.  A listener is either a function func(E) or an
// object having a method with signature func(E).  A Delegator must not
// be copied after its first use.
type Delegator[E any] struct {
	name  string
	mutex sync.Mutex
	ll    []delegate[E]
}

type delegate[E any] struct {
	listener interface{}
	context  interface{}
	call     func(E)
}

// New creates a new delegator with given name which may be empty.
func New[E any](name string) *Delegator[E] {
	return &Delegator[E]{name: name}
}

// Name returns the delegator's name.
func (d *Delegator[E]) Name() string { return d.name }

// Len returns the number of registered listeners.
func (d *Delegator[E]) Len() int {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return len(d.ll)
}

// Add appends given listener to the delegator's listeners.  A listener
// of type func(E) is called as is; its context only serves to tell
// registrations of the same function apart when they are removed.  Any
// other non-nil listener is an object whose method named by given
// context is called.  The context must be a method name then and
// defaults to DefaultMethod if nil.  Add fails if given listener is nil,
// if an object listener's context is not a string or if the named
// method doesn't exist or doesn't have the signature func(E).
func (d *Delegator[E]) Add(listener, context interface{}) error {
	dlg, err := newDelegate[E](listener, context)
	if err != nil {
		return err
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.ll = append(d.ll, dlg)
	return nil
}

func newDelegate[E any](listener, context interface{}) (delegate[E], error) {
	if listener == nil {
		return delegate[E]{}, fmt.Errorf("%w: nil", ErrListener)
	}
	if fn, ok := listener.(func(E)); ok {
		if fn == nil {
			return delegate[E]{}, fmt.Errorf("%w: nil function", ErrListener)
		}
		return delegate[E]{listener: listener, context: context, call: fn},
			nil
	}
	if reflect.TypeOf(listener).Kind() == reflect.Func {
		return delegate[E]{}, fmt.Errorf("%w: function of type %T",
			ErrListener, listener)
	}
	name, ok := methodName(context)
	if !ok {
		return delegate[E]{}, fmt.Errorf(
			"%w: method name of %T must be a string; got %T",
			ErrListener, listener, context)
	}
	m := reflect.ValueOf(listener).MethodByName(name)
	if !m.IsValid() {
		return delegate[E]{}, fmt.Errorf("%w: %T has no method %s",
			ErrListener, listener, name)
	}
	fn, ok := m.Interface().(func(E))
	if !ok {
		var zero E
		return delegate[E]{}, fmt.Errorf("%w: %T.%s is not a func(%T)",
			ErrListener, listener, name, zero)
	}
	return delegate[E]{listener: listener, context: name, call: fn}, nil
}

func methodName(context interface{}) (string, bool) {
	if context == nil {
		return DefaultMethod, true
	}
	name, ok := context.(string)
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// Remove removes the first registration of given listener with given
// context and returns true; false is returned if there is no such
// registration.  Functions are identified by the closure they refer
// to, i.e. two closures of the same function literal are different
// listeners while copies of a function value are the same.  Objects
// are identified by equality; the context of an object listener
// defaults to DefaultMethod as in Add.
func (d *Delegator[E]) Remove(listener, context interface{}) bool {
	if listener == nil {
		return false
	}
	isFunc := reflect.TypeOf(listener).Kind() == reflect.Func
	if !isFunc {
		name, ok := methodName(context)
		if !ok {
			return false
		}
		context = name
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()
	i := slices.IndexFunc(d.ll, func(dlg delegate[E]) bool {
		return sameValue(dlg.listener, listener) &&
			sameValue(dlg.context, context)
	})
	if i < 0 {
		return false
	}
	d.ll = slices.Delete(d.ll, i, i+1)
	return true
}

// sameValue compares functions by their closure and other values by ==
// if their type is comparable.
func sameValue(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Kind() == reflect.Func {
		return closureOf(a) == closureOf(b)
	}
	if !ta.Comparable() {
		return false
	}
	return a == b
}

// closureOf returns the address of the closure of the function value
// held by given interface.  A func value is pointer shaped, hence the
// interface's data word is the closure's address.
func closureOf(fn interface{}) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&fn))[1]
}

// Call calls all registered listeners in the order of their
// registration with given event.  Listeners are not isolated from each
// other: a panicking listener prevents the calls of all listeners
// registered after it.  Listeners may add or remove listeners; such
// changes take effect with the next Call.
func (d *Delegator[E]) Call(e E) {
	d.mutex.Lock()
	ll := make([]delegate[E], len(d.ll))
	copy(ll, d.ll)
	d.mutex.Unlock()

	for _, l := range ll {
		l.call(e)
	}
}
