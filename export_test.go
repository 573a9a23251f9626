// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package crucible

// Unspecified default message of assertions without specific default.
const Unspecified = unspecified

// TypeErr default message for failed 'type'-assertion.
const TypeErr = typeErr

// DefinedErr default message for failed 'defined'-assertion.
const DefinedErr = definedErr

// NullErr default message for failed 'null'-assertion.
const NullErr = nullErr

// NotNullErr default message for failed 'not-null'-assertion.
const NotNullErr = notNullErr

// ContainsErr default message for failed 'contains'-assertion.
const ContainsErr = containsErr

// MatchedErr default message for failed 'matched'-assertion.
const MatchedErr = matchedErr

// ErrIsErr default message for failed 'error is'-assertion.
const ErrIsErr = errIsErr

// Pending is the kind of a suspended body's classification.
const Pending = pending
