//
// Copyright 2020 OpenDP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package base

import (
	"errors"
	"fmt"
)

// ErrorKind is an enum type. Its values classify the failures an analysis
// call may return. A silently skipped analysis step could produce an unsound
// privacy guarantee, so every failure carries an identifying kind and is
// propagated to the caller rather than recovered from.
type ErrorKind int

// Failure classes of per-node analysis calls.
const (
	// MissingArgument indicates a required input is absent from a node's
	// NodeProperties.
	MissingArgument ErrorKind = iota
	// UnsupportedShape indicates an input has a shape the node kind cannot
	// analyze.
	UnsupportedShape
	// AlreadyAggregated indicates sensitivity was requested on a property
	// that carries an aggregator snapshot.
	AlreadyAggregated
	// UnsupportedSensitivitySpace indicates the requested sensitivity space
	// is not implemented by the node kind.
	UnsupportedSensitivitySpace
	// CapabilityNotImplemented indicates dispatch reached a node kind with no
	// implementation of the requested capability.
	CapabilityNotImplemented
	// UnsupportedNeighboringDefinition indicates the privacy definition's
	// neighboring relation is not one of the recognized values.
	UnsupportedNeighboringDefinition
)

var errorKindName = map[ErrorKind]string{
	MissingArgument:                  "MissingArgument",
	UnsupportedShape:                 "UnsupportedShape",
	AlreadyAggregated:                "AlreadyAggregated",
	UnsupportedSensitivitySpace:      "UnsupportedSensitivitySpace",
	CapabilityNotImplemented:         "CapabilityNotImplemented",
	UnsupportedNeighboringDefinition: "UnsupportedNeighboringDefinition",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindName[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the error type returned by analysis calls.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// Errorf returns an *Error of the given kind with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the ErrorKind from err. The second return value reports
// whether err (or an error it wraps) is an analysis *Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// ErrUnknownCategories is returned by Property.KnownCategories when the
// per-column value domain is not statically known. It is deliberately not
// part of the ErrorKind taxonomy: unknown categories are an expected state
// callers branch on, not an analysis failure.
var ErrUnknownCategories = errors.New("categories are not defined")
