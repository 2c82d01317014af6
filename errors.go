// Copyright 2025 The GoFSRouter Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package router

import (
	"errors"
	"fmt"

	"gofsrouter.dev/router/compiler"
)

// Static errors for better error handling and testing. These should be
// wrapped with fmt.Errorf and %w when additional context is needed.
var (
	ErrNameNotRegistered  = errors.New("no route registered under that name")
	ErrEmptyRedirectTo    = errors.New("redirect target pattern must not be empty")
	ErrEmptyCatchAllValue = errors.New("catch-all parameter requires a non-empty value")
)

// InvalidPatternError reports that the pattern compiler refused a source
// path. Reason classifies why, mirroring compiler.Reason.
type InvalidPatternError struct {
	SourcePath string
	Reason     compiler.Reason
	Err        error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %s", e.SourcePath, e.Reason)
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }

// ConstraintParseError reports that a constraint token could not be
// interpreted, either as a literal name or as a regular expression.
type ConstraintParseError struct {
	Token string
	Err   error
}

func (e *ConstraintParseError) Error() string {
	return fmt.Sprintf("constraint parse %q: %v", e.Token, e.Err)
}

func (e *ConstraintParseError) Unwrap() error { return e.Err }

// NameCollisionError reports that WithName was given a name already owned
// by another route.
type NameCollisionError struct {
	Name     string
	Existing string // canonical pattern of the route that already owns Name
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("route name %q already registered to %q", e.Name, e.Existing)
}

// MissingParameterError reports that GenerateURL was called without a
// binding required by the pattern.
type MissingParameterError struct {
	Pattern string
	Param   string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter %q for pattern %q", e.Param, e.Pattern)
}

// ConstraintViolationError reports that a bound or captured value does not
// satisfy its parameter's constraint.
type ConstraintViolationError struct {
	Pattern string
	Param   string
	Value   string
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("value %q for parameter %q violates its constraint (pattern %q)", e.Value, e.Param, e.Pattern)
}
