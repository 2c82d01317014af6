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

package compiler

import "fmt"

// Reason classifies why a file path was refused by Compile.
type Reason string

const (
	ReasonMultipleCatchAll   Reason = "multiple_catch_all"
	ReasonCatchAllNotLast    Reason = "catch_all_not_last"
	ReasonOptionalNotLast    Reason = "optional_not_last"
	ReasonEmptySegment       Reason = "empty_segment"
	ReasonUnknownBracketForm Reason = "unknown_bracket_form"
	ReasonConstraintParse    Reason = "constraint_parse"
)

// CompileError reports a rejected source path together with the offending
// segment and a classification Reason, so callers can pattern-match on
// Reason without parsing Error strings.
type CompileError struct {
	Reason     Reason
	SourcePath string
	Segment    string
	Err        error
}

func (e *CompileError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("compile %q: %s (segment %q)", e.SourcePath, e.Reason, e.Segment)
	}
	return fmt.Sprintf("compile %q: %s", e.SourcePath, e.Reason)
}

func (e *CompileError) Unwrap() error { return e.Err }
