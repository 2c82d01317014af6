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

// Package constraint defines the closed set of parameter constraints a
// dynamic route segment can carry, and their pure validators.
package constraint

import "regexp"

// Kind identifies one member of the closed constraint set.
type Kind uint8

const (
	// Any accepts every value, including the empty string. It is the
	// default constraint.
	Any Kind = iota
	// Int accepts an optional leading sign followed by one or more digits.
	Int
	// UInt accepts one or more digits.
	UInt
	// Alpha accepts one or more ASCII letters.
	Alpha
	// AlphaNum accepts one or more ASCII letters and digits.
	AlphaNum
	// Slug accepts lowercase letters, digits, and dashes.
	Slug
	// Uuid accepts a standard 8-4-4-4-12 hex UUID.
	Uuid
	// Regex accepts any value matching a caller-supplied pattern.
	Regex
)

// names maps literal constraint tokens (as they appear after ":" in a
// bracketed filesystem segment) to their Kind. Any other token is treated
// as a raw regex pattern.
var names = map[string]Kind{
	"int":      Int,
	"uint":     UInt,
	"alpha":    Alpha,
	"alphanum": AlphaNum,
	"slug":     Slug,
	"uuid":     Uuid,
}

// Constraint is a compiled parameter constraint: a Kind plus, for Regex,
// the compiled pattern.
type Constraint struct {
	Kind    Kind
	Raw     string // original token text; for Regex, the pattern source
	pattern *regexp.Regexp
}

// Parse interprets a constraint token as it appears after the ":" in a
// bracketed segment (e.g. "int", "uuid", or a raw regex). Unknown literal
// tokens are reinterpreted as Regex patterns, never rejected outright,
// unless they fail to compile as a regex.
func Parse(token string) (Constraint, error) {
	if kind, ok := names[token]; ok {
		return Constraint{Kind: kind, Raw: token}, nil
	}
	re, err := regexp.Compile("^(?:" + token + ")$")
	if err != nil {
		return Constraint{}, err
	}
	return Constraint{Kind: Regex, Raw: token, pattern: re}, nil
}

// AnyConstraint is the implicit constraint applied to a parameter with no
// ":token" suffix.
func AnyConstraint() Constraint {
	return Constraint{Kind: Any}
}

// Validate reports whether value satisfies the constraint. Any is always
// true. All other kinds are pure, allocation-free (besides Regex, which
// is bounded by the regexp engine) string predicates over raw, non
// percent-decoded segment text.
func (c Constraint) Validate(value string) bool {
	switch c.Kind {
	case Any:
		return true
	case Int:
		return validateInt(value)
	case UInt:
		return validateDigits(value)
	case Alpha:
		return validateAlpha(value)
	case AlphaNum:
		return validateAlphaNum(value)
	case Slug:
		return validateSlug(value)
	case Uuid:
		return validateUUID(value)
	case Regex:
		if c.pattern == nil {
			return false
		}
		return c.pattern.MatchString(value)
	default:
		return false
	}
}

func validateInt(v string) bool {
	if v == "" {
		return false
	}
	i := 0
	if v[0] == '+' || v[0] == '-' {
		i = 1
	}
	if i == len(v) {
		return false
	}
	return validateDigits(v[i:])
}

func validateDigits(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return true
}

func validateAlpha(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		if !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}

func validateAlphaNum(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		if !isLetter && !isDigit {
			return false
		}
	}
	return true
}

func validateSlug(v string) bool {
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		isLower := c >= 'a' && c <= 'z'
		isDigit := c >= '0' && c <= '9'
		if !isLower && !isDigit && c != '-' {
			return false
		}
	}
	return true
}

// validateUUID checks the standard 8-4-4-4-12 hyphenated hex layout. It
// does not pin an RFC 4122 version or variant nibble; any hex digits in
// the non-dash positions are accepted.
func validateUUID(v string) bool {
	if len(v) != 36 {
		return false
	}
	for i, c := range []byte(v) {
		switch i {
		case 8, 13, 18, 23:
			if c != '-' {
				return false
			}
		default:
			if !isHex(c) {
				return false
			}
		}
	}
	return true
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
