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

// Package compiler turns a filesystem page path into a Compiled pattern:
// a flat segment list, a canonical URL template, a precomputed match
// priority, and the resource metadata (leaf kind, parallel slot, route
// interception) the router needs to slot it into the route table.
//
// Compiled defines a few small types that the router's public surface
// re-exports (InterceptLevel); the constraint type lives in the shared
// constraint package. That avoids an import cycle: router imports compiler
// to compile patterns, so compiler cannot import router back. Callers on
// the router side type-alias the pieces they want to re-export.
package compiler

import (
	"strings"

	"gofsrouter.dev/router/constraint"
)

// SegmentKind classifies one path segment of a compiled pattern.
type SegmentKind uint8

const (
	SegStatic SegmentKind = iota
	SegParam
	SegOptionalParam
	SegCatchAll
	SegOptionalCatchAll
)

// Segment is one element of a Compiled pattern's Segments slice.
type Segment struct {
	Kind       SegmentKind
	Literal    string // set when Kind == SegStatic
	Param      string // set for all dynamic kinds
	Constraint constraint.Constraint
}

// InterceptLevel identifies which ancestor directory an intercepting route
// targets, mirroring the "(.)", "(..)", "(...)", "(....)" directory markers.
type InterceptLevel uint8

const (
	SameLevel InterceptLevel = iota
	OneLevelUp
	FromRoot
	TwoLevelsUp
)

// Intercept records an intercepting route's target level and the pattern it
// intercepts navigation to.
type Intercept struct {
	Level  InterceptLevel
	Target string
}

// LeafKind classifies the reserved leaf file stems (_layout, _error, ...).
// LeafPage is the default for any file that is not a reserved stem.
type LeafKind uint8

const (
	LeafPage LeafKind = iota
	LeafLayout
	LeafError
	LeafLoading
	LeafTemplate
	LeafNotFound
	LeafNoLayoutMarker
)

// Compiled is the result of compiling one filesystem path.
type Compiled struct {
	Canonical     string // the route's own effective URL pattern, e.g. "/users/:id"
	Segments      []Segment
	ParamNames    []string
	HasCatchAll   bool
	DynamicCount  int
	OptionalCount int
	Depth         int
	Priority      int
	Leaf          LeafKind
	LayoutName    string // set when Leaf == LeafLayout and the stem carries "_layout.<name>"
	SlotName      string // set when the path crosses an "@slot" marker
	ParentPattern string // pattern accumulated up to the "@slot" marker
	Intercept     *Intercept
}

const (
	priorityDynamic         = 1
	priorityRequiredCatchAll = 1000
	// priorityOptionalCatchAll deliberately exceeds priorityRequiredCatchAll.
	// A literal "+500 < +1000" formula would rank an optional catch-all
	// ahead of its required sibling at the same location, which contradicts
	// the rule that the required form always wins a tie there.
	priorityOptionalCatchAll = 1500
)

var reservedLeafStems = map[string]LeafKind{
	"_error":    LeafError,
	"loading":   LeafLoading,
	"not-found": LeafNotFound,
	"_template": LeafTemplate,
	"_nolayout": LeafNoLayoutMarker,
}

// Compile classifies and compiles filePath into a Compiled pattern. filePath
// is slash-separated and already relative to the pages root; it retains its
// file extension, which Compile strips before classification.
func Compile(filePath string) (*Compiled, error) {
	rel := stripExt(filePath)
	rel = strings.Trim(rel, "/")

	var rawSegments []string
	if rel != "" {
		rawSegments = strings.Split(rel, "/")
	}

	c := &Compiled{}
	var patternParts []string

	// urlLast is the last position that can contribute a URL segment:
	// trailing route groups and a trailing leaf stem (index, _layout, ...)
	// contribute none, so a catch-all or optional segment just before them
	// still counts as last.
	urlLast := len(rawSegments) - 1
	for urlLast >= 0 {
		raw := rawSegments[urlLast]
		_, reserved := reservedLeafStems[raw]
		isLeafStem := reserved || raw == "index" || raw == "_layout" || strings.HasPrefix(raw, "_layout.")
		if !isGroup(raw) && !(urlLast == len(rawSegments)-1 && isLeafStem) {
			break
		}
		urlLast--
	}

	for i, raw := range rawSegments {
		last := i == len(rawSegments)-1

		if last {
			if kind, ok := reservedLeafStems[raw]; ok {
				c.Leaf = kind
				continue
			}
			if raw == "_layout" {
				c.Leaf = LeafLayout
				continue
			}
			if strings.HasPrefix(raw, "_layout.") {
				c.Leaf = LeafLayout
				c.LayoutName = strings.TrimPrefix(raw, "_layout.")
				continue
			}
			if raw == "index" {
				continue
			}
		}

		switch {
		case raw == "":
			return nil, &CompileError{Reason: ReasonEmptySegment, SourcePath: filePath}

		case isGroup(raw):
			continue

		case isInterceptMarker(raw):
			level := interceptLevelFor(raw)
			target, err := buildInterceptTarget(level, patternParts, rawSegments[i+1:], filePath)
			if err != nil {
				return nil, err
			}
			c.Intercept = &Intercept{Level: level, Target: target}
			continue

		case strings.HasPrefix(raw, "@"):
			slot := raw[1:]
			if slot == "" {
				return nil, &CompileError{Reason: ReasonEmptySegment, SourcePath: filePath, Segment: raw}
			}
			c.SlotName = slot
			c.ParentPattern = joinPattern(patternParts)
			continue

		case strings.HasPrefix(raw, "["):
			seg, err := parseBracket(raw, filePath)
			if err != nil {
				return nil, err
			}
			if seg.Kind == SegCatchAll || seg.Kind == SegOptionalCatchAll {
				if c.HasCatchAll {
					return nil, &CompileError{Reason: ReasonMultipleCatchAll, SourcePath: filePath, Segment: raw}
				}
				if i != urlLast {
					return nil, &CompileError{Reason: ReasonCatchAllNotLast, SourcePath: filePath, Segment: raw}
				}
				c.HasCatchAll = true
			}
			if seg.Kind == SegOptionalParam && i != urlLast {
				return nil, &CompileError{Reason: ReasonOptionalNotLast, SourcePath: filePath, Segment: raw}
			}
			c.Segments = append(c.Segments, seg)
			c.ParamNames = append(c.ParamNames, seg.Param)
			switch seg.Kind {
			case SegParam:
				c.DynamicCount++
			case SegOptionalParam:
				c.DynamicCount++
				c.OptionalCount++
			case SegCatchAll, SegOptionalCatchAll:
				c.OptionalCount++
			}
			patternParts = append(patternParts, tokenFor(seg))

		default:
			c.Segments = append(c.Segments, Segment{Kind: SegStatic, Literal: raw})
			patternParts = append(patternParts, raw)
		}
	}

	c.Canonical = joinPattern(patternParts)
	c.Depth = len(patternParts)
	c.Priority = computePriority(c.Segments)
	return c, nil
}

func computePriority(segs []Segment) int {
	p := 0
	for _, s := range segs {
		switch s.Kind {
		case SegParam, SegOptionalParam:
			p += priorityDynamic
		case SegCatchAll:
			p += priorityRequiredCatchAll
		case SegOptionalCatchAll:
			p += priorityOptionalCatchAll
		}
	}
	return p
}

func tokenFor(s Segment) string {
	switch s.Kind {
	case SegParam:
		return ":" + s.Param
	case SegOptionalParam:
		return ":" + s.Param + "?"
	case SegCatchAll:
		return "*" + s.Param
	case SegOptionalCatchAll:
		return "*" + s.Param + "?"
	default:
		return s.Literal
	}
}

func joinPattern(parts []string) string {
	if len(parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(parts, "/")
}

// stripExt drops the final segment's file extension. A dot inside a
// bracketed or parenthesized token ("[...slug]", "(...)") is part of the
// segment syntax, not an extension, so the remainder after the last dot
// must be extension-shaped (no closing bracket) for anything to be
// stripped.
func stripExt(p string) string {
	i := strings.LastIndexByte(p, '.')
	if i < 0 || i < strings.LastIndexByte(p, '/') {
		return p
	}
	if strings.ContainsAny(p[i+1:], "])") {
		return p
	}
	return p[:i]
}

func isGroup(raw string) bool {
	return len(raw) >= 2 && raw[0] == '(' && raw[len(raw)-1] == ')' && !isInterceptMarker(raw)
}

func isInterceptMarker(raw string) bool {
	switch raw {
	case "(.)", "(..)", "(...)", "(....)":
		return true
	default:
		return false
	}
}

func interceptLevelFor(raw string) InterceptLevel {
	switch raw {
	case "(.)":
		return SameLevel
	case "(..)":
		return OneLevelUp
	case "(...)":
		return FromRoot
	case "(....)":
		return TwoLevelsUp
	default:
		return SameLevel
	}
}

// buildInterceptTarget computes the pattern an intercepting route navigates
// to, per the worked example: target = basePathForLevel(level, containing
// directory seen so far) + the remaining raw segments after the marker
// (themselves classified as ordinary segments for tokenization purposes).
// The route's own effective pattern (Canonical) is unaffected by level: it
// is always containingDir + remaining segments, computed by the caller's
// main loop continuing past this marker.
func buildInterceptTarget(level InterceptLevel, containingDir []string, remaining []string, sourcePath string) (string, error) {
	base := basePathForLevel(level, containingDir)

	var tail []string
	for i, raw := range remaining {
		if raw == "" || isGroup(raw) {
			continue
		}
		if i == len(remaining)-1 {
			// The leaf stem names the file, not a target segment.
			if _, reserved := reservedLeafStems[raw]; reserved || raw == "index" || raw == "_layout" || strings.HasPrefix(raw, "_layout.") {
				continue
			}
		}
		if strings.HasPrefix(raw, "[") {
			seg, err := parseBracket(raw, sourcePath)
			if err != nil {
				return "", err
			}
			tail = append(tail, tokenFor(seg))
			continue
		}
		tail = append(tail, raw)
	}

	parts := append(append([]string{}, base...), tail...)
	return joinPattern(parts), nil
}

func basePathForLevel(level InterceptLevel, containingDir []string) []string {
	switch level {
	case SameLevel:
		return containingDir
	case OneLevelUp:
		return parentOf(containingDir)
	case TwoLevelsUp:
		return parentOf(parentOf(containingDir))
	case FromRoot:
		return nil
	default:
		return containingDir
	}
}

func parentOf(parts []string) []string {
	if len(parts) == 0 {
		return nil
	}
	return parts[:len(parts)-1]
}

// parseBracket parses one bracketed segment body: "[...name]" (catch-all),
// "[[...name]]" (optional catch-all), "[name?]" (optional), "[name]"
// (required), each optionally suffixed with ":constraint".
func parseBracket(raw, sourcePath string) (Segment, error) {
	optionalCatchAll := strings.HasPrefix(raw, "[[") && strings.HasSuffix(raw, "]]")
	if optionalCatchAll {
		raw = raw[1 : len(raw)-1]
	}
	if !strings.HasPrefix(raw, "[") || !strings.HasSuffix(raw, "]") {
		return Segment{}, &CompileError{Reason: ReasonUnknownBracketForm, SourcePath: sourcePath, Segment: raw}
	}
	body := raw[1 : len(raw)-1]

	kind := SegParam
	switch {
	case optionalCatchAll:
		kind = SegOptionalCatchAll
		body = strings.TrimPrefix(body, "...")
	case strings.HasPrefix(body, "..."):
		kind = SegCatchAll
		body = strings.TrimPrefix(body, "...")
	case strings.HasSuffix(body, "?"):
		kind = SegOptionalParam
		body = strings.TrimSuffix(body, "?")
	}

	name := body
	constraintToken := ""
	if idx := strings.IndexByte(body, ':'); idx >= 0 {
		name = body[:idx]
		constraintToken = body[idx+1:]
	}
	if name == "" {
		return Segment{}, &CompileError{Reason: ReasonEmptySegment, SourcePath: sourcePath, Segment: raw}
	}

	cst := constraint.AnyConstraint()
	if constraintToken != "" {
		parsed, err := constraint.Parse(constraintToken)
		if err != nil {
			return Segment{}, &CompileError{Reason: ReasonConstraintParse, SourcePath: sourcePath, Segment: raw, Err: err}
		}
		cst = parsed
	}

	return Segment{Kind: kind, Param: name, Constraint: cst}, nil
}
