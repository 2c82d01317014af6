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
	"fmt"
	"strings"

	"gofsrouter.dev/router/compiler"
	"gofsrouter.dev/router/constraint"
)

// Route is a compiled pattern plus builder-configurable metadata: layout
// policy, name, aliases, a meta key/value map, and an optional redirect
// target. Routes are constructed by Compile (from a filesystem path) or
// Redirect, refined via the With* builder methods (each returns the same
// *Route, preserving identity), and registered with Router.AddRoute.
type Route struct {
	pattern    string
	sourcePath string
	segments   []compiler.Segment
	paramNames []string

	hasCatchAll   bool
	dynamicCount  int
	optionalCount int
	depth         int
	priority      int

	kind            Kind
	layoutName      string
	slotName        string
	parentPattern   string
	interceptLevel  InterceptLevel
	interceptTarget string

	layoutOption LayoutOption
	name         string
	aliases      []aliasEntry
	meta         map[string]string

	redirectTo     string
	redirectStatus int
}

type aliasEntry struct {
	pattern  string
	segments []compiler.Segment
}

// Compile parses sourcePath (a slash-separated file path relative to the
// pages root, retaining its extension) into a Route via the pattern
// compiler, with LayoutOption defaulted to Inherit and no name, aliases,
// meta, or redirect set.
func Compile(sourcePath string) (*Route, error) {
	c, err := compiler.Compile(sourcePath)
	if err != nil {
		if ce, ok := err.(*compiler.CompileError); ok {
			if ce.Reason == compiler.ReasonConstraintParse {
				return nil, &ConstraintParseError{Token: ce.Segment, Err: ce}
			}
			return nil, &InvalidPatternError{SourcePath: sourcePath, Reason: ce.Reason, Err: ce}
		}
		return nil, err
	}

	rt := &Route{
		pattern:       c.Canonical,
		sourcePath:    sourcePath,
		segments:      c.Segments,
		paramNames:    c.ParamNames,
		hasCatchAll:   c.HasCatchAll,
		dynamicCount:  c.DynamicCount,
		optionalCount: c.OptionalCount,
		depth:         c.Depth,
		priority:      c.Priority,
		layoutName:    c.LayoutName,
		slotName:      c.SlotName,
		parentPattern: c.ParentPattern,
		layoutOption:  Inherit(),
	}
	rt.kind = kindFromLeaf(c.Leaf, c.Intercept, c.SlotName)
	if c.Intercept != nil {
		rt.interceptLevel = c.Intercept.Level
		rt.interceptTarget = c.Intercept.Target
	}
	return rt, nil
}

// Redirect constructs a Route at pattern from whose RouteMatch reports
// redirectTarget/redirectStatus instead of being rendered directly. from is
// a URL pattern in canonical token form (":name", ":name?", "*name",
// "*name?"), not a file path, and is tokenized by routeFromURLPattern
// rather than the filesystem compiler; to is a destination pattern of the
// same token shape, substituted with the matched bindings at resolution
// time.
func Redirect(from, to string, status int) (*Route, error) {
	if to == "" {
		return nil, ErrEmptyRedirectTo
	}
	rt, err := routeFromURLPattern(from)
	if err != nil {
		return nil, err
	}
	rt.redirectTo = to
	rt.redirectStatus = status
	return rt, nil
}

// routeFromURLPattern compiles an already-canonical URL pattern (as opposed
// to a filesystem path) by tokenizing its ":name"/"*name" tokens directly
// into compiler.Segment values, so redirect sources and aliases share one
// matching implementation with ordinary page routes. Every parameter it
// produces carries the Any constraint.
func routeFromURLPattern(pattern string) (*Route, error) {
	trimmed := strings.Trim(pattern, "/")
	var segs []compiler.Segment
	var names []string
	depth := 0
	hasCatchAll := false
	dynamicCount, optionalCount := 0, 0
	priority := 0

	if trimmed != "" {
		parts := strings.Split(trimmed, "/")
		for _, p := range parts {
			switch {
			case strings.HasPrefix(p, "*"):
				name := strings.TrimPrefix(p, "*")
				optional := strings.HasSuffix(name, "?")
				name = strings.TrimSuffix(name, "?")
				kind := compiler.SegCatchAll
				if optional {
					kind = compiler.SegOptionalCatchAll
					priority += 1500
				} else {
					priority += 1000
				}
				hasCatchAll = true
				optionalCount++
				segs = append(segs, compiler.Segment{Kind: kind, Param: name, Constraint: constraint.AnyConstraint()})
				names = append(names, name)
			case strings.HasPrefix(p, ":"):
				name := strings.TrimPrefix(p, ":")
				optional := strings.HasSuffix(name, "?")
				name = strings.TrimSuffix(name, "?")
				kind := compiler.SegParam
				if optional {
					kind = compiler.SegOptionalParam
					optionalCount++
				}
				dynamicCount++
				priority++
				segs = append(segs, compiler.Segment{Kind: kind, Param: name, Constraint: constraint.AnyConstraint()})
				names = append(names, name)
			default:
				segs = append(segs, compiler.Segment{Kind: compiler.SegStatic, Literal: p})
			}
			depth++
		}
	}

	return &Route{
		pattern:       "/" + trimmed,
		sourcePath:    pattern,
		segments:      segs,
		paramNames:    names,
		hasCatchAll:   hasCatchAll,
		dynamicCount:  dynamicCount,
		optionalCount: optionalCount,
		depth:         depth,
		priority:      priority,
		kind:          KindPage,
		layoutOption:  Inherit(),
	}, nil
}

// Pattern returns the route's canonical URL pattern.
func (rt *Route) Pattern() string { return rt.pattern }

// SourcePath returns the filesystem path the route was compiled from.
func (rt *Route) SourcePath() string { return rt.sourcePath }

// Kind returns the route's resource kind.
func (rt *Route) Kind() Kind { return rt.kind }

// Name returns the route's registered name, or "" if unnamed.
func (rt *Route) Name() string { return rt.name }

// Depth returns the route's pattern depth (non-group, non-slot,
// non-intercepting-marker segment count).
func (rt *Route) Depth() int { return rt.depth }

// Priority returns the route's precomputed match priority; lower wins.
func (rt *Route) Priority() int { return rt.priority }

// HasCatchAll reports whether the pattern ends in a catch-all segment.
func (rt *Route) HasCatchAll() bool { return rt.hasCatchAll }

// ParamNames returns the route's ordered parameter names.
func (rt *Route) ParamNames() []string { return rt.paramNames }

// LayoutOption returns the route's current layout policy.
func (rt *Route) LayoutOption() LayoutOption { return rt.layoutOption }

// SlotName returns the parallel-slot name, valid when Kind == KindParallelSlot.
func (rt *Route) SlotName() string { return rt.slotName }

// ParentPattern returns the parallel-slot's parent pattern, valid when
// Kind == KindParallelSlot.
func (rt *Route) ParentPattern() string { return rt.parentPattern }

// InterceptLevel returns the interception level, valid when
// Kind == KindIntercepting.
func (rt *Route) InterceptLevel() InterceptLevel { return rt.interceptLevel }

// InterceptTarget returns the interception target pattern, valid when
// Kind == KindIntercepting.
func (rt *Route) InterceptTarget() string { return rt.interceptTarget }

// IsRedirect reports whether the route carries a redirect target.
func (rt *Route) IsRedirect() bool { return rt.redirectTo != "" }

// Aliases returns the route's registered alias patterns.
func (rt *Route) Aliases() []string {
	out := make([]string, len(rt.aliases))
	for i, a := range rt.aliases {
		out[i] = a.pattern
	}
	return out
}

// Meta returns the value stored under key, and whether it was present.
func (rt *Route) Meta(key string) (string, bool) {
	v, ok := rt.meta[key]
	return v, ok
}

// WithLayoutOption sets the route's layout policy and returns rt.
func (rt *Route) WithLayoutOption(opt LayoutOption) *Route {
	rt.layoutOption = opt
	return rt
}

// WithNoLayout suppresses layout inheritance for this route.
func (rt *Route) WithNoLayout() *Route { return rt.WithLayoutOption(NoLayout()) }

// WithRootLayout makes this route use the layout registered at "/".
func (rt *Route) WithRootLayout() *Route { return rt.WithLayoutOption(RootLayout()) }

// WithNamedLayout makes this route use the nearest ancestor layout
// registered under name n.
func (rt *Route) WithNamedLayout(n string) *Route { return rt.WithLayoutOption(NamedLayout(n)) }

// WithLayoutPattern makes this route use the layout registered at exactly p.
func (rt *Route) WithLayoutPattern(p string) *Route { return rt.WithLayoutOption(PatternLayout(p)) }

// WithName sets the route's unique name. Actual uniqueness is enforced by
// Router.AddRoute, since a bare Route has no view of the name index.
func (rt *Route) WithName(n string) *Route {
	rt.name = n
	return rt
}

// WithAlias compiles p as a shadow pattern for this route: it participates
// in matching but not in priority-sorted position.
func (rt *Route) WithAlias(p string) *Route {
	return rt.WithAliases(p)
}

// WithAliases compiles each pattern in ps as a shadow pattern for this route.
func (rt *Route) WithAliases(ps ...string) *Route {
	for _, p := range ps {
		alias, err := routeFromURLPattern(p)
		if err != nil {
			continue
		}
		rt.aliases = append(rt.aliases, aliasEntry{pattern: alias.pattern, segments: alias.segments})
	}
	return rt
}

// WithMeta sets a single metadata key. A later call with the same key
// replaces the prior value.
func (rt *Route) WithMeta(k, v string) *Route {
	if rt.meta == nil {
		rt.meta = make(map[string]string)
	}
	rt.meta[k] = v
	return rt
}

// WithMetadata merges m into the route's metadata map; later keys replace.
func (rt *Route) WithMetadata(m map[string]string) *Route {
	for k, v := range m {
		rt.WithMeta(k, v)
	}
	return rt
}

// Matches reports whether path matches this route's primary pattern or any
// of its aliases, returning the captured parameter bindings on success.
// Matching is case-sensitive; Router.MatchRoute applies its own
// case-insensitive mode by calling matchSegments directly.
func (rt *Route) Matches(path string) (map[string]string, bool) {
	segs := splitPath(path)
	if b, ok := matchSegments(rt.segments, segs, false); ok {
		return b, true
	}
	for _, a := range rt.aliases {
		if b, ok := matchSegments(a.segments, segs, false); ok {
			return b, true
		}
	}
	return nil, false
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func equalStatic(a, b string, caseInsensitive bool) bool {
	if !caseInsensitive {
		return a == b
	}
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if asciiLower(a[i]) != asciiLower(b[i]) {
			return false
		}
	}
	return true
}

func asciiLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// matchSegments walks a compiled segment list against a split request path
// in lock-step: static segments compare byte-for-byte (optionally
// case-insensitively), dynamic segments capture and validate, catch-all
// segments consume the remainder. Its only allocations are the bindings
// map and, for a catch-all, the joined remainder string.
func matchSegments(segs []compiler.Segment, pathSegs []string, caseInsensitive bool) (map[string]string, bool) {
	bindings := make(map[string]string, len(segs))
	j := 0
	for i := 0; i < len(segs); i++ {
		seg := segs[i]
		switch seg.Kind {
		case compiler.SegStatic:
			if j >= len(pathSegs) || !equalStatic(pathSegs[j], seg.Literal, caseInsensitive) {
				return nil, false
			}
			j++
		case compiler.SegParam:
			if j >= len(pathSegs) {
				return nil, false
			}
			val := pathSegs[j]
			if !seg.Constraint.Validate(val) {
				return nil, false
			}
			bindings[seg.Param] = val
			j++
		case compiler.SegOptionalParam:
			if j < len(pathSegs) {
				val := pathSegs[j]
				if !seg.Constraint.Validate(val) {
					return nil, false
				}
				bindings[seg.Param] = val
				j++
			} else {
				bindings[seg.Param] = ""
			}
		case compiler.SegCatchAll:
			if j >= len(pathSegs) {
				return nil, false
			}
			val := strings.Join(pathSegs[j:], "/")
			if !seg.Constraint.Validate(val) {
				return nil, false
			}
			bindings[seg.Param] = val
			j = len(pathSegs)
		case compiler.SegOptionalCatchAll:
			val := ""
			if j < len(pathSegs) {
				val = strings.Join(pathSegs[j:], "/")
				if !seg.Constraint.Validate(val) {
					return nil, false
				}
			}
			bindings[seg.Param] = val
			j = len(pathSegs)
		}
	}
	if j != len(pathSegs) {
		return nil, false
	}
	return bindings, true
}

// GenerateURL substitutes params into the route's pattern tokens, failing
// if a required parameter is missing or violates its constraint. Optional
// parameters are omitted when absent. Extra entries in params are ignored.
// Values are emitted raw, with no percent-encoding: matching captures raw
// segment text without decoding, so generation writes raw text without
// encoding, and a generated URL matched again yields the original bindings
// byte for byte.
func (rt *Route) GenerateURL(params map[string]string) (string, error) {
	var b strings.Builder
	b.WriteByte('/')
	wrote := false

	for _, seg := range rt.segments {
		switch seg.Kind {
		case compiler.SegStatic:
			if wrote {
				b.WriteByte('/')
			}
			b.WriteString(seg.Literal)
			wrote = true
		case compiler.SegParam:
			val, ok := params[seg.Param]
			if !ok {
				return "", &MissingParameterError{Pattern: rt.pattern, Param: seg.Param}
			}
			if !seg.Constraint.Validate(val) {
				return "", &ConstraintViolationError{Pattern: rt.pattern, Param: seg.Param, Value: val}
			}
			if wrote {
				b.WriteByte('/')
			}
			b.WriteString(val)
			wrote = true
		case compiler.SegOptionalParam:
			val, ok := params[seg.Param]
			if !ok || val == "" {
				continue
			}
			if !seg.Constraint.Validate(val) {
				return "", &ConstraintViolationError{Pattern: rt.pattern, Param: seg.Param, Value: val}
			}
			if wrote {
				b.WriteByte('/')
			}
			b.WriteString(val)
			wrote = true
		case compiler.SegCatchAll:
			val, ok := params[seg.Param]
			if !ok {
				return "", &MissingParameterError{Pattern: rt.pattern, Param: seg.Param}
			}
			if val == "" {
				return "", fmt.Errorf("pattern %q, parameter %q: %w", rt.pattern, seg.Param, ErrEmptyCatchAllValue)
			}
			if !seg.Constraint.Validate(val) {
				return "", &ConstraintViolationError{Pattern: rt.pattern, Param: seg.Param, Value: val}
			}
			if wrote {
				b.WriteByte('/')
			}
			b.WriteString(val)
			wrote = true
		case compiler.SegOptionalCatchAll:
			val, ok := params[seg.Param]
			if !ok || val == "" {
				continue
			}
			if !seg.Constraint.Validate(val) {
				return "", &ConstraintViolationError{Pattern: rt.pattern, Param: seg.Param, Value: val}
			}
			if wrote {
				b.WriteByte('/')
			}
			b.WriteString(val)
			wrote = true
		}
	}

	if !wrote {
		return "/", nil
	}
	return b.String(), nil
}

// generateRedirectURL substitutes bindings into rt.redirectTo, reusing the
// same token grammar GenerateURL uses (the target is compiled on demand,
// since redirect targets are rare relative to matches and are not on the
// hot path).
func (rt *Route) generateRedirectURL(bindings map[string]string) (string, error) {
	target, err := routeFromURLPattern(rt.redirectTo)
	if err != nil {
		return "", err
	}
	return target.GenerateURL(bindings)
}
