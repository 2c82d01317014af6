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

import "gofsrouter.dev/router/pathutil"

// NormalizePath re-exports pathutil.Normalize as the router's public path
// normalization entry point, so callers never need to import pathutil
// directly just to prepare a request path for MatchRoute.
func NormalizePath(p string) string { return pathutil.Normalize(p) }

// IsValidPath re-exports pathutil.IsValid.
func IsValidPath(p string) bool { return pathutil.IsValid(p) }

// resolveInTable walks the hierarchy from pattern up to "/", returning the
// first entry found in tbl. It does not consult no-layout barriers; that
// is layered on top by GetLayout, since barriers only ever apply to layout
// resolution.
func resolveInTable(tbl map[string]*Route, pattern string) (*Route, bool) {
	h := pathutil.NewHierarchy(NormalizePath(pattern))
	for {
		p, ok := h.Next()
		if !ok {
			return nil, false
		}
		if rt, ok := tbl[p]; ok {
			return rt, true
		}
	}
}

// GetErrorPage returns the nearest error page at or above pattern.
func (r *Router) GetErrorPage(pattern string) (*Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return resolveInTable(r.errorPages, pattern)
}

// GetLoadingPage returns the nearest loading page at or above pattern.
func (r *Router) GetLoadingPage(pattern string) (*Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return resolveInTable(r.loadingPages, pattern)
}

// GetTemplate returns the nearest template at or above pattern.
func (r *Router) GetTemplate(pattern string) (*Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return resolveInTable(r.templates, pattern)
}

// GetNotFoundPage returns the nearest not-found page at or above pattern.
func (r *Router) GetNotFoundPage(pattern string) (*Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return resolveInTable(r.notFoundPages, pattern)
}

// GetLayout resolves the layout that should wrap pattern, honoring the
// route registered at pattern's own LayoutOption (if any route is
// registered exactly there) and the _nolayout barrier.
//
// Resolution order:
//  1. If a route is registered exactly at pattern with a non-Inherit
//     LayoutOption, that option is authoritative: None -> absent,
//     Root -> the layout at "/", Named(n) -> the nearest ancestor named
//     layout, Pattern(p) -> the layout registered at exactly p.
//  2. Otherwise (Inherit, or no route registered at pattern), walk the
//     hierarchy from pattern upward, returning the first layout found,
//     unless a _nolayout barrier sits at a strict ancestor of pattern
//     reached no later than that layout (a barrier at the layout's own
//     path included), in which case resolution stops and returns absent.
func (r *Router) GetLayout(pattern string) (*Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pattern = NormalizePath(pattern)

	if rt, ok := r.routeAt(pattern); ok {
		switch rt.layoutOption.mode {
		case layoutNone:
			return nil, false
		case layoutRoot:
			return r.layouts["/"], r.layouts["/"] != nil
		case layoutNamed:
			return r.resolveNamedLayout(pattern, rt.layoutOption.name)
		case layoutPattern:
			lt, ok := r.layouts[NormalizePath(rt.layoutOption.pattern)]
			return lt, ok
		}
	}

	return r.walkLayouts(pattern)
}

// routeAt returns the Page/ParallelSlot/Intercepting route registered
// exactly at pattern, if any, by scanning the sorted list. This is a
// registration-time-scale lookup (routes are sorted by priority, not by
// pattern), acceptable since GetLayout is not on a hot, high-cardinality
// path the way MatchRoute is.
func (r *Router) routeAt(pattern string) (*Route, bool) {
	for _, rt := range r.routes {
		if rt.pattern == pattern {
			return rt, true
		}
	}
	return nil, false
}

func (r *Router) resolveNamedLayout(pattern, name string) (*Route, bool) {
	h := pathutil.NewHierarchy(pattern)
	for {
		p, ok := h.Next()
		if !ok {
			return nil, false
		}
		if rt, ok := r.namedLayouts[layoutKey{parent: p, name: name}]; ok {
			return rt, true
		}
	}
}

// walkLayouts returns the nearest layout at or above pattern. A _nolayout
// barrier binds patterns strictly under it, so the barrier check is skipped
// for the first probe (the query path itself) and applied to every ancestor
// before that ancestor's layout table entry is consulted.
func (r *Router) walkLayouts(pattern string) (*Route, bool) {
	h := pathutil.NewHierarchy(pattern)
	first := true
	for {
		p, ok := h.Next()
		if !ok {
			return nil, false
		}
		if !first {
			if _, blocked := r.nolayoutBarriers[p]; blocked {
				r.emit(DiagNoLayoutBarrierCrossed, "layout resolution blocked by nolayout barrier", map[string]any{
					"pattern": pattern, "barrier": p,
				})
				return nil, false
			}
		}
		first = false
		if rt, ok := r.layouts[p]; ok {
			return rt, true
		}
	}
}
