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
	"sort"
	"sync"

	"gofsrouter.dev/router/constraint"
)

type layoutKey struct {
	parent string
	name   string
}

// Router holds the sorted route list and every indexed table described in
// the component design: layouts, error pages, loading pages, templates,
// not-found pages, no-layout barriers, parallel slots, intercepting routes,
// and the name/alias indices. Construction is via New; after that, it is
// read-mostly: readers (MatchRoute, the Get* resolvers) take mu's read
// lock, so they never block one another, and Route.GenerateURL takes no
// lock at all; writers (AddRoute, RemoveRoute) take mu for exclusive access.
// Callers are responsible for not calling a writer concurrently with
// another writer, or mutating external state readers depend on; the
// router itself never spawns goroutines or blocks.
type Router struct {
	mu sync.RWMutex

	pagesRoot       string
	caseInsensitive bool
	diagnostics     DiagnosticHandler

	routes  []*Route // sorted ascending by (priority, depth, insertion order)
	nextSeq int
	seqOf   map[*Route]int

	layouts       map[string]*Route
	errorPages    map[string]*Route
	loadingPages  map[string]*Route
	templates     map[string]*Route
	notFoundPages map[string]*Route
	namedLayouts  map[layoutKey]*Route

	nolayoutBarriers           map[string]struct{}
	parallelRoutes             map[string]map[string]*Route
	interceptingByEffectiveURL map[string]*Route

	byName  map[string]*Route
	byAlias map[string]*Route
}

// Option configures a Router at construction time.
type Option func(*Router)

// New constructs a Router with the given options applied.
func New(opts ...Option) *Router {
	r := &Router{
		seqOf:                      make(map[*Route]int),
		layouts:                    make(map[string]*Route),
		errorPages:                 make(map[string]*Route),
		loadingPages:               make(map[string]*Route),
		templates:                  make(map[string]*Route),
		notFoundPages:              make(map[string]*Route),
		namedLayouts:               make(map[layoutKey]*Route),
		nolayoutBarriers:           make(map[string]struct{}),
		parallelRoutes:             make(map[string]map[string]*Route),
		interceptingByEffectiveURL: make(map[string]*Route),
		byName:                     make(map[string]*Route),
		byAlias:                    make(map[string]*Route),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PagesRoot returns the configured pages-root directory name.
func (r *Router) PagesRoot() string { return r.pagesRoot }

// CaseInsensitive reports whether static segment comparison ignores ASCII case.
func (r *Router) CaseInsensitive() bool { return r.caseInsensitive }

// AddRoute classifies rt by resource kind, indexes it into every relevant
// table, and registers its name and aliases. A route sharing an existing
// entry's canonical pattern and resource kind replaces that entry; any
// other collision on an identical pattern coexists (disambiguated at match
// time, e.g. by case-insensitive comparison for static segments).
func (r *Router) AddRoute(rt *Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rt.name != "" {
		if existing, ok := r.byName[rt.name]; ok && existing != rt {
			return &NameCollisionError{Name: rt.name, Existing: existing.pattern}
		}
	}

	switch rt.kind {
	case KindLayout:
		if rt.layoutName != "" {
			r.namedLayouts[layoutKey{parent: rt.pattern, name: rt.layoutName}] = rt
		} else {
			r.layouts[rt.pattern] = rt
		}
	case KindError:
		r.errorPages[rt.pattern] = rt
	case KindLoading:
		r.loadingPages[rt.pattern] = rt
	case KindTemplate:
		r.templates[rt.pattern] = rt
	case KindNotFound:
		r.notFoundPages[rt.pattern] = rt
	case KindNoLayoutMarker:
		r.nolayoutBarriers[rt.pattern] = struct{}{}
	case KindParallelSlot:
		slots, ok := r.parallelRoutes[rt.parentPattern]
		if !ok {
			slots = make(map[string]*Route)
			r.parallelRoutes[rt.parentPattern] = slots
		}
		slots[rt.slotName] = rt
		r.insertSorted(rt)
	case KindIntercepting:
		r.interceptingByEffectiveURL[rt.pattern] = rt
		r.insertSorted(rt)
	default:
		r.insertSorted(rt)
	}

	if rt.name != "" {
		r.byName[rt.name] = rt
	}
	for _, a := range rt.aliases {
		if existing, ok := r.byAlias[a.pattern]; ok && existing != rt {
			r.emit(DiagAliasShadowed, "alias shadowed by earlier registration", map[string]any{
				"alias": a.pattern, "pattern": rt.pattern,
			})
			continue
		}
		r.byAlias[a.pattern] = rt
	}

	if r.diagnostics != nil {
		for _, seg := range rt.segments {
			if seg.Constraint.Kind == constraint.Regex {
				r.emit(DiagConstraintReinterpreted, "constraint token reinterpreted as regex", map[string]any{
					"pattern": rt.pattern, "param": seg.Param, "token": seg.Constraint.Raw,
				})
			}
		}
	}
	r.emit(DiagRouteRegistered, "route registered", map[string]any{
		"pattern": rt.pattern, "kind": rt.kind.String(),
	})
	return nil
}

// insertSorted replaces an existing route of identical pattern and kind, or
// appends rt and re-sorts by (priority, depth, insertion order).
func (r *Router) insertSorted(rt *Route) {
	for i, existing := range r.routes {
		if existing.pattern == rt.pattern && existing.kind == rt.kind {
			if existing == rt {
				return // re-registration of the same record, e.g. after builder updates
			}
			r.seqOf[rt] = r.seqOf[existing]
			delete(r.seqOf, existing)
			r.routes[i] = rt
			r.emit(DiagRouteReplaced, "route replaced", map[string]any{"pattern": rt.pattern})
			return
		}
	}
	r.seqOf[rt] = r.nextSeq
	r.nextSeq++
	r.routes = append(r.routes, rt)
	sort.SliceStable(r.routes, func(i, j int) bool {
		a, b := r.routes[i], r.routes[j]
		if a.priority != b.priority {
			return a.priority < b.priority
		}
		if a.depth != b.depth {
			return a.depth < b.depth
		}
		return r.seqOf[a] < r.seqOf[b]
	})
}

// RemoveRoute removes the route registered at canonical pattern from the
// sorted list and from every table that references it. O(n) is acceptable.
func (r *Router) RemoveRoute(pattern string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rt := range r.routes {
		if rt.pattern == pattern {
			delete(r.seqOf, rt)
			r.routes = append(r.routes[:i:i], r.routes[i+1:]...)
			r.unindex(rt)
			return
		}
	}

	for _, tbl := range []map[string]*Route{r.layouts, r.errorPages, r.loadingPages, r.templates, r.notFoundPages} {
		if rt, ok := tbl[pattern]; ok {
			delete(tbl, pattern)
			r.unindex(rt)
			return
		}
	}
	for k, rt := range r.namedLayouts {
		if rt.pattern == pattern {
			delete(r.namedLayouts, k)
			r.unindex(rt)
			return
		}
	}
	if _, ok := r.nolayoutBarriers[pattern]; ok {
		delete(r.nolayoutBarriers, pattern)
		return
	}
	for parent, slots := range r.parallelRoutes {
		for slot, rt := range slots {
			if rt.pattern == pattern {
				delete(slots, slot)
				if len(slots) == 0 {
					delete(r.parallelRoutes, parent)
				}
				r.unindex(rt)
				return
			}
		}
	}
}

func (r *Router) unindex(rt *Route) {
	if rt.name != "" {
		delete(r.byName, rt.name)
	}
	for _, a := range rt.aliases {
		if r.byAlias[a.pattern] == rt {
			delete(r.byAlias, a.pattern)
		}
	}
	delete(r.interceptingByEffectiveURL, rt.pattern)
	if rt.kind == KindParallelSlot {
		if slots, ok := r.parallelRoutes[rt.parentPattern]; ok && slots[rt.slotName] == rt {
			delete(slots, rt.slotName)
			if len(slots) == 0 {
				delete(r.parallelRoutes, rt.parentPattern)
			}
		}
	}
}

// RouteMatch is a reference to the matched route plus its captured
// parameter bindings.
type RouteMatch struct {
	Route  *Route
	Params map[string]string
}

// RedirectTarget computes the redirect destination for a matched redirect
// route by substituting the captured bindings into its target pattern, or
// returns "", false when the route is not a redirect.
func (m RouteMatch) RedirectTarget() (string, bool) {
	if !m.Route.IsRedirect() {
		return "", false
	}
	target, err := m.Route.generateRedirectURL(m.Params)
	if err != nil {
		return "", false
	}
	return target, true
}

// RedirectStatus returns the route's redirect status code, and whether the
// route is a redirect at all.
func (m RouteMatch) RedirectStatus() (int, bool) {
	if !m.Route.IsRedirect() {
		return 0, false
	}
	return m.Route.redirectStatus, true
}

// MatchRoute normalizes path, scans the sorted route list, and returns the
// first route whose primary pattern or any alias matches. Intercepting
// routes are visible here like any other sorted entry (a direct navigation
// still resolves to the underlying page); callers that need interception
// semantics use GetInterceptingRoute instead.
func (r *Router) MatchRoute(path string) (RouteMatch, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := NormalizePath(path)
	segs := splitPath(normalized)
	for _, rt := range r.routes {
		if b, ok := matchSegments(rt.segments, segs, r.caseInsensitive); ok {
			return RouteMatch{Route: rt, Params: b}, true
		}
		for _, a := range rt.aliases {
			if b, ok := matchSegments(a.segments, segs, r.caseInsensitive); ok {
				return RouteMatch{Route: rt, Params: b}, true
			}
		}
	}
	return RouteMatch{}, false
}

// GetRouteByName returns the route registered under name, if any.
func (r *Router) GetRouteByName(name string) (*Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rt, ok := r.byName[name]
	return rt, ok
}

// URLFor looks up the route registered under name and generates a URL from
// params via its GenerateURL.
func (r *Router) URLFor(name string, params map[string]string) (string, error) {
	rt, ok := r.GetRouteByName(name)
	if !ok {
		return "", ErrNameNotRegistered
	}
	return rt.GenerateURL(params)
}

// Routes returns a borrowed view of the sorted route list. Callers must
// not mutate the returned slice.
func (r *Router) Routes() []*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.routes
}

// Layouts returns a borrowed view of the layouts table.
func (r *Router) Layouts() map[string]*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.layouts
}

// ErrorPages returns a borrowed view of the error-pages table.
func (r *Router) ErrorPages() map[string]*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.errorPages
}

// LoadingPages returns a borrowed view of the loading-pages table.
func (r *Router) LoadingPages() map[string]*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadingPages
}

// Templates returns a borrowed view of the templates table.
func (r *Router) Templates() map[string]*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.templates
}

// NotFoundPages returns a borrowed view of the not-found-pages table.
func (r *Router) NotFoundPages() map[string]*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.notFoundPages
}

// ParallelRoutes returns a borrowed view of the full parent -> slot -> route
// table.
func (r *Router) ParallelRoutes() map[string]map[string]*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.parallelRoutes
}

// InterceptingRoutes returns a borrowed view of the intercepting-routes
// table, keyed by each route's effective URL pattern.
func (r *Router) InterceptingRoutes() map[string]*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.interceptingByEffectiveURL
}

// NamedRoutes returns a borrowed view of the name index.
func (r *Router) NamedRoutes() map[string]*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName
}

// NoLayoutBarriers returns a borrowed view of the set of patterns at which
// layout inheritance is blocked.
func (r *Router) NoLayoutBarriers() map[string]struct{} {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nolayoutBarriers
}
