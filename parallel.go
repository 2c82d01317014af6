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

// GetParallelRoutes returns the slot map registered at parent (all slots
// that should be rendered alongside the page at that parent). The returned
// map is a borrowed view; callers must not mutate it.
func (r *Router) GetParallelRoutes(parent string) map[string]*Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.parallelRoutes[NormalizePath(parent)]
}

// GetParallelRoute returns the specific slot route registered at
// parent -> slot.
func (r *Router) GetParallelRoute(parent, slot string) (*Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slots, ok := r.parallelRoutes[NormalizePath(parent)]
	if !ok {
		return nil, false
	}
	rt, ok := slots[slot]
	return rt, ok
}

// GetInterceptingRoute returns the intercepting route whose source
// location matches effectiveURL, e.g. "/feed/photo/7" against a route
// compiled from "feed/(...)/photo/[id]/index.tsx" whose own pattern is
// "/feed/photo/:id". The level semantics (SameLevel/OneLevelUp/FromRoot/
// TwoLevelsUp) were already resolved into InterceptTarget at compile
// time; this only resolves which intercepting route, if any, claims the
// given concrete URL, so a dynamic segment in the source location (like
// :id above) must still be matched rather than compared literally.
// interceptingByEffectiveURL gives an O(1) hit for purely static source
// locations; a dynamic one falls back to a scan of the registered
// intercepting routes, same as MatchRoute does for ordinary routes.
func (r *Router) GetInterceptingRoute(effectiveURL string) (*Route, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	normalized := NormalizePath(effectiveURL)
	if rt, ok := r.interceptingByEffectiveURL[normalized]; ok {
		return rt, true
	}

	segs := splitPath(normalized)
	for _, rt := range r.interceptingByEffectiveURL {
		if _, ok := matchSegments(rt.segments, segs, r.caseInsensitive); ok {
			return rt, true
		}
	}
	return nil, false
}
