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

// RouteOverride is supplemental route registration data from a source
// outside the pages tree (typically a YAML manifest decoded by the
// manifest package): either a standalone redirect, or a name/alias/meta
// overlay applied to a route already registered at Pattern. It reuses the
// same builder API (WithName/WithAliases/WithMetadata, Redirect) every
// other route goes through — ApplyOverride never bypasses compilation or
// the sorted-list/table invariants.
type RouteOverride struct {
	// Pattern is the canonical pattern this override targets: the "from"
	// pattern for a redirect, or the exact pattern of an already-registered
	// route for a name/alias/meta overlay.
	Pattern string

	Name    string
	Aliases []string
	Meta    map[string]string

	// RedirectTo and RedirectStatus, when RedirectTo is non-empty, make
	// this a standalone redirect override rather than an overlay: Pattern
	// is compiled as a fresh route (via Redirect), not matched against an
	// existing one.
	RedirectTo     string
	RedirectStatus int
}

// ApplyOverride registers ov against r. A redirect override (RedirectTo
// non-empty) is compiled and added as a new route. An overlay override
// (RedirectTo empty) finds the already-registered route whose canonical
// pattern equals ov.Pattern and applies Name/Aliases/Meta to it in place,
// then re-adds it so the new aliases and name are indexed; a Pattern that
// matches no registered route is a silent no-op, since a manifest may
// describe routes a partial pages tree hasn't registered yet in this
// process.
func (r *Router) ApplyOverride(ov RouteOverride) error {
	if ov.RedirectTo != "" {
		rt, err := Redirect(ov.Pattern, ov.RedirectTo, ov.RedirectStatus)
		if err != nil {
			return err
		}
		if ov.Name != "" {
			rt.WithName(ov.Name)
		}
		if len(ov.Meta) > 0 {
			rt.WithMetadata(ov.Meta)
		}
		return r.AddRoute(rt)
	}

	r.mu.RLock()
	rt, ok := r.routeAt(ov.Pattern)
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	if ov.Name != "" {
		rt.WithName(ov.Name)
	}
	if len(ov.Aliases) > 0 {
		rt.WithAliases(ov.Aliases...)
	}
	if len(ov.Meta) > 0 {
		rt.WithMetadata(ov.Meta)
	}
	return r.AddRoute(rt)
}
