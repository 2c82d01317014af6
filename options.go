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

// WithPagesRoot records the caller-supplied pages-root directory name
// (e.g. "pages"). The router itself never walks the filesystem — this is
// purely informational, surfaced back through PagesRoot() for callers that
// compile routes elsewhere and want a single place to read it from.
func WithPagesRoot(root string) Option {
	return func(r *Router) {
		r.pagesRoot = root
	}
}

// WithCaseInsensitive enables ASCII case-insensitive comparison of static
// segments at match time. Patterns are never reparsed; this is purely a
// per-router comparison flag, consulted in matchSegments.
func WithCaseInsensitive(enabled bool) Option {
	return func(r *Router) {
		r.caseInsensitive = enabled
	}
}

// WithDiagnostics sets a diagnostic handler for the router. Diagnostic
// events are optional informational events that may indicate configuration
// issues (a shadowed alias, a route replaced on re-registration, a
// constraint token reinterpreted as regex, a layout blocked by a nolayout
// barrier); the router behaves identically whether they are collected.
//
// Example with slog:
//
//	handler := router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := router.New(router.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(r *Router) {
		r.diagnostics = handler
	}
}
