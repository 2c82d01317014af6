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

// DiagnosticEvent represents a router diagnostic or anomaly. These are
// informational events that may indicate configuration issues; the router
// functions correctly whether they are collected or not.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	// DiagAliasShadowed fires when a newly added alias collides with an
	// existing alias of a different route; the earlier registration keeps
	// the alias and the new one is shadowed.
	DiagAliasShadowed DiagnosticKind = "alias_shadowed"
	// DiagRouteReplaced fires when add_route replaces an existing route
	// sharing the same canonical pattern and resource kind.
	DiagRouteReplaced DiagnosticKind = "route_replaced"
	// DiagConstraintReinterpreted fires when a constraint token did not
	// match a known literal name and was reinterpreted as a raw regex.
	DiagConstraintReinterpreted DiagnosticKind = "constraint_reinterpreted"
	// DiagNoLayoutBarrierCrossed fires the first time a layout lookup is
	// blocked by a _nolayout barrier during a hierarchy walk.
	DiagNoLayoutBarrierCrossed DiagnosticKind = "nolayout_barrier_crossed"
	// DiagRouteRegistered fires on every successful add_route call.
	DiagRouteRegistered DiagnosticKind = "route_registered"
)

// DiagnosticHandler receives diagnostic events from the router.
// Implementations may log, emit metrics, trace events, or ignore them.
// This interface is optional — if not provided, diagnostics are silently
// dropped, and router behavior is unchanged whether they are collected.
//
// Example with slog:
//
//	handler := router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	r := router.New(router.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}

func (r *Router) emit(kind DiagnosticKind, message string, fields map[string]any) {
	if r.diagnostics == nil {
		return
	}
	r.diagnostics.OnDiagnostic(DiagnosticEvent{Kind: kind, Message: message, Fields: fields})
}
