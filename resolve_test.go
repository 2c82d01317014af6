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

package router_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gofsrouter.dev/router"
)

func TestNamedLayoutResolution(t *testing.T) {
	r := router.New()
	mustAdd(t, r, "dashboard/_layout.tsx")
	mustAdd(t, r, "dashboard/_layout.compact.tsx")
	rt := mustAdd(t, r, "dashboard/reports/index.tsx")
	rt.WithNamedLayout("compact")

	lt, ok := r.GetLayout("/dashboard/reports")
	require.True(t, ok)
	assert.Equal(t, "/dashboard", lt.Pattern())
	assert.Equal(t, router.KindLayout, lt.Kind())

	// Without the named option the unnamed layout at the same parent wins.
	mustAdd(t, r, "dashboard/metrics/index.tsx")
	lt, ok = r.GetLayout("/dashboard/metrics")
	require.True(t, ok)
	assert.Equal(t, "/dashboard", lt.Pattern())
}

func TestNamedLayoutAbsentWhenNotRegistered(t *testing.T) {
	r := router.New()
	mustAdd(t, r, "dashboard/_layout.tsx")
	rt := mustAdd(t, r, "dashboard/reports/index.tsx")
	rt.WithNamedLayout("sidebar")

	_, ok := r.GetLayout("/dashboard/reports")
	assert.False(t, ok, "a named layout option never falls back to the unnamed table")
}

func TestPatternLayoutOption(t *testing.T) {
	r := router.New()
	mustAdd(t, r, "_layout.tsx")
	mustAdd(t, r, "admin/_layout.tsx")
	rt := mustAdd(t, r, "reports/daily/index.tsx")
	rt.WithLayoutPattern("/admin")

	lt, ok := r.GetLayout("/reports/daily")
	require.True(t, ok)
	assert.Equal(t, "/admin", lt.Pattern(), "pattern option selects an unrelated branch's layout")
}

func TestNoLayoutOption(t *testing.T) {
	r := router.New()
	mustAdd(t, r, "_layout.tsx")
	rt := mustAdd(t, r, "bare/index.tsx")
	rt.WithNoLayout()

	_, ok := r.GetLayout("/bare")
	assert.False(t, ok)
}

func TestNoLayoutBarrierBindsStrictlyUnder(t *testing.T) {
	r := router.New()
	mustAdd(t, r, "_layout.tsx")
	mustAdd(t, r, "print/_nolayout.tsx")
	mustAdd(t, r, "print/index.tsx")
	mustAdd(t, r, "print/labels/index.tsx")

	// The barrier's own path still inherits from above it.
	lt, ok := r.GetLayout("/print")
	require.True(t, ok)
	assert.Equal(t, "/", lt.Pattern())

	// Everything strictly under it is blocked.
	_, ok = r.GetLayout("/print/labels")
	assert.False(t, ok)
}

func TestErrorLoadingTemplateNotFoundResolution(t *testing.T) {
	r := router.New()
	mustAdd(t, r, "_error.tsx")
	mustAdd(t, r, "dashboard/_error.tsx")
	mustAdd(t, r, "dashboard/loading.tsx")
	mustAdd(t, r, "dashboard/_template.tsx")
	mustAdd(t, r, "not-found.tsx")

	errPage, ok := r.GetErrorPage("/dashboard/settings")
	require.True(t, ok)
	assert.Equal(t, "/dashboard", errPage.Pattern())

	errPage, ok = r.GetErrorPage("/elsewhere")
	require.True(t, ok)
	assert.Equal(t, "/", errPage.Pattern())

	loading, ok := r.GetLoadingPage("/dashboard/settings")
	require.True(t, ok)
	assert.Equal(t, "/dashboard", loading.Pattern())

	_, ok = r.GetLoadingPage("/elsewhere")
	assert.False(t, ok)

	tmpl, ok := r.GetTemplate("/dashboard/deep/nested/path")
	require.True(t, ok)
	assert.Equal(t, "/dashboard", tmpl.Pattern())

	nf, ok := r.GetNotFoundPage("/anything/at/all")
	require.True(t, ok)
	assert.Equal(t, "/", nf.Pattern())
}

func TestNoLayoutBarrierDoesNotAffectOtherTables(t *testing.T) {
	r := router.New()
	mustAdd(t, r, "_error.tsx")
	mustAdd(t, r, "print/_nolayout.tsx")

	errPage, ok := r.GetErrorPage("/print/labels")
	require.True(t, ok)
	assert.Equal(t, "/", errPage.Pattern(), "the barrier blocks layouts only")
}

func TestGetParallelRouteSpecificSlot(t *testing.T) {
	r := router.New()
	mustAdd(t, r, "dashboard/@analytics/index.tsx")
	mustAdd(t, r, "dashboard/@team/index.tsx")

	rt, ok := r.GetParallelRoute("/dashboard", "analytics")
	require.True(t, ok)
	assert.Equal(t, "analytics", rt.SlotName())
	assert.Equal(t, "/dashboard", rt.ParentPattern())

	_, ok = r.GetParallelRoute("/dashboard", "missing")
	assert.False(t, ok)
	_, ok = r.GetParallelRoute("/other", "analytics")
	assert.False(t, ok)
}

func TestRemoveParallelSlotDropsSlotTable(t *testing.T) {
	r := router.New()
	rt := mustAdd(t, r, "dashboard/@analytics/index.tsx")

	r.RemoveRoute(rt.Pattern())
	_, ok := r.GetParallelRoute("/dashboard", "analytics")
	assert.False(t, ok)
	assert.Empty(t, r.GetParallelRoutes("/dashboard"))
}

func TestInterceptingRouteAlsoMatchesDirectly(t *testing.T) {
	r := router.New()
	mustAdd(t, r, "feed/(...)/photo/[id]/index.tsx")

	m, ok := r.MatchRoute("/feed/photo/7")
	require.True(t, ok)
	assert.Equal(t, router.KindIntercepting, m.Route.Kind(),
		"a direct navigation still resolves through the sorted list")
	assert.Equal(t, "7", m.Params["id"])
}

func TestConstraintReinterpretedDiagnostic(t *testing.T) {
	var kinds []router.DiagnosticKind
	r := router.New(router.WithDiagnostics(router.DiagnosticHandlerFunc(func(e router.DiagnosticEvent) {
		kinds = append(kinds, e.Kind)
	})))
	mustAdd(t, r, "reports/[year:\\d{4}]/index.tsx")

	assert.Contains(t, kinds, router.DiagConstraintReinterpreted)
}
