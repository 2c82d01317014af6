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

func TestAliasParticipatesInMatching(t *testing.T) {
	r := router.New()
	rt, err := router.Compile("users/[id]/index.tsx")
	require.NoError(t, err)
	rt.WithAlias("/people/:id")
	require.NoError(t, r.AddRoute(rt))

	m, ok := r.MatchRoute("/people/9")
	require.True(t, ok)
	assert.Equal(t, "/users/:id", m.Route.Pattern(), "alias resolves to the primary route")
	assert.Equal(t, "9", m.Params["id"])

	bindings, ok := rt.Matches("/people/9")
	require.True(t, ok)
	assert.Equal(t, "9", bindings["id"])

	assert.Equal(t, []string{"/people/:id"}, rt.Aliases())
}

func TestAliasDoesNotChangeSortPosition(t *testing.T) {
	r := router.New()
	static, err := router.Compile("people/all/index.tsx")
	require.NoError(t, err)
	require.NoError(t, r.AddRoute(static))

	dyn, err := router.Compile("users/[id]/index.tsx")
	require.NoError(t, err)
	dyn.WithAlias("/people/:id")
	require.NoError(t, r.AddRoute(dyn))

	m, ok := r.MatchRoute("/people/all")
	require.True(t, ok)
	assert.Equal(t, "/people/all", m.Route.Pattern(),
		"a static route keeps winning even when a dynamic alias also covers the path")
}

func TestGenerateURLOptionalParameter(t *testing.T) {
	rt, err := router.Compile("shop/[category?]/index.tsx")
	require.NoError(t, err)

	url, err := rt.GenerateURL(map[string]string{"category": "shoes"})
	require.NoError(t, err)
	assert.Equal(t, "/shop/shoes", url)

	url, err = rt.GenerateURL(nil)
	require.NoError(t, err)
	assert.Equal(t, "/shop", url)
}

func TestGenerateURLCatchAllKeepsSlashes(t *testing.T) {
	rt, err := router.Compile("docs/[...slug]/index.tsx")
	require.NoError(t, err)

	url, err := rt.GenerateURL(map[string]string{"slug": "guides/install/linux"})
	require.NoError(t, err)
	assert.Equal(t, "/docs/guides/install/linux", url)
}

func TestGenerateURLEmptyCatchAllRejected(t *testing.T) {
	rt, err := router.Compile("docs/[...slug]/index.tsx")
	require.NoError(t, err)

	_, err = rt.GenerateURL(map[string]string{"slug": ""})
	require.Error(t, err)
	assert.ErrorIs(t, err, router.ErrEmptyCatchAllValue)
}

func TestGenerateURLOptionalCatchAllOmitted(t *testing.T) {
	rt, err := router.Compile("archive/[[...slug]]/index.tsx")
	require.NoError(t, err)

	url, err := rt.GenerateURL(nil)
	require.NoError(t, err)
	assert.Equal(t, "/archive", url)

	url, err = rt.GenerateURL(map[string]string{"slug": "2024/q1"})
	require.NoError(t, err)
	assert.Equal(t, "/archive/2024/q1", url)
}

func TestGenerateURLConstraintViolation(t *testing.T) {
	rt, err := router.Compile("users/[id:uint]/index.tsx")
	require.NoError(t, err)

	_, err = rt.GenerateURL(map[string]string{"id": "abc"})
	require.Error(t, err)
	var cv *router.ConstraintViolationError
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, "id", cv.Param)
	assert.Equal(t, "abc", cv.Value)
}

func TestGenerateURLIgnoresExtraParams(t *testing.T) {
	rt, err := router.Compile("users/[id]/index.tsx")
	require.NoError(t, err)

	url, err := rt.GenerateURL(map[string]string{"id": "7", "unused": "x"})
	require.NoError(t, err)
	assert.Equal(t, "/users/7", url)
}

func TestGenerateURLEmitsRawValues(t *testing.T) {
	rt, err := router.Compile("search/[q]/index.tsx")
	require.NoError(t, err)

	url, err := rt.GenerateURL(map[string]string{"q": "a b"})
	require.NoError(t, err)
	assert.Equal(t, "/search/a b", url, "no percent-encoding; matching captures raw text, so generation emits raw text")
}

func TestCompileConstraintParseErrorSurfaced(t *testing.T) {
	_, err := router.Compile("users/[id:(oops]/index.tsx")
	require.Error(t, err)
	var cp *router.ConstraintParseError
	require.ErrorAs(t, err, &cp)
}

func TestCompileInvalidPatternErrorSurfaced(t *testing.T) {
	_, err := router.Compile("a/[x?]/b/index.tsx")
	require.Error(t, err)
	var ip *router.InvalidPatternError
	require.ErrorAs(t, err, &ip)
}

func TestWithMetaReplacesOnRewrite(t *testing.T) {
	rt, err := router.Compile("index.tsx")
	require.NoError(t, err)

	rt.WithMeta("owner", "web").WithMeta("owner", "platform")
	v, ok := rt.Meta("owner")
	require.True(t, ok)
	assert.Equal(t, "platform", v)

	rt.WithMetadata(map[string]string{"tier": "1"})
	v, ok = rt.Meta("tier")
	require.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestRedirectRejectsEmptyTarget(t *testing.T) {
	_, err := router.Redirect("/old", "", 301)
	require.Error(t, err)
	assert.ErrorIs(t, err, router.ErrEmptyRedirectTo)
}

func TestRedirectStatusAbsentOnPlainRoute(t *testing.T) {
	r := router.New()
	rt, err := router.Compile("index.tsx")
	require.NoError(t, err)
	require.NoError(t, r.AddRoute(rt))

	m, ok := r.MatchRoute("/")
	require.True(t, ok)
	_, ok = m.RedirectTarget()
	assert.False(t, ok)
	_, ok = m.RedirectStatus()
	assert.False(t, ok)
}

func TestMatchRouteRoundTripsBindingsExactly(t *testing.T) {
	r := router.New()
	rt, err := router.Compile("posts/[year:uint]/[slug:slug]/index.tsx")
	require.NoError(t, err)
	require.NoError(t, r.AddRoute(rt))

	params := map[string]string{"year": "2024", "slug": "release-notes"}
	url, err := rt.GenerateURL(params)
	require.NoError(t, err)

	m, ok := r.MatchRoute(url)
	require.True(t, ok)
	assert.Equal(t, params, m.Params, "no extra bindings, values unchanged")
}

func TestRoundTripPreservesPercentEncodableValues(t *testing.T) {
	r := router.New()
	rt, err := router.Compile("search/[q]/index.tsx")
	require.NoError(t, err)
	require.NoError(t, r.AddRoute(rt))

	for _, q := range []string{"a b", "50%", "a+b", "café"} {
		params := map[string]string{"q": q}
		url, err := rt.GenerateURL(params)
		require.NoError(t, err)

		m, ok := r.MatchRoute(url)
		require.True(t, ok, q)
		assert.Equal(t, params, m.Params, "value %q must survive generate->match unchanged", q)
	}
}
