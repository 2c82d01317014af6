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

package observability_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gofsrouter.dev/router"
	"gofsrouter.dev/router/observability"
)

func TestWrapRecordsRegistrationAndMatchMetrics(t *testing.T) {
	inner := router.New()
	w, err := observability.Wrap(inner, observability.WithMeterName("gofsrouter.dev/router/test"))
	require.NoError(t, err)

	rt, err := router.Compile("users/[id:uint]/index.tsx")
	require.NoError(t, err)
	require.NoError(t, w.AddRoute(rt))

	_, ok := w.MatchRoute("/users/42")
	require.True(t, ok)
	_, ok = w.MatchRoute("/nope")
	require.False(t, ok)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	w.Handler.ServeHTTP(rec, req)
	body := rec.Body.String()

	require.Contains(t, body, "router_routes_registered_total")
	require.Contains(t, body, "router_match_total")
	require.Contains(t, body, "router_match_duration_seconds")

	require.Same(t, inner, w.Unwrap())
}

func TestWrapWithStdoutExporterFlushesMetrics(t *testing.T) {
	var out bytes.Buffer
	w, err := observability.Wrap(router.New(),
		observability.WithStdoutExporter(&out),
		observability.WithExportInterval(time.Hour))
	require.NoError(t, err)
	require.Nil(t, w.Handler, "no Prometheus registry behind a push exporter")

	rt, err := router.Compile("users/[id:uint]/index.tsx")
	require.NoError(t, err)
	require.NoError(t, w.AddRoute(rt))
	_, ok := w.MatchRoute("/users/42")
	require.True(t, ok)

	require.NoError(t, w.Shutdown(context.Background()))
	require.Contains(t, out.String(), "router_match_total")
}

func TestWrapWithStdoutTracingRecordsMatchSpan(t *testing.T) {
	var spans bytes.Buffer
	w, err := observability.Wrap(router.New(), observability.WithStdoutTracing(&spans))
	require.NoError(t, err)
	require.NotNil(t, w.TracerProvider)

	rt, err := router.Compile("index.tsx")
	require.NoError(t, err)
	require.NoError(t, w.AddRoute(rt))
	_, ok := w.MatchRoute("/")
	require.True(t, ok)

	// The syncer exports on span End, before Shutdown is ever called.
	require.Contains(t, spans.String(), "router.match")
	require.Contains(t, spans.String(), "router.result")

	require.NoError(t, w.Shutdown(context.Background()))
}
