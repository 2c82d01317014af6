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

// Package observability wraps a *router.Router with otel-instrumented
// counters, a histogram, and an optional span per match, behind a
// configurable exporter: Prometheus (default, pull via Handler), OTLP over
// HTTP (push), or stdout (development). The surface is deliberately small:
// a pure in-memory routing structure has no request-serving loop to time
// end to end, only the registration and match calls the caller makes
// directly. Every recording happens synchronously inline on the caller's
// own goroutine, and spans are exported synchronously on End; only the
// push exporters' periodic readers collect off the recording path.
package observability

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"gofsrouter.dev/router"
)

type exporterKind uint8

const (
	exporterPrometheus exporterKind = iota
	exporterOTLP
	exporterStdout
)

// config collects Wrap's functional options.
type config struct {
	meterName      string
	registerer     *promclient.Registry
	exporter       exporterKind
	otlpEndpoint   string
	metricsOut     io.Writer
	exportInterval time.Duration
	traceOut       io.Writer // non-nil enables span recording
}

// Option configures Wrap.
type Option func(*config)

// WithMeterName overrides the otel meter's instrumentation name. Defaults
// to "gofsrouter.dev/router".
func WithMeterName(name string) Option {
	return func(c *config) { c.meterName = name }
}

// WithRegisterer supplies a caller-owned Prometheus registry instead of
// Wrap creating its own, for callers that want every metric in one place.
// Selects the Prometheus exporter.
func WithRegisterer(reg *promclient.Registry) Option {
	return func(c *config) {
		c.exporter = exporterPrometheus
		c.registerer = reg
	}
}

// WithOTLPExporter ships metrics to an OTLP/HTTP collector at endpoint
// (e.g. "http://localhost:4318") through a periodic reader, instead of
// exposing a Prometheus registry. An "http://" scheme selects an insecure
// connection; "https://" (or no scheme) a secure one.
func WithOTLPExporter(endpoint string) Option {
	return func(c *config) {
		c.exporter = exporterOTLP
		c.otlpEndpoint = endpoint
	}
}

// WithStdoutExporter writes metrics to w (os.Stdout when nil) as JSON
// through a periodic reader, for development and testing.
func WithStdoutExporter(w io.Writer) Option {
	return func(c *config) {
		c.exporter = exporterStdout
		c.metricsOut = w
	}
}

// WithExportInterval sets the push cadence for the OTLP and stdout
// exporters. Ignored by the Prometheus exporter, which is pull-based.
func WithExportInterval(d time.Duration) Option {
	return func(c *config) { c.exportInterval = d }
}

// WithStdoutTracing records a span around every MatchRoute call and writes
// finished spans to w (os.Stdout when nil). Spans are processed by a
// synchronous exporter: the write happens inline on span End, on the
// caller's goroutine.
func WithStdoutTracing(w io.Writer) Option {
	return func(c *config) {
		if w == nil {
			w = os.Stdout
		}
		c.traceOut = w
	}
}

// Router decorates a *router.Router, recording metrics (and optionally a
// span) around AddRoute and MatchRoute while delegating every call
// unchanged. It exposes no additional behavior of its own: Unwrap returns
// the wrapped Router for every other operation (GetLayout, URLFor, ...),
// which needs no instrumentation since it does no work beyond a handful of
// map lookups.
type Router struct {
	inner *router.Router

	MeterProvider  *sdkmetric.MeterProvider
	TracerProvider *sdktrace.TracerProvider // nil unless tracing is enabled
	Handler        http.Handler             // serves the Prometheus registry; nil for push exporters

	tracer           trace.Tracer
	routesRegistered metric.Int64Counter
	matchTotal       metric.Int64Counter
	matchDuration    metric.Float64Histogram
}

// Wrap builds a Router decorator around r with the configured exporter
// backing an otel MeterProvider (Prometheus by default).
func Wrap(r *router.Router, opts ...Option) (*Router, error) {
	cfg := config{meterName: "gofsrouter.dev/router", exportInterval: time.Minute}
	for _, opt := range opts {
		opt(&cfg)
	}

	w := &Router{inner: r}

	switch cfg.exporter {
	case exporterOTLP:
		mp, err := newOTLPMeterProvider(cfg)
		if err != nil {
			return nil, err
		}
		w.MeterProvider = mp
	case exporterStdout:
		mp, err := newStdoutMeterProvider(cfg)
		if err != nil {
			return nil, err
		}
		w.MeterProvider = mp
	default:
		registry := cfg.registerer
		if registry == nil {
			registry = promclient.NewRegistry()
		}
		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return nil, fmt.Errorf("observability: create prometheus exporter: %w", err)
		}
		w.MeterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
		w.Handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	if cfg.traceOut != nil {
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(cfg.traceOut), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("observability: create stdout trace exporter: %w", err)
		}
		w.TracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(exporter),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		w.tracer = w.TracerProvider.Tracer(cfg.meterName)
	}

	meter := w.MeterProvider.Meter(cfg.meterName)

	var err error
	w.routesRegistered, err = meter.Int64Counter(
		"router_routes_registered_total",
		metric.WithDescription("Count of successful AddRoute calls, by resource kind."),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: create routes-registered counter: %w", err)
	}
	w.matchTotal, err = meter.Int64Counter(
		"router_match_total",
		metric.WithDescription("Count of MatchRoute calls, by result (hit/miss)."),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: create match counter: %w", err)
	}
	w.matchDuration, err = meter.Float64Histogram(
		"router_match_duration_seconds",
		metric.WithDescription("MatchRoute latency."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("observability: create match duration histogram: %w", err)
	}

	return w, nil
}

// newOTLPMeterProvider builds a MeterProvider pushing over OTLP/HTTP. The
// endpoint is accepted with or without a scheme; "http://" selects an
// insecure connection.
func newOTLPMeterProvider(cfg config) (*sdkmetric.MeterProvider, error) {
	var opts []otlpmetrichttp.Option
	if cfg.otlpEndpoint != "" {
		endpoint := cfg.otlpEndpoint
		insecure := false
		if strings.HasPrefix(endpoint, "http://") {
			endpoint = strings.TrimPrefix(endpoint, "http://")
			insecure = true
		} else {
			endpoint = strings.TrimPrefix(endpoint, "https://")
		}
		if idx := strings.IndexByte(endpoint, '/'); idx != -1 {
			endpoint = endpoint[:idx]
		}
		opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		if insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
	}
	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("observability: create otlp exporter: %w", err)
	}
	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.exportInterval))
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), nil
}

func newStdoutMeterProvider(cfg config) (*sdkmetric.MeterProvider, error) {
	out := cfg.metricsOut
	if out == nil {
		out = os.Stdout
	}
	exporter, err := stdoutmetric.New(stdoutmetric.WithEncoder(json.NewEncoder(out)))
	if err != nil {
		return nil, fmt.Errorf("observability: create stdout exporter: %w", err)
	}
	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(cfg.exportInterval))
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), nil
}

// Unwrap returns the wrapped *router.Router for operations this decorator
// does not instrument.
func (w *Router) Unwrap() *router.Router { return w.inner }

// Shutdown flushes and stops the meter provider and, when tracing is
// enabled, the tracer provider.
func (w *Router) Shutdown(ctx context.Context) error {
	err := w.MeterProvider.Shutdown(ctx)
	if w.TracerProvider != nil {
		if terr := w.TracerProvider.Shutdown(ctx); err == nil {
			err = terr
		}
	}
	return err
}

// AddRoute delegates to the wrapped Router, recording a count on success.
func (w *Router) AddRoute(rt *router.Route) error {
	err := w.inner.AddRoute(rt)
	if err == nil {
		w.routesRegistered.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("kind", rt.Kind().String())))
	}
	return err
}

// MatchRoute delegates to the wrapped Router, recording call latency, a
// hit/miss count, and (when tracing is enabled) a span.
func (w *Router) MatchRoute(path string) (router.RouteMatch, bool) {
	ctx := context.Background()
	var span trace.Span
	if w.tracer != nil {
		ctx, span = w.tracer.Start(ctx, "router.match", trace.WithSpanKind(trace.SpanKindInternal))
	}

	start := time.Now()
	m, ok := w.inner.MatchRoute(path)
	elapsed := time.Since(start).Seconds()

	result := "miss"
	if ok {
		result = "hit"
	}
	w.matchTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
	w.matchDuration.Record(ctx, elapsed, metric.WithAttributes(attribute.String("result", result)))

	if span != nil {
		span.SetAttributes(
			attribute.String("router.path", path),
			attribute.String("router.result", result),
		)
		if ok {
			span.SetAttributes(attribute.String("router.pattern", m.Route.Pattern()))
		}
		span.End()
	}
	return m, ok
}
