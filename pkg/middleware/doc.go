// Package middleware provides HTTP middleware for the live server.
//
// This package includes:
//   - Prometheus request metrics
//   - OpenTelemetry request tracing
//   - Structured request logging
//
// All three label requests by their chi route pattern ("/events/{vid}/{event}")
// rather than the raw path, which keeps metric cardinality bounded.
//
// # Prometheus Metrics
//
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus(
//	    middleware.WithRegistry(reg),
//	))
//
// Metrics collected:
//   - viridian_http_requests_total: requests by route and status class
//   - viridian_http_request_duration_seconds: request latency by route
//
// # OpenTelemetry
//
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/metrics"
//	    }),
//	))
//
// The tracer comes from the global provider; configure it with
// otel.SetTracerProvider before serving.
package middleware
