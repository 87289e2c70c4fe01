package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
)

func router(mw ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(mw...)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	r.Get("/plain", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPrometheusLabelsByRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := router(Prometheus(WithRegistry(reg)))

	serve(h, "/items/1")
	serve(h, "/items/2")
	serve(h, "/boom")
	serve(h, "/plain")
	serve(h, "/missing")

	expected := `
# HELP viridian_http_requests_total HTTP requests served
# TYPE viridian_http_requests_total counter
viridian_http_requests_total{method="GET",route="/boom",status="5xx"} 1
viridian_http_requests_total{method="GET",route="/items/{id}",status="2xx"} 2
viridian_http_requests_total{method="GET",route="/plain",status="2xx"} 1
viridian_http_requests_total{method="GET",route="unmatched",status="4xx"} 1
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "viridian_http_requests_total"); err != nil {
		t.Error(err)
	}
	if n, err := testutil.GatherAndCount(reg, "viridian_http_request_duration_seconds"); err != nil || n != 4 {
		t.Errorf("duration series = %d (%v), want 4", n, err)
	}
}

func TestPrometheusNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := router(Prometheus(WithRegistry(reg), WithNamespace("app"), WithSubsystem("web")))
	serve(h, "/plain")
	if n, err := testutil.GatherAndCount(reg, "app_web_requests_total"); err != nil || n != 1 {
		t.Errorf("app_web_requests_total series = %d (%v), want 1", n, err)
	}
}

func TestOpenTelemetryPassesThrough(t *testing.T) {
	var traced bool
	extracted := 0
	r := chi.NewRouter()
	r.Use(OpenTelemetry(
		WithTracerName("test"),
		WithAttributeExtractor(func(*http.Request) []attribute.KeyValue {
			extracted++
			return []attribute.KeyValue{attribute.String("k", "v")}
		}),
		WithRequestFilter(func(r *http.Request) bool { return r.URL.Path != "/skip" }),
	))
	r.Get("/traced", func(w http.ResponseWriter, r *http.Request) {
		traced = SpanFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusAccepted)
	})
	r.Get("/skip", func(w http.ResponseWriter, r *http.Request) {})

	if rec := serve(r, "/traced"); rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}
	serve(r, "/skip")

	if !traced {
		t.Error("traced handler did not run")
	}
	if extracted != 1 {
		t.Errorf("extractor ran %d times, want 1 (filtered request skipped)", extracted)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := router(Logger(logger))

	serve(h, "/items/7")
	serve(h, "/boom")

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, `route=/items/{id}`) || !strings.Contains(out, "status=204") {
		t.Errorf("missing debug line:\n%s", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "status=500") {
		t.Errorf("5xx not logged at warn:\n%s", out)
	}
}

func TestStatusClass(t *testing.T) {
	tests := map[int]string{0: "2xx", 200: "2xx", 302: "3xx", 404: "4xx", 503: "5xx"}
	for code, want := range tests {
		if got := statusClass(code); got != want {
			t.Errorf("statusClass(%d) = %q, want %q", code, got, want)
		}
	}
}
