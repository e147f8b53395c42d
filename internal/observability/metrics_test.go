package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avarouter/internal/util"
)

func TestNewMetrics(t *testing.T) {
	t.Parallel()

	m := NewMetrics("test_ns")
	require.NotNil(t, m)
	require.NotNil(t, m.Registry())

	m.RecordRequest("GET", "/users/{id}", 200, 5*time.Millisecond, 128)
	m.SetBuildInfo("1.0.0", "abc123", "2026-01-01")

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["test_ns_requests_total"])
	assert.True(t, names["test_ns_request_duration_seconds"])
	assert.True(t, names["test_ns_build_info"])
	assert.True(t, names["test_ns_start_time_seconds"])
}

func TestNewMetricsDefaultNamespace(t *testing.T) {
	t.Parallel()

	m := NewMetrics("")
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	found := false
	for _, f := range families {
		if f.GetName() == "avarouter_start_time_seconds" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestMetricsHandler(t *testing.T) {
	t.Parallel()

	m := NewMetrics("handler_ns")
	m.RecordRequest("GET", "/", 200, time.Millisecond, 16)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "handler_ns_requests_total")
}

func TestRegisterCollector(t *testing.T) {
	t.Parallel()

	m := NewMetrics("collector_ns")
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "collector_ns_extra_total",
		Help: "Extra counter",
	})
	require.NoError(t, m.RegisterCollector(c))
	assert.Error(t, m.RegisterCollector(c))
}

func TestMetricsMiddleware(t *testing.T) {
	t.Parallel()

	m := NewMetrics("mw_ns")

	handler := MetricsMiddleware(m)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			util.RecordRoute(w, "/users/{id}")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("created"))
		},
	))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users/42", nil)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var recorded bool
	for _, f := range families {
		if f.GetName() != "mw_ns_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "route" &&
					label.GetValue() == "/users/{id}" {
					recorded = true
				}
			}
		}
	}
	assert.True(t, recorded, "expected route label on requests_total")
}

func TestMetricsMiddlewareUnmatched(t *testing.T) {
	t.Parallel()

	m := NewMetrics("unmatched_ns")

	handler := MetricsMiddleware(m)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	handler.ServeHTTP(rec, req)

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var recorded bool
	for _, f := range families {
		if f.GetName() != "unmatched_ns_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "route" &&
					label.GetValue() == unmatchedRoute {
					recorded = true
				}
			}
		}
	}
	assert.True(t, recorded, "expected unmatched route label")
}

func TestMetricsMiddlewareUsesContextStartTime(t *testing.T) {
	t.Parallel()

	m := NewMetrics("start_ns")

	handler := MetricsMiddleware(m)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			util.RecordRoute(w, "/")
			w.WriteHeader(http.StatusOK)
		},
	))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx := util.ContextWithStartTime(req.Context(), time.Now().Add(-2*time.Second))
	handler.ServeHTTP(rec, req.WithContext(ctx))

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	var sum float64
	for _, f := range families {
		if f.GetName() != "start_ns_request_duration_seconds" {
			continue
		}
		for _, metric := range f.GetMetric() {
			sum += metric.GetHistogram().GetSampleSum()
		}
	}
	assert.GreaterOrEqual(t, sum, 2.0,
		"expected duration measured from the context start time")
}
