package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vyrodovalexey/avarouter/internal/observability"
	"github.com/vyrodovalexey/avarouter/internal/util"
)

func TestRequestIDGeneratesID(t *testing.T) {
	t.Parallel()

	var seen string
	handler := RequestID()(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			seen = util.RequestIDFromContext(r.Context())
		},
	))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(rec, req)

	require.NotEmpty(t, seen)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestRequestIDHonorsExistingHeader(t *testing.T) {
	t.Parallel()

	var seen string
	handler := RequestID()(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			seen = util.RequestIDFromContext(r.Context())
		},
	))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "client-supplied")
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "client-supplied", seen)
	assert.Equal(t, "client-supplied", rec.Header().Get(RequestIDHeader))
}

func TestRequestIDWithGenerator(t *testing.T) {
	t.Parallel()

	handler := RequestIDWithGenerator(func() string { return "fixed-id" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "fixed-id", rec.Header().Get(RequestIDHeader))
}

func TestLogging(t *testing.T) {
	t.Parallel()

	handler := Logging(observability.NopLogger())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.False(t, util.ElapsedTime(r.Context()) < 0)
			w.WriteHeader(http.StatusAccepted)
		},
	))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/42?q=1", nil)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

// captureLogger records log fields for assertions.
type captureLogger struct {
	fields []observability.Field
}

func (l *captureLogger) Debug(msg string, fields ...observability.Field) { l.capture(fields) }
func (l *captureLogger) Info(msg string, fields ...observability.Field)  { l.capture(fields) }
func (l *captureLogger) Warn(msg string, fields ...observability.Field)  { l.capture(fields) }
func (l *captureLogger) Error(msg string, fields ...observability.Field) { l.capture(fields) }
func (l *captureLogger) Fatal(msg string, fields ...observability.Field) { l.capture(fields) }

func (l *captureLogger) With(fields ...observability.Field) observability.Logger { return l }

func (l *captureLogger) WithContext(ctx context.Context) observability.Logger { return l }

func (l *captureLogger) Sync() error { return nil }

func (l *captureLogger) capture(fields []observability.Field) {
	l.fields = append(l.fields, fields...)
}

func (l *captureLogger) stringField(key string) string {
	for _, f := range l.fields {
		if f.Key == key {
			return f.String
		}
	}
	return ""
}

func TestLoggingRecordsMatchedRoute(t *testing.T) {
	t.Parallel()

	logger := &captureLogger{}
	handler := Logging(logger)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			util.RecordRoute(w, "/users/{id}")
			w.WriteHeader(http.StatusOK)
		},
	))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/users/42", nil)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "/users/{id}", logger.stringField("route"))
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	handler := Recovery(observability.NopLogger())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		},
	))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestRecoveryPassthrough(t *testing.T) {
	t.Parallel()

	handler := Recovery(observability.NopLogger())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		},
	))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestChainOrder(t *testing.T) {
	t.Parallel()

	var order []string
	mk := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		},
	), mk("outer"), mk("inner"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(rec, req)

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestGetMiddlewareMetricsSingleton(t *testing.T) {
	t.Parallel()

	assert.Same(t, GetMiddlewareMetrics(), GetMiddlewareMetrics())
}
