package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PoolBooking/pkg/metrics"
)

type recordingLogger struct {
	lines []string
}

func (l *recordingLogger) Info(format string, v ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func newRouter(m *metrics.Metrics, log Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m), RequestLogger(log))
	r.HandleFunc("/api/v1/verification/sessions/{sessionId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodDelete)
	return r
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "pool-booking")
	log := &recordingLogger{}
	router := newRouter(m, log)

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/verification/sessions/"+id, nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	}

	counter := m.HTTPRequestsTotal.WithLabelValues(http.MethodDelete, "/api/v1/verification/sessions/{sessionId}", "204")
	assert.Equal(t, 2.0, testutil.ToFloat64(counter))
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequestsTotal))

	if assert.Len(t, log.lines, 2) {
		assert.Contains(t, log.lines[0], "DELETE /api/v1/verification/sessions/{sessionId} -> 204")
	}
}

func TestRequestLogger(t *testing.T) {
	log := &recordingLogger{}

	r := mux.NewRouter()
	r.Use(RequestLogger(log))
	r.HandleFunc("/api/v1/verification/sessions/{sessionId}/verify", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusGone)
	}).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/pool-workload", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}).Methods(http.MethodGet)

	tests := []struct {
		method string
		target string
		want   string
	}{
		{method: http.MethodPost, target: "/api/v1/verification/sessions/abc/verify", want: "POST /api/v1/verification/sessions/{sessionId}/verify -> 410"},
		{method: http.MethodGet, target: "/api/v1/pool-workload?start_hour=9", want: "GET /api/v1/pool-workload -> 200"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
	}

	require.Len(t, log.lines, len(tests))
	for i, tt := range tests {
		assert.Contains(t, log.lines[i], tt.want)
		assert.NotContains(t, log.lines[i], "abc")
	}
}
