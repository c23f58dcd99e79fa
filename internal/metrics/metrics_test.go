package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kademe/manage-user/internal/metrics"
)

func TestObserve_ExposedOnHandler(t *testing.T) {
	m := metrics.New()
	m.Observe("delete_user", http.StatusForbidden, 20*time.Millisecond)
	m.Observe("", http.StatusUnauthorized, time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := w.Body.String()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, `manage_user_requests_total{action="delete_user",status="403"} 1`)
	assert.Contains(t, body, `manage_user_requests_total{action="none",status="401"} 1`)
	assert.Contains(t, body, "manage_user_request_duration_seconds_bucket")
}

func TestObserve_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics

	assert.NotPanics(t, func() {
		m.Observe("update_password", http.StatusOK, time.Millisecond)
	})
}
