package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/3-lines-studio/plusfiles/internal/core"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(core.PageUser, http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest(core.PageUser, http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest(core.PageAbout, http.StatusInternalServerError, time.Millisecond)
	m.ObserveRequest("", http.StatusInternalServerError, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues("user", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("about", "500")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unrouted", "500")))
	assert.Equal(t, 3, testutil.CollectAndCount(m.duration))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRequest(core.PageIndex, http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `plusfiles_requests_total{page="index",status="200"} 1`)
}
