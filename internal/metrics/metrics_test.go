package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAuthorization(t *testing.T) {
	m := New()
	m.ObserveAuthorization("ok")
	m.ObserveAuthorization("ok")
	m.ObserveAuthorization("validation")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Authorizations.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Authorizations.WithLabelValues("validation")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAuthorization("ok")
		m.ObserveDirectUpload("ok")
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveDirectUpload("ok")

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "uploadbroker_direct_uploads_total")
}
