package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics(func() int { return 3 })

	m.ObserveIntent("TurnOn")
	m.ObserveIntent("TurnOn")
	m.ObserveRequest("ok", 10*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.intents.WithLabelValues("TurnOn")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("ok")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.homes))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics(nil)
	m.ObserveIntent("HomeStatus")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `clova_home_intents_total{intent="HomeStatus"} 1`)
}
