package observability

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/ports"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics()

	m.ObserveRequest(domain.RouteConvert, ports.OutcomeOK, 10*time.Millisecond)
	m.ObserveRequest(domain.RouteConvert, ports.OutcomeOK, 20*time.Millisecond)
	m.ObserveRequest(domain.RouteHistory, ports.OutcomeTransport, time.Millisecond)
	m.ObserveDiscard("history")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(domain.RouteConvert, ports.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(domain.RouteHistory, ports.OutcomeTransport)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.discards.WithLabelValues("history")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.duration))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.ObserveDiscard("convert")

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `zconv_stale_responses_total{operation="convert"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
