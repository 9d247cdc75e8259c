package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentEmitted_CuentaPorTipo(t *testing.T) {
	m := New()
	m.DocumentEmitted("GD")
	m.DocumentEmitted("GD")
	m.DocumentEmitted("FACT")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.documents.WithLabelValues("GD")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.documents.WithLabelValues("FACT")))
}

func TestObserveRequest_ContadorEHistograma(t *testing.T) {
	m := New()
	m.ObserveRequest("POST", "/api/ordenes", 201, 30*time.Millisecond)
	m.ObserveRequest("POST", "/api/ordenes", 400, 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/ordenes", "201")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.latency))
}

func TestHandler_ExponeMetricas(t *testing.T) {
	m := New()
	m.DocumentEmitted("FACT")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(string(body), `arriendos_documents_emitted_total{tipo="FACT"} 1`))
}
