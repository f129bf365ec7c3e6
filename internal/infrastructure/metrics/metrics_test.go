package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/metrics"
)

func seriesCount(t *testing.T, r *metrics.Registry, name string) int {
	t.Helper()
	families, err := r.Gatherer().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return len(f.GetMetric())
		}
	}
	return 0
}

func scrape(t *testing.T, r *metrics.Registry) string {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRegistry_Movimientos(t *testing.T) {
	r := metrics.New()
	r.MovementRecorded(entity.MovementIncoming, 100)
	r.MovementRecorded(entity.MovementOutgoing, 30)
	r.MovementRecorded(entity.MovementOutgoing, 5)
	r.OutputRejected("insufficient_stock")

	assert.Equal(t, 2, seriesCount(t, r, "inventario_movements_total"), "una serie por tipo")

	text := scrape(t, r)
	assert.Contains(t, text, `inventario_movement_units_total{type="OUTGOING"} 35`)
	assert.Contains(t, text, `inventario_movement_units_total{type="INCOMING"} 100`)
	assert.Contains(t, text, `inventario_movements_total{type="OUTGOING"} 2`)
	assert.Contains(t, text, `inventario_outputs_rejected_total{reason="insufficient_stock"} 1`)
}

func TestRegistry_HTTP(t *testing.T) {
	r := metrics.New()
	r.ObserveRequest("GET", "/api/products", "200", 0.01)
	r.ObserveRequest("GET", "/api/products", "200", 0.02)

	assert.Equal(t, 1, seriesCount(t, r, "inventario_http_requests_total"))
	assert.Contains(t, scrape(t, r), `inventario_http_requests_total{method="GET",route="/api/products",status="200"} 2`)
}
