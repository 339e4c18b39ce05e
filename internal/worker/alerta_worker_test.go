package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertaWorkerPayloadInvalidoNoReintenta(t *testing.T) {
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	w := NewAlertaStockWorker(nil, cb, "deposito@ferreteria.test")

	var err error
	assert.NotPanics(t, func() {
		err = w.Process(context.Background(), json.RawMessage(`{not json`))
	})
	assert.NoError(t, err, "malformed payloads are dropped, never retried")
}

func TestAlertaWorkerSinProductosNiDestinatario(t *testing.T) {
	cb := infra.NewCircuitBreaker(infra.DefaultCBConfig())

	vacio := mustJSON(t, AlertaStockJob{})
	w := NewAlertaStockWorker(nil, cb, "deposito@ferreteria.test")
	assert.NoError(t, w.Process(context.Background(), vacio))

	conProductos := mustJSON(t, AlertaStockJob{Productos: []ProductoBajoStock{{Nombre: "Lija", Stock: 0, StockMinimo: 5}}})
	sinDestino := NewAlertaStockWorker(nil, cb, "")
	assert.NoError(t, sinDestino.Process(context.Background(), conProductos))
}

// With the breaker open the worker fast-fails and reports the error so the
// pool can retry later — the mailer is never touched.
func TestAlertaWorkerBreakerAbierto(t *testing.T) {
	cb := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{FailureThreshold: 1, SuccessThreshold: 1, OpenTimeout: time.Hour})
	require.Error(t, cb.Execute(func() error { return assert.AnError }))
	require.Equal(t, infra.CBOpen, cb.State())

	w := NewAlertaStockWorker(nil, cb, "deposito@ferreteria.test")
	payload := mustJSON(t, AlertaStockJob{Productos: []ProductoBajoStock{
		{Nombre: "Taladro", CodigoBarras: "555", Stock: 1, StockMinimo: 3},
	}})

	err := w.Process(context.Background(), payload)
	assert.ErrorIs(t, err, infra.ErrCircuitOpen)
}

func mustJSON(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}
