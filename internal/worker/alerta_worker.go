package worker

// alerta_worker.go
// Processes low-stock alert jobs from QueueAlertasStock and mails a summary
// to the configured recipient. Delivery goes through the circuit breaker so a
// dead SMTP relay fast-fails instead of stalling the pool.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/NibsNibsXD/Ferreteria-sub000/internal/infra"

	"github.com/rs/zerolog/log"
)

// AlertaStockWorker sends low-stock alert emails.
type AlertaStockWorker struct {
	mailer       *infra.Mailer
	breaker      *infra.CircuitBreaker
	destinatario string
}

func NewAlertaStockWorker(mailer *infra.Mailer, breaker *infra.CircuitBreaker, destinatario string) *AlertaStockWorker {
	return &AlertaStockWorker{mailer: mailer, breaker: breaker, destinatario: destinatario}
}

// Process mails the alert. Returns an error so the pool can retry / DLQ it;
// the triggering sale already reported success to its caller.
func (w *AlertaStockWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload AlertaStockJob
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}
	if len(payload.Productos) == 0 || w.destinatario == "" {
		return nil
	}

	var b strings.Builder
	b.WriteString("Productos con stock bajo el mínimo:\n\n")
	for _, p := range payload.Productos {
		fmt.Fprintf(&b, "- %s (código %s): stock %d, mínimo %d\n",
			p.Nombre, p.CodigoBarras, p.Stock, p.StockMinimo)
	}

	err := w.breaker.Execute(func() error {
		return w.mailer.Send(w.destinatario, "Alerta de stock bajo", b.String())
	})
	if err != nil {
		log.Error().Err(err).Int("productos", len(payload.Productos)).
			Msg("alerta_worker: failed to send alert")
		return err
	}
	log.Info().Int("productos", len(payload.Productos)).
		Str("to", w.destinatario).
		Msg("alerta_worker: low-stock alert sent")
	return nil
}
