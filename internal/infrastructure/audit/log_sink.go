package audit

import (
	"context"

	"github.com/jhoicas/Taller-api/internal/application/stock"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

var _ stock.AuditSink = (*LogSink)(nil)

// LogSink escribe los eventos de auditoría al log estructurado.
// Se usa cuando no hay brokers de Kafka configurados (desarrollo, tests).
type LogSink struct {
	log *logger.Logger
}

func NewLogSink(log *logger.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Report(_ context.Context, ev stock.AuditEvent) {
	evt := s.log.Info()
	if !ev.Success {
		evt = s.log.Warn()
	}
	evt.
		Str("operation", ev.Operation).
		Str("actor_id", ev.ActorID).
		Str("product_id", ev.ProductID).
		Str("movement_id", ev.MovementID).
		Str("reference", ev.Reference).
		Int64("quantity", ev.Quantity).
		Bool("success", ev.Success).
		Str("error", ev.Error).
		Time("at", ev.At).
		Msg("audit")
}
