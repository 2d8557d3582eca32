package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/Taller-api/internal/application/stock"
	"github.com/jhoicas/Taller-api/pkg/logger"
	"github.com/segmentio/kafka-go"
)

var _ stock.AuditSink = (*KafkaSink)(nil)

// KafkaSink publica eventos de auditoría en un tópico de Kafka.
// Un fallo de publicación se registra y se descarta: la auditoría nunca
// revierte una operación de inventario.
type KafkaSink struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewKafkaSink crea el sink. key de partición = actor_id para mantener orden
// por actor.
func NewKafkaSink(brokers []string, topic string, log *logger.Logger) *KafkaSink {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Compression:  kafka.Snappy,
	}
	return &KafkaSink{writer: writer, log: log}
}

// Report serializa y publica el evento. Errores solo se registran.
func (s *KafkaSink) Report(ctx context.Context, ev stock.AuditEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		s.log.Error().Err(err).Str("operation", ev.Operation).Msg("audit: no se pudo serializar el evento")
		return
	}
	msg := kafka.Message{
		Key:   []byte(ev.ActorID),
		Value: payload,
		Time:  ev.At,
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("operation", ev.Operation).Msg("audit: fallo publicando en kafka")
	}
}

// Close cierra el writer (drena el batch pendiente).
func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
