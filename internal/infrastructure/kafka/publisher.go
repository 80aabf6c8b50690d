package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/koosco-commerce/inventory-service/internal/application/integration"
	"github.com/koosco-commerce/inventory-service/internal/application/stock"
	"github.com/koosco-commerce/inventory-service/pkg/logger"
)

var _ stock.IntegrationEventPublisher = (*Publisher)(nil)

// Publisher publica eventos de integración envueltos en CloudEvent, un topic
// por tipo de evento y la orden como clave de partición.
type Publisher struct {
	writer *kafka.Writer
	topics *TopicResolver
	source string
	log    *logger.Logger
}

// NewPublisher construye el publicador. source identifica este servicio en la
// envoltura CloudEvent.
func NewPublisher(brokers []string, topics *TopicResolver, source string, log *logger.Logger) *Publisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
		RequiredAcks: kafka.RequireAll,
	}
	return &Publisher{writer: w, topics: topics, source: source, log: log}
}

// Publish serializa y envía el evento al topic que le corresponde.
func (p *Publisher) Publish(ctx context.Context, ev integration.Event) error {
	topic, err := p.topics.Resolve(ev.EventType())
	if err != nil {
		return err
	}

	// El correlationId viaja dentro del payload del evento; la envoltura no lo duplica.
	ce, err := NewCloudEvent(p.source, ev.EventType(), ev.Subject(), "", ev)
	if err != nil {
		return err
	}
	value, err := json.Marshal(ce)
	if err != nil {
		return fmt.Errorf("serializar CloudEvent %s: %w", ce.ID, err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(ev.PartitionKey()),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publicar %s en %s: %w", ev.EventType(), topic, err)
	}

	p.log.Info().
		Str("event_id", ce.ID).
		Str("event_type", ce.Type).
		Str("topic", topic).
		Msg("evento de integración publicado")
	return nil
}

// Close cierra el writer subyacente.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
