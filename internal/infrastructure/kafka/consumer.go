package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/koosco-commerce/inventory-service/internal/domain"
)

// errMensajeInvalido marca un payload que nunca va a poder procesarse;
// el consumidor lo confirma sin reintentar.
var errMensajeInvalido = errors.New("mensaje inválido")

// Handler procesa un evento entrante ya deserializado de su envoltura.
type Handler interface {
	Handle(ctx context.Context, ce CloudEvent) error
}

// HandlerFunc adapta una función al contrato Handler.
type HandlerFunc func(ctx context.Context, ce CloudEvent) error

func (f HandlerFunc) Handle(ctx context.Context, ce CloudEvent) error { return f(ctx, ce) }

// ConsumerConfig parametriza un consumidor de un tópico.
type ConsumerConfig struct {
	Brokers         []string
	GroupID         string
	Topic           string
	DeadLetterTopic string
	MaxRetries      int
}

// Consumer lee un tópico con commits manuales: solo confirma el offset
// cuando el mensaje terminó (procesado, descartado como terminal, o
// derivado a la dead letter queue tras agotar reintentos).
type Consumer struct {
	reader     *kafka.Reader
	dlq        *kafka.Writer
	handler    Handler
	maxRetries int
	log        zerolog.Logger
}

func NewConsumer(cfg ConsumerConfig, handler Handler, log zerolog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0, // commits explícitos
	})

	var dlq *kafka.Writer
	if cfg.DeadLetterTopic != "" {
		dlq = &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.DeadLetterTopic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		}
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &Consumer{
		reader:     reader,
		dlq:        dlq,
		handler:    handler,
		maxRetries: maxRetries,
		log:        log.With().Str("componente", "kafka_consumer").Str("topico", cfg.Topic).Logger(),
	}
}

// Run consume mensajes hasta que el contexto se cancele.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("leyendo mensaje de kafka: %w", err)
		}

		if err := c.process(ctx, msg); err != nil {
			return err
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("confirmando offset: %w", err)
		}
	}
}

func (c *Consumer) process(ctx context.Context, msg kafka.Message) error {
	var ce CloudEvent
	if err := json.Unmarshal(msg.Value, &ce); err != nil {
		c.log.Warn().Err(err).
			Int64("offset", msg.Offset).
			Msg("envoltura ilegible, se descarta el mensaje")
		return nil
	}

	err := c.handleWithRetry(ctx, ce)
	if err == nil {
		return nil
	}

	c.log.Error().Err(err).
		Str("evento", ce.Type).
		Str("id", ce.ID).
		Msg("reintentos agotados, enviando a dead letter")

	if c.dlq == nil {
		return nil
	}
	if dlqErr := c.dlq.WriteMessages(ctx, kafka.Message{Key: msg.Key, Value: msg.Value}); dlqErr != nil {
		// Sin DLQ posible conviene no confirmar el offset y dejar que
		// el rebalanceo reintente desde aquí.
		return fmt.Errorf("escribiendo en dead letter: %w", dlqErr)
	}
	return nil
}

func (c *Consumer) handleWithRetry(ctx context.Context, ce CloudEvent) error {
	backoff := 200 * time.Millisecond
	var err error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		err = c.handler.Handle(ctx, ce)
		if err == nil {
			return nil
		}
		if isTerminal(err) {
			c.log.Warn().Err(err).
				Str("evento", ce.Type).
				Str("id", ce.ID).
				Msg("error de negocio terminal, se confirma sin reintentar")
			return nil
		}
		if attempt < c.maxRetries {
			c.log.Warn().Err(err).
				Int("intento", attempt).
				Str("evento", ce.Type).
				Msg("fallo transitorio, reintentando")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	return err
}

// isTerminal distingue errores de negocio (reintentar no cambia nada)
// de fallos de infraestructura.
func isTerminal(err error) bool {
	return errors.Is(err, errMensajeInvalido) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrAlreadyInitialized) ||
		errors.Is(err, domain.ErrAdjustNotAllowed)
}

// Close libera el lector y el writer de dead letter.
func (c *Consumer) Close() error {
	err := c.reader.Close()
	if c.dlq != nil {
		if dlqErr := c.dlq.Close(); err == nil {
			err = dlqErr
		}
	}
	return err
}
