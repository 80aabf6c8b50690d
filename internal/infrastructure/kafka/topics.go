package kafka

import (
	"fmt"

	"github.com/koosco-commerce/inventory-service/pkg/config"
)

// TopicResolver resuelve el topic de publicación a partir del tipo de evento
// de integración.
type TopicResolver struct {
	mappings map[string]string
}

// NewTopicResolver construye el resolver desde la configuración de topics salientes.
func NewTopicResolver(topics config.TopicsConfig) *TopicResolver {
	return &TopicResolver{mappings: map[string]string{
		"stock.reserved":       topics.StockReserved,
		"stock.reserve.failed": topics.StockReserveFailed,
		"stock.confirmed":      topics.StockConfirmed,
		"stock.confirm.failed": topics.StockConfirmFailed,
	}}
}

// Resolve devuelve el topic del tipo de evento, o error si no hay mapeo.
func (r *TopicResolver) Resolve(eventType string) (string, error) {
	topic, ok := r.mappings[eventType]
	if !ok || topic == "" {
		return "", fmt.Errorf("sin topic configurado para el evento %q", eventType)
	}
	return topic, nil
}
