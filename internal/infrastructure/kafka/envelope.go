package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CloudEvent envoltura mínima estilo CloudEvents para los mensajes del bus.
// Data transporta el payload específico del tipo.
type CloudEvent struct {
	ID            string          `json:"id"`
	Source        string          `json:"source"`
	Type          string          `json:"type"`
	Subject       string          `json:"subject,omitempty"`
	Time          time.Time       `json:"time"`
	CorrelationID string          `json:"correlationId,omitempty"`
	Data          json.RawMessage `json:"data"`
}

// NewCloudEvent arma la envoltura serializando data como payload.
func NewCloudEvent(source, eventType, subject, correlationID string, data any) (CloudEvent, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return CloudEvent{}, fmt.Errorf("serializar payload de %s: %w", eventType, err)
	}
	return CloudEvent{
		ID:            uuid.New().String(),
		Source:        source,
		Type:          eventType,
		Subject:       subject,
		Time:          time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          payload,
	}, nil
}
