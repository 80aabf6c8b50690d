// Package redis implementa la deduplicación de mensajes sobre Redis.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard registra la primera entrega de cada operación por pedido usando
// SETNX con expiración. Las claves caducan solas: pasado el TTL un
// reenvío volvería a procesarse, lo cual es aceptable porque las
// operaciones de stock son seguras ante repetición tardía.
type Guard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGuard construye la guardia con el TTL de deduplicación.
func NewGuard(client *redis.Client, ttl time.Duration) *Guard {
	return &Guard{client: client, ttl: ttl}
}

// FirstDelivery devuelve true si es la primera vez que se ve la pareja
// (operación, pedido). Un error indica que Redis no está disponible y
// el llamador decide si procesa de todos modos.
func (g *Guard) FirstDelivery(ctx context.Context, operation, orderID string) (bool, error) {
	key := fmt.Sprintf("inventory:idem:%s:%s", operation, orderID)
	ok, err := g.client.SetNX(ctx, key, "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("consultando guardia de idempotencia: %w", err)
	}
	return ok, nil
}
