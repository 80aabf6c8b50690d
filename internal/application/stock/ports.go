package stock

import (
	"context"

	"github.com/koosco-commerce/inventory-service/internal/application/integration"
	"github.com/koosco-commerce/inventory-service/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén, pasando
// repositorios atados a esa transacción. Garantiza atomicidad para las dos
// fases del motor de reservas: los locks de la fase 1 se sueltan en el
// Commit/Rollback, nunca antes.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invRepo repository.InventoryRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// IntegrationEventPublisher publica eventos de integración al bus. Los casos de
// uso solo lo invocan después del commit (o rollback) de la transacción, nunca
// con locks tomados.
type IntegrationEventPublisher interface {
	Publish(ctx context.Context, ev integration.Event) error
}
