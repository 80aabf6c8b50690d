package stock_test

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/koosco-commerce/inventory-service/internal/application/integration"
	"github.com/koosco-commerce/inventory-service/internal/application/stock"
	"github.com/koosco-commerce/inventory-service/internal/domain"
	"github.com/koosco-commerce/inventory-service/internal/domain/entity"
	"github.com/koosco-commerce/inventory-service/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica transaccional: el mutex del runner emula los
// locks de fila (las transacciones se serializan) y un error del callback
// deshace todos los cambios, como el rollback real.
// ──────────────────────────────────────────────────────────────────────────────

type row struct {
	total    int
	reserved int
}

type memStore struct {
	mu        sync.Mutex
	rows      map[string]row
	movements []entity.StockMovement
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[string]row)}
}

func (s *memStore) seed(skuID string, total, reserved int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[skuID] = row{total: total, reserved: reserved}
}

func (s *memStore) get(skuID string) (row, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[skuID]
	return r, ok
}

func (s *memStore) movementsOf(skuID string) []entity.StockMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.StockMovement
	for _, m := range s.movements {
		if m.SkuID == skuID {
			out = append(out, m)
		}
	}
	return out
}

type memTxRunner struct {
	store *memStore
}

var _ stock.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(_ context.Context, fn func(repository.InventoryRepository, repository.StockMovementRepository) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshot := maps.Clone(r.store.rows)
	movCount := len(r.store.movements)

	err := fn(&memInventoryRepo{store: r.store}, &memMovementRepo{store: r.store})
	if err != nil {
		r.store.rows = snapshot
		r.store.movements = r.store.movements[:movCount]
		return err
	}
	return nil
}

// memInventoryRepo opera sobre el store ya bloqueado por el runner.
type memInventoryRepo struct {
	store *memStore
}

var _ repository.InventoryRepository = (*memInventoryRepo)(nil)

func (m *memInventoryRepo) FindBySkuID(_ context.Context, skuID string) (*entity.Inventory, error) {
	r, ok := m.store.rows[skuID]
	if !ok {
		return nil, nil
	}
	return entity.RestoreInventory(skuID, r.total, r.reserved)
}

func (m *memInventoryRepo) FindAllBySkuID(_ context.Context, skuIDs []string) ([]*entity.Inventory, error) {
	var out []*entity.Inventory
	seen := make(map[string]bool)
	for _, id := range skuIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		r, ok := m.store.rows[id]
		if !ok {
			continue
		}
		inv, err := entity.RestoreInventory(id, r.total, r.reserved)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, nil
}

func (m *memInventoryRepo) FindAllBySkuIDForUpdate(ctx context.Context, skuIDs []string) ([]*entity.Inventory, error) {
	return m.FindAllBySkuID(ctx, skuIDs)
}

func (m *memInventoryRepo) Create(_ context.Context, inv *entity.Inventory) error {
	if _, ok := m.store.rows[inv.SkuID()]; ok {
		return fmt.Errorf("%w: SKU %s", domain.ErrAlreadyInitialized, inv.SkuID())
	}
	m.store.rows[inv.SkuID()] = row{total: inv.Stock().Total(), reserved: inv.Stock().Reserved()}
	return nil
}

func (m *memInventoryRepo) Save(_ context.Context, inv *entity.Inventory) error {
	if _, ok := m.store.rows[inv.SkuID()]; !ok {
		return fmt.Errorf("%w: SKU %s", domain.ErrNotFound, inv.SkuID())
	}
	m.store.rows[inv.SkuID()] = row{total: inv.Stock().Total(), reserved: inv.Stock().Reserved()}
	return nil
}

func (m *memInventoryRepo) ExistsBySkuID(_ context.Context, skuID string) (bool, error) {
	_, ok := m.store.rows[skuID]
	return ok, nil
}

type memMovementRepo struct {
	store *memStore
}

var _ repository.StockMovementRepository = (*memMovementRepo)(nil)

func (m *memMovementRepo) Create(_ context.Context, mov *entity.StockMovement) error {
	m.store.movements = append(m.store.movements, *mov)
	return nil
}

func (m *memMovementRepo) FindByFilter(_ context.Context, f repository.StockMovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := range m.store.movements {
		mov := m.store.movements[i]
		if f.SkuID != "" && mov.SkuID != f.SkuID {
			continue
		}
		out = append(out, &mov)
	}
	return out, nil
}

// memPublisher captura los eventos de integración publicados.
type memPublisher struct {
	mu     sync.Mutex
	events []integration.Event
	err    error // si no es nil, Publish falla
}

var _ stock.IntegrationEventPublisher = (*memPublisher)(nil)

func (p *memPublisher) Publish(_ context.Context, ev integration.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *memPublisher) published() []integration.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]integration.Event, len(p.events))
	copy(out, p.events)
	return out
}
