package order

import (
	"context"
	"sync"

	"github.com/figureworks/backoffice/internal/entity"
)

// Memory keeps the order collection in process memory. A single RWMutex
// serializes the one mutation path against readers, so a reader never
// observes a partially updated record. Insertion order is preserved; ids
// are assigned monotonically when not set by the caller.
type Memory struct {
	mu     sync.RWMutex
	orders []*entity.Order
	byID   map[int64]*entity.Order
	nextID int64
}

// NewMemory builds an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		byID:   make(map[int64]*entity.Order),
		nextID: 1,
	}
}

// Insert appends orders to the collection, assigning ids where missing.
func (m *Memory) Insert(ctx context.Context, orders []entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range orders {
		o := orders[i]
		if o.ID == 0 {
			o.ID = m.nextID
		}
		if o.ID >= m.nextID {
			m.nextID = o.ID + 1
		}
		stored := o
		m.orders = append(m.orders, &stored)
		m.byID[stored.ID] = &stored
	}
	return nil
}

// List returns a snapshot of all orders in insertion (ascending id) order.
// The returned slice is a copy; records within it share immutable item data.
func (m *Memory) List(ctx context.Context) ([]entity.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

// FindByID returns a copy of the order with the given id, or ErrNotFound.
func (m *Memory) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

// UpdateStatus mutates the status of the addressed order in place and
// returns the updated record. Idempotent: repeating the same status leaves
// the record unchanged.
func (m *Memory) UpdateStatus(ctx context.Context, id int64, status entity.OrderStatus) (*entity.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.Status = status
	cp := *o
	return &cp, nil
}
