package repository

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/RaikyD/orders-tracker/internal/domain"
)

// MemoryStore keeps both tables in process memory behind one lock.
// Records are stored by value so callers never share state with the store.
type MemoryStore struct {
	mu          sync.RWMutex
	nextOrderID int64
	nextItemID  int64
	orders      map[int64]domain.Order
	items       map[int64]domain.ShoppingItem
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextOrderID: 1,
		nextItemID:  1,
		orders:      make(map[int64]domain.Order),
		items:       make(map[int64]domain.ShoppingItem),
	}
}

// Orders returns the order table view of the store.
func (m *MemoryStore) Orders() *MemoryOrders { return &MemoryOrders{store: m} }

// Items returns the shopping item table view of the store.
func (m *MemoryStore) Items() *MemoryItems { return &MemoryItems{store: m} }

type MemoryOrders struct{ store *MemoryStore }

var _ OrderRepo = (*MemoryOrders)(nil)

func (mo *MemoryOrders) Create(_ context.Context, o domain.Order) (domain.Order, error) {
	mo.store.mu.Lock()
	defer mo.store.mu.Unlock()
	o.ID = mo.store.nextOrderID
	mo.store.nextOrderID++
	mo.store.orders[o.ID] = o
	return o, nil
}

func (mo *MemoryOrders) GetByID(_ context.Context, id int64) (domain.Order, error) {
	mo.store.mu.RLock()
	defer mo.store.mu.RUnlock()
	o, ok := mo.store.orders[id]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	return o, nil
}

func (mo *MemoryOrders) List(_ context.Context, f OrderFilter) ([]domain.Order, error) {
	mo.store.mu.RLock()
	defer mo.store.mu.RUnlock()
	out := make([]domain.Order, 0, len(mo.store.orders))
	for _, id := range slices.Sorted(maps.Keys(mo.store.orders)) {
		o := mo.store.orders[id]
		if !o.Matches(f.Term) {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (mo *MemoryOrders) Replace(_ context.Context, o domain.Order) (domain.Order, error) {
	mo.store.mu.Lock()
	defer mo.store.mu.Unlock()
	if _, ok := mo.store.orders[o.ID]; !ok {
		return domain.Order{}, ErrNotFound
	}
	mo.store.orders[o.ID] = o
	return o, nil
}

func (mo *MemoryOrders) Delete(_ context.Context, id int64) error {
	mo.store.mu.Lock()
	defer mo.store.mu.Unlock()
	if _, ok := mo.store.orders[id]; !ok {
		return ErrNotFound
	}
	delete(mo.store.orders, id)
	return nil
}

type MemoryItems struct{ store *MemoryStore }

var _ ItemRepo = (*MemoryItems)(nil)

func (mi *MemoryItems) Create(_ context.Context, it domain.ShoppingItem) (domain.ShoppingItem, error) {
	mi.store.mu.Lock()
	defer mi.store.mu.Unlock()
	it.ID = mi.store.nextItemID
	mi.store.nextItemID++
	mi.store.items[it.ID] = it
	return it, nil
}

func (mi *MemoryItems) GetByID(_ context.Context, id int64) (domain.ShoppingItem, error) {
	mi.store.mu.RLock()
	defer mi.store.mu.RUnlock()
	it, ok := mi.store.items[id]
	if !ok {
		return domain.ShoppingItem{}, ErrNotFound
	}
	return it, nil
}

func (mi *MemoryItems) List(_ context.Context) ([]domain.ShoppingItem, error) {
	mi.store.mu.RLock()
	defer mi.store.mu.RUnlock()
	out := make([]domain.ShoppingItem, 0, len(mi.store.items))
	for _, id := range slices.Sorted(maps.Keys(mi.store.items)) {
		out = append(out, mi.store.items[id])
	}
	return out, nil
}

func (mi *MemoryItems) Replace(_ context.Context, it domain.ShoppingItem) (domain.ShoppingItem, error) {
	mi.store.mu.Lock()
	defer mi.store.mu.Unlock()
	if _, ok := mi.store.items[it.ID]; !ok {
		return domain.ShoppingItem{}, ErrNotFound
	}
	mi.store.items[it.ID] = it
	return it, nil
}

func (mi *MemoryItems) Delete(_ context.Context, id int64) error {
	mi.store.mu.Lock()
	defer mi.store.mu.Unlock()
	if _, ok := mi.store.items[id]; !ok {
		return ErrNotFound
	}
	delete(mi.store.items, id)
	return nil
}
