// Package testutil holds in-memory fakes for usecase and handler tests.
package testutil

import (
	"context"
	"sync"

	"github.com/fekuna/campus-uniform-service/internal/model"
)

// Store is the shared in-memory state behind the fake repositories.
type Store struct {
	mu          sync.Mutex
	orders      map[string]*model.Order
	inventory   map[string]*model.InventoryItem
	movements   []model.InventoryMovement
	reports     []model.SalesReport
	productions map[string]*model.Production
}

func NewStore() *Store {
	return &Store{
		orders:      map[string]*model.Order{},
		inventory:   map[string]*model.InventoryItem{},
		productions: map[string]*model.Production{},
	}
}

type snapshot struct {
	orders      map[string]*model.Order
	inventory   map[string]*model.InventoryItem
	movements   []model.InventoryMovement
	reports     []model.SalesReport
	productions map[string]*model.Production
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := snapshot{
		orders:      make(map[string]*model.Order, len(s.orders)),
		inventory:   make(map[string]*model.InventoryItem, len(s.inventory)),
		movements:   append([]model.InventoryMovement(nil), s.movements...),
		reports:     append([]model.SalesReport(nil), s.reports...),
		productions: make(map[string]*model.Production, len(s.productions)),
	}
	for id, o := range s.orders {
		snap.orders[id] = copyOrder(o)
	}
	for id, item := range s.inventory {
		c := *item
		snap.inventory[id] = &c
	}
	for id, p := range s.productions {
		snap.productions[id] = copyProduction(p)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = snap.orders
	s.inventory = snap.inventory
	s.movements = snap.movements
	s.reports = snap.reports
	s.productions = snap.productions
}

// PutItem seeds an inventory row.
func (s *Store) PutItem(item model.InventoryItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory[item.ID] = &item
}

// Item returns a copy of the row for key, or nil.
func (s *Store) Item(key model.ItemKey) *model.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.inventory {
		if item.Key() == key {
			c := *item
			return &c
		}
	}
	return nil
}

func (s *Store) Movements() []model.InventoryMovement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.InventoryMovement(nil), s.movements...)
}

func (s *Store) Reports() []model.SalesReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.SalesReport(nil), s.reports...)
}

// PutOrder seeds an order as-is.
func (s *Store) PutOrder(o *model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = copyOrder(o)
}

func (s *Store) Order(id string) *model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[id]; ok {
		return copyOrder(o)
	}
	return nil
}

func (s *Store) Production(id string) *model.Production {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.productions[id]; ok {
		return copyProduction(p)
	}
	return nil
}

func copyOrder(o *model.Order) *model.Order {
	c := *o
	c.Receipts = append([]model.Receipt(nil), o.Receipts...)
	c.Items = append([]model.OrderItem(nil), o.Items...)
	return &c
}

func copyProduction(p *model.Production) *model.Production {
	c := *p
	c.Materials = append([]model.MaterialUsage(nil), p.Materials...)
	return &c
}

type txKey struct{}

// Transactor snapshots the store on entry and restores it when fn fails.
// Nested calls join the outer transaction.
type Transactor struct {
	store     *Store
	Commits   int
	Rollbacks int
}

func NewTransactor(store *Store) *Transactor {
	return &Transactor{store: store}
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	snap := t.store.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.store.restore(snap)
		t.Rollbacks++
		return err
	}
	t.Commits++
	return nil
}
