package testutil

import (
	"context"
	"sort"

	"github.com/fekuna/campus-uniform-service/internal/inventory"
	"github.com/fekuna/campus-uniform-service/internal/inventory/dto"
	"github.com/fekuna/campus-uniform-service/internal/model"
)

var _ inventory.Repository = (*InventoryRepo)(nil)

type InventoryRepo struct {
	store *Store
}

func NewInventoryRepo(store *Store) *InventoryRepo {
	return &InventoryRepo{store: store}
}

func (r *InventoryRepo) GetByKey(_ context.Context, key model.ItemKey, _ bool) (*model.InventoryItem, error) {
	return r.store.Item(key), nil
}

func (r *InventoryRepo) FindFinishedGood(_ context.Context, level, productType, size string, _ bool) (*model.InventoryItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var found *model.InventoryItem
	for _, item := range r.store.inventory {
		if !item.Kind.IsFinishedGood() || item.Level != level || item.ProductType != productType || item.Size != size {
			continue
		}
		if found == nil || item.CreatedAt.Before(found.CreatedAt) {
			found = item
		}
	}
	if found == nil {
		return nil, nil
	}
	c := *found
	return &c, nil
}

func (r *InventoryRepo) FindAll(_ context.Context, f *dto.InventoryFilters) ([]model.InventoryItem, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var items []model.InventoryItem
	for _, item := range r.store.inventory {
		if f.Kind != "" && item.Kind != f.Kind {
			continue
		}
		if f.LowStock && item.Status == model.StockAvailable {
			continue
		}
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].UpdatedAt.After(items[j].UpdatedAt) })
	total := len(items)
	return paginate(items, f.Page, f.PageSize), total, nil
}

func (r *InventoryRepo) ListMovements(_ context.Context, f *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []model.InventoryMovement
	for _, m := range r.store.movements {
		if f.ItemID != "" && m.ItemID != f.ItemID {
			continue
		}
		if f.MovementType != "" && m.MovementType != f.MovementType {
			continue
		}
		if f.ReferenceType != "" && (m.ReferenceType == nil || *m.ReferenceType != f.ReferenceType) {
			continue
		}
		if f.ReferenceID != "" && (m.ReferenceID == nil || *m.ReferenceID != f.ReferenceID) {
			continue
		}
		out = append(out, m)
	}
	total := len(out)
	return paginate(out, f.Page, f.PageSize), total, nil
}

func (r *InventoryRepo) AdjustStockWithMovement(_ context.Context, item *model.InventoryItem, movement *model.InventoryMovement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c := *item
	r.store.inventory[item.ID] = &c
	r.store.movements = append(r.store.movements, *movement)
	return nil
}

func paginate[T any](items []T, page, pageSize int) []T {
	if pageSize <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
