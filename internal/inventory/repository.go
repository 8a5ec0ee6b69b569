package inventory

import (
	"context"

	"github.com/fekuna/campus-uniform-service/internal/inventory/dto"
	"github.com/fekuna/campus-uniform-service/internal/model"
)

type Repository interface {
	// Items. Lookups return nil, nil when no row matches.
	GetByKey(ctx context.Context, key model.ItemKey, forUpdate bool) (*model.InventoryItem, error)
	FindFinishedGood(ctx context.Context, level, productType, size string, forUpdate bool) (*model.InventoryItem, error)
	FindAll(ctx context.Context, filters *dto.InventoryFilters) ([]model.InventoryItem, int, error)

	// Movements / Audit
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)

	// Writes the item and its movement on the connection carried by ctx.
	AdjustStockWithMovement(ctx context.Context, item *model.InventoryItem, movement *model.InventoryMovement) error
}
