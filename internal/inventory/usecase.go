package inventory

import (
	"context"

	"github.com/fekuna/campus-uniform-service/internal/inventory/dto"
	"github.com/fekuna/campus-uniform-service/internal/model"
)

// UseCase is the inventory ledger shared by order claims and production
// reconciliation. Every mutation stores 2-decimal quantities, recomputes the
// status with the caller's rule and logs a movement.
type UseCase interface {
	Get(ctx context.Context, key model.ItemKey) (*model.InventoryItem, error)
	FindFinishedGood(ctx context.Context, level, productType, size string) (*model.InventoryItem, error)
	Adjust(ctx context.Context, input *dto.AdjustInput) (*model.InventoryItem, error)
	Receive(ctx context.Context, input *dto.ReceiveInput) (*model.InventoryItem, error)
	ListItems(ctx context.Context, filters *dto.InventoryFilters) ([]model.InventoryItem, int, error)
	ListLowStock(ctx context.Context, kind model.ItemKind, page, pageSize int) ([]model.InventoryItem, int, error)
	ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error)
}
