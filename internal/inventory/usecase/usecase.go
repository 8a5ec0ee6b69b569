package usecase

import (
	"context"
	"time"

	"github.com/fekuna/campus-uniform-service/internal/inventory"
	"github.com/fekuna/campus-uniform-service/internal/inventory/dto"
	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/pkg/apperror"
	"github.com/fekuna/campus-uniform-service/pkg/database/postgres"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type inventoryUseCase struct {
	repo   inventory.Repository
	tx     postgres.Transactor
	logger logger.ZapLogger
	now    func() time.Time
}

func NewInventoryUseCase(repo inventory.Repository, tx postgres.Transactor, log logger.ZapLogger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		tx:     tx,
		logger: log,
		now:    time.Now,
	}
}

func (uc *inventoryUseCase) Get(ctx context.Context, key model.ItemKey) (*model.InventoryItem, error) {
	item, err := uc.repo.GetByKey(ctx, key, true)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NotFound("inventory item %s not found", key)
	}
	return item, nil
}

func (uc *inventoryUseCase) FindFinishedGood(ctx context.Context, level, productType, size string) (*model.InventoryItem, error) {
	item, err := uc.repo.FindFinishedGood(ctx, level, productType, size, true)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NotFound("no inventory for %s/%s/%s", level, productType, size)
	}
	return item, nil
}

func (uc *inventoryUseCase) Adjust(ctx context.Context, input *dto.AdjustInput) (*model.InventoryItem, error) {
	var result *model.InventoryItem
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := uc.Get(ctx, input.Key)
		if err != nil {
			return err
		}

		before := item.Quantity
		// Checked before rounding so a sub-cent overdraw is rejected rather than clamped to zero.
		raw := before.Add(input.Delta)
		if raw.IsNegative() {
			return apperror.Conflict("insufficient inventory", apperror.Detail{
				Item:      input.Key.String(),
				Reason:    "insufficient",
				Required:  formatQty(input.Delta.Neg()),
				Available: formatQty(before),
				Shortage:  formatQty(raw.Neg()),
			})
		}
		after := model.RoundQty(raw)

		rule := input.Rule
		if rule == nil {
			rule = model.StandardStock
		}

		now := uc.now()
		item.Quantity = after
		item.Status = rule(after, item.Status)
		item.UpdatedAt = now

		movementType := model.MovementAdjustment
		switch {
		case input.Delta.IsPositive():
			movementType = model.MovementInflow
		case input.Delta.IsNegative():
			movementType = model.MovementOutflow
		}

		movement := uc.newMovement(item, movementType, before, input.ReferenceType, input.ReferenceID, input.Reason, input.UserID, now)
		if err := uc.repo.AdjustStockWithMovement(ctx, item, movement); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Debug("inventory adjusted",
		zap.String("item", input.Key.String()),
		zap.String("delta", input.Delta.String()),
		zap.String("quantity", result.Quantity.StringFixed(2)),
		zap.String("status", string(result.Status)),
	)
	return result, nil
}

func (uc *inventoryUseCase) Receive(ctx context.Context, input *dto.ReceiveInput) (*model.InventoryItem, error) {
	if !input.Quantity.IsPositive() {
		return nil, apperror.Validation("received quantity must be positive")
	}

	var result *model.InventoryItem
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		item, err := uc.repo.GetByKey(ctx, input.Key, true)
		if err != nil {
			return err
		}

		now := uc.now()
		if item == nil {
			item = &model.InventoryItem{
				ID:           uuid.New().String(),
				Kind:         input.Key.Kind,
				Level:        input.Key.Level,
				ProductType:  input.Key.ProductType,
				Size:         input.Key.Size,
				Category:     input.Key.Category,
				MaterialType: input.Key.MaterialType,
				Unit:         input.Unit,
				Quantity:     decimal.Zero,
				Status:       model.StockOutOfStock,
				CreatedAt:    now,
			}
		}

		rule := input.Rule
		if rule == nil {
			rule = model.StandardStock
		}

		before := item.Quantity
		item.Quantity = model.RoundQty(before.Add(input.Quantity))
		item.Status = rule(item.Quantity, item.Status)
		item.UpdatedAt = now

		movement := uc.newMovement(item, model.MovementInflow, before, input.ReferenceType, input.ReferenceID, input.Reason, input.UserID, now)
		if err := uc.repo.AdjustStockWithMovement(ctx, item, movement); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *inventoryUseCase) newMovement(item *model.InventoryItem, movementType string, before decimal.Decimal, refType, refID, notes, userID string, now time.Time) *model.InventoryMovement {
	var ref *string
	if refID != "" {
		ref = &refID
	}
	var rt *string
	if refType != "" {
		rt = &refType
	}
	var createdBy *string
	if userID != "" && userID != "unknown" {
		createdBy = &userID
	}

	return &model.InventoryMovement{
		ID:             uuid.New().String(),
		ItemID:         item.ID,
		Kind:           item.Kind,
		MovementType:   movementType,
		QuantityChange: item.Quantity.Sub(before),
		QuantityBefore: before,
		QuantityAfter:  item.Quantity,
		ReferenceType:  rt,
		ReferenceID:    ref,
		Notes:          notes,
		CreatedBy:      createdBy,
		CreatedAt:      now,
	}
}

func (uc *inventoryUseCase) ListItems(ctx context.Context, filters *dto.InventoryFilters) ([]model.InventoryItem, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *inventoryUseCase) ListLowStock(ctx context.Context, kind model.ItemKind, page, pageSize int) ([]model.InventoryItem, int, error) {
	return uc.repo.FindAll(ctx, &dto.InventoryFilters{
		Kind:     kind,
		LowStock: true,
		Page:     page,
		PageSize: pageSize,
	})
}

func (uc *inventoryUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.InventoryMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}

// formatQty prints two decimals unless d carries more precision.
func formatQty(d decimal.Decimal) string {
	if d.Equal(model.RoundQty(d)) {
		return d.StringFixed(2)
	}
	return d.String()
}
