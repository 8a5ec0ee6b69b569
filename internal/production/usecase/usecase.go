package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/campus-uniform-service/internal/catalog"
	"github.com/fekuna/campus-uniform-service/internal/inventory"
	invdto "github.com/fekuna/campus-uniform-service/internal/inventory/dto"
	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/notification"
	"github.com/fekuna/campus-uniform-service/internal/production"
	"github.com/fekuna/campus-uniform-service/internal/production/dto"
	"github.com/fekuna/campus-uniform-service/pkg/apperror"
	"github.com/fekuna/campus-uniform-service/pkg/database/postgres"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const finishedGoodsUnit = "pcs"

type Params struct {
	Repo     production.Repository
	Catalog  catalog.UseCase
	Ledger   inventory.UseCase
	Tx       postgres.Transactor
	Notifier notification.Notifier
	Policy   production.MissingMaterialPolicy
	Logger   logger.ZapLogger
}

type productionUseCase struct {
	repo     production.Repository
	catalog  catalog.UseCase
	ledger   inventory.UseCase
	tx       postgres.Transactor
	notifier notification.Notifier
	policy   production.MissingMaterialPolicy
	logger   logger.ZapLogger
	now      func() time.Time
}

func NewProductionUseCase(p Params) production.UseCase {
	policy := p.Policy
	if policy == "" {
		policy = production.PolicyWarn
	}
	return &productionUseCase{
		repo:     p.Repo,
		catalog:  p.Catalog,
		ledger:   p.Ledger,
		tx:       p.Tx,
		notifier: p.Notifier,
		policy:   policy,
		logger:   p.Logger,
		now:      time.Now,
	}
}

// resolvedMaterial is the inventory row a material draws from and the batch total.
type resolvedMaterial struct {
	key   model.ItemKey
	total decimal.Decimal
}

func (uc *productionUseCase) Create(ctx context.Context, line model.ProductLine, input *dto.CreateProductionInput) (*model.Production, error) {
	if _, ok := model.ParseProductLine(string(line)); !ok {
		return nil, apperror.Validation("unknown product line %q", line)
	}
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	now := uc.now()
	p := &model.Production{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ProductLine: line,
		Level:       input.Level,
		ProductType: input.ProductType,
		Size:        input.Size,
		Quantity:    input.Quantity,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	for _, m := range input.Materials {
		p.Materials = append(p.Materials, model.MaterialUsage{
			ID:           uuid.New().String(),
			ProductionID: p.ID,
			Category:     m.Category,
			MaterialType: m.Type,
			Quantity:     m.Quantity,
			Unit:         m.Unit,
		})
	}

	if err := uc.catalog.ValidateProduction(ctx, p); err != nil {
		return nil, err
	}

	var consumed []*model.InventoryItem
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		materials, err := uc.preflight(ctx, p)
		if err != nil {
			return err
		}

		if err := uc.repo.Create(ctx, p); err != nil {
			return err
		}

		if _, err := uc.ledger.Receive(ctx, &invdto.ReceiveInput{
			Key:           p.FinishedGoodKey(),
			Quantity:      decimal.NewFromInt(int64(p.Quantity)),
			Unit:          finishedGoodsUnit,
			Rule:          model.InflowStock,
			ReferenceType: model.RefProduction,
			ReferenceID:   p.ID,
			Reason:        "production batch",
			UserID:        input.UserID,
		}); err != nil {
			return err
		}

		for _, m := range materials {
			item, err := uc.ledger.Adjust(ctx, &invdto.AdjustInput{
				Key:           m.key,
				Delta:         m.total.Neg(),
				Rule:          model.StandardStock,
				ReferenceType: model.RefProduction,
				ReferenceID:   p.ID,
				Reason:        "consumed by production",
				UserID:        input.UserID,
			})
			if err != nil {
				return err
			}
			consumed = append(consumed, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Production recorded",
		zap.String("production_id", p.ID),
		zap.String("line", string(p.ProductLine)),
		zap.String("item", p.FinishedGoodKey().String()),
		zap.Int("quantity", p.Quantity),
	)
	if line == model.LineAcademicGown {
		uc.alertLowStock(ctx, p, consumed)
	}
	return p, nil
}

// materialDemand is the summed batch demand on one inventory row, or on one
// catalog entry that does not resolve.
type materialDemand struct {
	label    string
	key      model.ItemKey
	resolved bool
	total    decimal.Decimal
}

// preflight resolves every material and checks it covers the whole batch.
// Entries drawing from the same row are summed first. All problems are
// collected so the caller sees them at once.
func (uc *productionUseCase) preflight(ctx context.Context, p *model.Production) ([]resolvedMaterial, error) {
	var demands []*materialDemand
	byKey := make(map[model.ItemKey]*materialDemand)
	byLabel := make(map[string]*materialDemand)

	for _, m := range p.Materials {
		label := fmt.Sprintf("%s/%s", m.Category, m.MaterialType)
		total := m.Total(p.Quantity)

		if d, ok := byLabel[label]; ok {
			d.total = d.total.Add(total)
			continue
		}

		d := &materialDemand{label: label, total: total}
		key, err := uc.catalog.Resolve(ctx, m.Category, m.MaterialType)
		switch {
		case err == nil:
			if existing, ok := byKey[key]; ok {
				existing.total = existing.total.Add(total)
				byLabel[label] = existing
				continue
			}
			d.key, d.resolved = key, true
			byKey[key] = d
		case !apperror.Is(err, apperror.KindNotFound):
			return nil, err
		}
		byLabel[label] = d
		demands = append(demands, d)
	}

	var resolved []resolvedMaterial
	var problems []apperror.Detail
	for _, d := range demands {
		if !d.resolved {
			problems = append(problems, missingDetail(d.label, d.total))
			continue
		}

		item, err := uc.ledger.Get(ctx, d.key)
		if err != nil {
			if !apperror.Is(err, apperror.KindNotFound) {
				return nil, err
			}
			problems = append(problems, missingDetail(d.label, d.total))
			continue
		}

		if item.Quantity.LessThan(d.total) {
			problems = append(problems, apperror.Detail{
				Item:      d.label,
				Reason:    "insufficient",
				Required:  d.total.StringFixed(2),
				Available: item.Quantity.StringFixed(2),
				Shortage:  d.total.Sub(item.Quantity).StringFixed(2),
			})
			continue
		}
		resolved = append(resolved, resolvedMaterial{key: d.key, total: d.total})
	}

	if len(problems) > 0 {
		return nil, apperror.Conflict("raw materials unavailable", problems...)
	}
	return resolved, nil
}

func (uc *productionUseCase) alertLowStock(ctx context.Context, p *model.Production, items []*model.InventoryItem) {
	for _, item := range items {
		threshold := model.LowStockAlertThreshold(item.Unit)
		if !item.Quantity.LessThan(threshold) {
			continue
		}
		uc.notifier.NotifyRoles(ctx, []model.Role{model.RoleBAO}, "Low Stock Alert",
			fmt.Sprintf("%s %s is down to %s %s after gown production %s.",
				item.Category, item.MaterialType, item.Quantity.StringFixed(2), item.Unit, p.ID))
	}
}

func (uc *productionUseCase) Get(ctx context.Context, id string) (*model.Production, error) {
	return uc.load(ctx, id, false)
}

func (uc *productionUseCase) List(ctx context.Context, filters *dto.ProductionFilters) ([]model.Production, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *productionUseCase) Update(ctx context.Context, id string, input *dto.UpdateProductionInput) (*dto.ReconcileResult, error) {
	if input.Quantity != nil && *input.Quantity < 1 {
		return nil, apperror.Validation("quantity must be at least 1")
	}

	result := &dto.ReconcileResult{}
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := uc.load(ctx, id, true)
		if err != nil {
			return err
		}
		result.Production = p

		if input.StartDate != nil {
			p.StartDate = *input.StartDate
		}
		if input.EndDate != nil {
			p.EndDate = *input.EndDate
		}
		if !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate) {
			return apperror.Validation("end date is before start date")
		}

		if input.Quantity != nil && *input.Quantity != p.Quantity {
			delta := *input.Quantity - p.Quantity
			if err := uc.applyDelta(ctx, p, delta, input.UserID, &result.Warnings); err != nil {
				return err
			}
			p.Quantity = *input.Quantity
		}

		p.UpdatedAt = uc.now()
		return uc.repo.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyDelta draws delta more units' worth of materials and adds delta
// finished goods. A negative delta runs the same path in reverse.
func (uc *productionUseCase) applyDelta(ctx context.Context, p *model.Production, delta int, userID string, warnings *[]string) error {
	batch := decimal.NewFromInt(int64(delta))

	for _, m := range p.Materials {
		label := fmt.Sprintf("%s/%s", m.Category, m.MaterialType)
		key, err := uc.catalog.Resolve(ctx, m.Category, m.MaterialType)
		if err != nil {
			if err := uc.skipMissing(label, err, warnings); err != nil {
				return err
			}
			continue
		}

		_, err = uc.ledger.Adjust(ctx, &invdto.AdjustInput{
			Key:           key,
			Delta:         model.RoundQty(m.Quantity.Mul(batch)).Neg(),
			Rule:          model.StandardStock,
			ReferenceType: model.RefProductionUpdate,
			ReferenceID:   p.ID,
			Reason:        fmt.Sprintf("production quantity changed by %d", delta),
			UserID:        userID,
		})
		if err != nil {
			if err := uc.skipMissing(label, err, warnings); err != nil {
				return err
			}
		}
	}

	_, err := uc.ledger.Adjust(ctx, &invdto.AdjustInput{
		Key:           p.FinishedGoodKey(),
		Delta:         batch,
		Rule:          model.StandardStock,
		ReferenceType: model.RefProductionUpdate,
		ReferenceID:   p.ID,
		Reason:        fmt.Sprintf("production quantity changed by %d", delta),
		UserID:        userID,
	})
	if err != nil {
		return uc.skipMissing(p.FinishedGoodKey().String(), err, warnings)
	}
	return nil
}

func (uc *productionUseCase) Delete(ctx context.Context, id string, userID string) (*dto.ReconcileResult, error) {
	result := &dto.ReconcileResult{}
	err := uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := uc.load(ctx, id, true)
		if err != nil {
			return err
		}
		result.Production = p

		for _, m := range p.Materials {
			label := fmt.Sprintf("%s/%s", m.Category, m.MaterialType)
			key, err := uc.catalog.Resolve(ctx, m.Category, m.MaterialType)
			if err != nil {
				if err := uc.skipMissing(label, err, &result.Warnings); err != nil {
					return err
				}
				continue
			}

			_, err = uc.ledger.Adjust(ctx, &invdto.AdjustInput{
				Key:           key,
				Delta:         m.Total(p.Quantity),
				Rule:          model.ReturnStock,
				ReferenceType: model.RefProductionDelete,
				ReferenceID:   p.ID,
				Reason:        "returned from deleted production",
				UserID:        userID,
			})
			if err != nil {
				if err := uc.skipMissing(label, err, &result.Warnings); err != nil {
					return err
				}
			}
		}

		_, err = uc.ledger.Adjust(ctx, &invdto.AdjustInput{
			Key:           p.FinishedGoodKey(),
			Delta:         decimal.NewFromInt(int64(-p.Quantity)),
			Rule:          model.StandardStock,
			ReferenceType: model.RefProductionDelete,
			ReferenceID:   p.ID,
			Reason:        "production deleted",
			UserID:        userID,
		})
		if err != nil {
			if err := uc.skipMissing(p.FinishedGoodKey().String(), err, &result.Warnings); err != nil {
				return err
			}
		}

		return uc.repo.Delete(ctx, p.ID)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Production deleted", zap.String("production_id", id), zap.Int("warnings", len(result.Warnings)))
	return result, nil
}

// skipMissing applies the missing-material policy to a not-found error. Any
// other error is returned unchanged.
func (uc *productionUseCase) skipMissing(label string, err error, warnings *[]string) error {
	if !apperror.Is(err, apperror.KindNotFound) {
		return err
	}
	if uc.policy == production.PolicyReject {
		return apperror.Conflict("inventory row missing", apperror.Detail{Item: label, Reason: "missing"})
	}
	uc.logger.Warn("Skipping missing inventory row", zap.String("item", label), zap.Error(err))
	*warnings = append(*warnings, fmt.Sprintf("%s skipped: %v", label, err))
	return nil
}

func (uc *productionUseCase) load(ctx context.Context, id string, forUpdate bool) (*model.Production, error) {
	p, err := uc.repo.GetByID(ctx, id, forUpdate)
	if err != nil {
		return nil, fmt.Errorf("get production: %w", err)
	}
	if p == nil {
		return nil, apperror.NotFound("production %s not found", id)
	}
	return p, nil
}

func validateCreate(in *dto.CreateProductionInput) error {
	if strings.TrimSpace(in.Level) == "" || strings.TrimSpace(in.ProductType) == "" || strings.TrimSpace(in.Size) == "" {
		return apperror.Validation("level, product type and size are required")
	}
	if in.Quantity < 1 {
		return apperror.Validation("quantity must be at least 1")
	}
	if !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate) {
		return apperror.Validation("end date is before start date")
	}
	for i, m := range in.Materials {
		if m.Category == "" || m.Type == "" {
			return apperror.Validation("material %d: category and type are required", i+1)
		}
		if !m.Quantity.IsPositive() {
			return apperror.Validation("material %d: quantity must be positive", i+1)
		}
	}
	return nil
}

func missingDetail(label string, required decimal.Decimal) apperror.Detail {
	return apperror.Detail{
		Item:      label,
		Reason:    "missing",
		Required:  required.StringFixed(2),
		Available: "0.00",
		Shortage:  required.StringFixed(2),
	}
}
