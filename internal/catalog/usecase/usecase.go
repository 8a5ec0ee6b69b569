package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/campus-uniform-service/internal/catalog"
	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/pkg/apperror"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
)

type catalogUseCase struct {
	repo   catalog.Repository
	logger logger.ZapLogger
}

func NewCatalogUseCase(repo catalog.Repository, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *catalogUseCase) Resolve(ctx context.Context, category, typeName string) (model.ItemKey, error) {
	t, err := uc.repo.FindMaterialType(ctx, category, typeName)
	if err != nil {
		return model.ItemKey{}, fmt.Errorf("find material type: %w", err)
	}
	if t == nil {
		return model.ItemKey{}, apperror.NotFound("raw material type %q not found in category %q", typeName, category)
	}
	// Inventory rows are keyed by the canonical type name, not the caller's spelling.
	return model.RawMaterialKey(t.Category, t.Name), nil
}

func (uc *catalogUseCase) ValidateProduction(ctx context.Context, p *model.Production) error {
	var missing []string

	check := func(kind, value string, exists func(context.Context, string) (bool, error)) error {
		ok, err := exists(ctx, value)
		if err != nil {
			return fmt.Errorf("check %s: %w", kind, err)
		}
		if !ok {
			missing = append(missing, fmt.Sprintf("%s %q", kind, value))
		}
		return nil
	}

	if err := check("level", p.Level, uc.repo.LevelExists); err != nil {
		return err
	}
	if err := check("size", p.Size, uc.repo.SizeExists); err != nil {
		return err
	}
	for _, m := range p.Materials {
		if err := check("category", m.Category, uc.repo.CategoryExists); err != nil {
			return err
		}
		if err := check("unit", m.Unit, uc.repo.UnitExists); err != nil {
			return err
		}
	}

	if len(missing) > 0 {
		return apperror.Validation("unknown reference data: %s", strings.Join(missing, ", "))
	}
	return nil
}
