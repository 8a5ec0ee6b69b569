package catalog

import (
	"context"

	"github.com/fekuna/campus-uniform-service/internal/model"
)

// UseCase is the material catalog consulted by production reconciliation.
type UseCase interface {
	// Resolve maps a (category, type name) pair to the raw-material inventory key.
	Resolve(ctx context.Context, category, typeName string) (model.ItemKey, error)

	// ValidateProduction checks that every referenced level, size, category
	// and unit exists.
	ValidateProduction(ctx context.Context, p *model.Production) error
}
