package catalog

import (
	"context"

	"github.com/fekuna/campus-uniform-service/internal/model"
)

// Repository reads reference data maintained elsewhere.
type Repository interface {
	LevelExists(ctx context.Context, name string) (bool, error)
	SizeExists(ctx context.Context, name string) (bool, error)
	CategoryExists(ctx context.Context, name string) (bool, error)
	UnitExists(ctx context.Context, name string) (bool, error)

	// FindMaterialType returns nil, nil when category has no type called name.
	FindMaterialType(ctx context.Context, category, name string) (*model.RawMaterialType, error)
}
