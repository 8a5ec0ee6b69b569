package production

import (
	"context"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/production/dto"
)

type Repository interface {
	// Create inserts the production and its material usages.
	Create(ctx context.Context, p *model.Production) error

	// GetByID returns nil, nil when the production does not exist.
	GetByID(ctx context.Context, id string, forUpdate bool) (*model.Production, error)
	FindAll(ctx context.Context, filters *dto.ProductionFilters) ([]model.Production, int, error)
	Update(ctx context.Context, p *model.Production) error
	Delete(ctx context.Context, id string) error
}
