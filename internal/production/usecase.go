package production

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/production/dto"
)

type UseCase interface {
	Create(ctx context.Context, line model.ProductLine, input *dto.CreateProductionInput) (*model.Production, error)
	Get(ctx context.Context, id string) (*model.Production, error)
	List(ctx context.Context, filters *dto.ProductionFilters) ([]model.Production, int, error)
	Update(ctx context.Context, id string, input *dto.UpdateProductionInput) (*dto.ReconcileResult, error)
	Delete(ctx context.Context, id string, userID string) (*dto.ReconcileResult, error)
}

// MissingMaterialPolicy decides what update and delete do when a recorded
// material or finished-goods row no longer resolves to inventory.
type MissingMaterialPolicy string

const (
	// PolicyWarn logs the row, skips it and reports a warning.
	PolicyWarn MissingMaterialPolicy = "warn"
	// PolicyReject aborts the whole operation.
	PolicyReject MissingMaterialPolicy = "reject"
)

func ParseMissingMaterialPolicy(s string) (MissingMaterialPolicy, error) {
	switch p := MissingMaterialPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyWarn, PolicyReject:
		return p, nil
	case "":
		return PolicyWarn, nil
	}
	return "", fmt.Errorf("unknown missing material policy %q", s)
}
