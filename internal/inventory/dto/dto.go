package dto

import (
	"time"

	"github.com/fekuna/campus-uniform-service/internal/model"
)

type InventoryFilters struct {
	Kind     model.ItemKind
	LowStock bool // Low Stock or Out of Stock only
	Page     int
	PageSize int
}

type MovementFilters struct {
	ItemID        string
	MovementType  string
	ReferenceType string
	ReferenceID   string
	StartDate     *time.Time
	EndDate       *time.Time
	Page          int
	PageSize      int
}
