package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type MaterialInput struct {
	Category string          `json:"category"`
	Type     string          `json:"type"`
	Quantity decimal.Decimal `json:"quantity"` // per produced unit
	Unit     string          `json:"unit"`
}

type CreateProductionInput struct {
	Level       string          `json:"level"`
	ProductType string          `json:"product_type"`
	Size        string          `json:"size"`
	Quantity    int             `json:"quantity"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	Materials   []MaterialInput `json:"raw_materials_used"`
	UserID      string          `json:"-"`
}

// UpdateProductionInput only touches the fields that are set. Quantity is the
// only field with inventory side effects.
type UpdateProductionInput struct {
	Quantity  *int       `json:"quantity"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	UserID    string     `json:"-"`
}
