package dto

import (
	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/shopspring/decimal"
)

type AdjustInput struct {
	Key           model.ItemKey
	Delta         decimal.Decimal
	Rule          model.StockRule // nil means model.StandardStock
	ReferenceType string
	ReferenceID   string
	Reason        string
	UserID        string
}

// ReceiveInput adds stock, creating the row on first receipt.
type ReceiveInput struct {
	Key           model.ItemKey
	Quantity      decimal.Decimal
	Unit          string
	Rule          model.StockRule
	ReferenceType string
	ReferenceID   string
	Reason        string
	UserID        string
}

// AdjustRequest is a manual stock correction submitted by staff.
type AdjustRequest struct {
	Key            model.ItemKey   `json:"item"`
	QuantityChange decimal.Decimal `json:"quantity_change"`
	Reason         string          `json:"reason"`
	ReferenceID    string          `json:"reference_id"`
}
