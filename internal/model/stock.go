package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

type StockStatus string

const (
	StockAvailable  StockStatus = "Available"
	StockLow        StockStatus = "Low Stock"
	StockOutOfStock StockStatus = "Out of Stock"
)

// Low-stock boundaries. They differ per call site and are kept apart on purpose
// until the product owner settles on one value.
const (
	StandardLowStockThreshold = 20
	ClaimLowStockThreshold    = 50
	RollUnitAlertThreshold    = 10
	DefaultUnitAlertThreshold = 50
)

// StockRule derives a row's status from its new quantity. current is the
// status before the mutation; some rules keep it unchanged.
type StockRule func(qty decimal.Decimal, current StockStatus) StockStatus

func thresholdRule(low int64) StockRule {
	boundary := decimal.NewFromInt(low)
	return func(qty decimal.Decimal, _ StockStatus) StockStatus {
		switch {
		case qty.LessThanOrEqual(decimal.Zero):
			return StockOutOfStock
		case qty.LessThanOrEqual(boundary):
			return StockLow
		default:
			return StockAvailable
		}
	}
}

var (
	// StandardStock applies to raw materials and general finished-goods mutations.
	StandardStock = thresholdRule(StandardLowStockThreshold)

	// ClaimStock applies to finished goods deducted by an order claim.
	ClaimStock = thresholdRule(ClaimLowStockThreshold)

	// InflowStock applies to finished goods received from production; quantity
	// only grows on that path so there is no out-of-stock branch.
	InflowStock StockRule = func(qty decimal.Decimal, _ StockStatus) StockStatus {
		if qty.LessThanOrEqual(decimal.NewFromInt(StandardLowStockThreshold)) {
			return StockLow
		}
		return StockAvailable
	}

	// ReturnStock applies to raw materials handed back by a deleted production.
	ReturnStock StockRule = func(qty decimal.Decimal, current StockStatus) StockStatus {
		switch {
		case qty.GreaterThan(decimal.NewFromInt(StandardLowStockThreshold)):
			return StockAvailable
		case qty.GreaterThan(decimal.Zero):
			return StockLow
		default:
			return current
		}
	}
)

// LowStockAlertThreshold is the quantity under which a raw material triggers a
// BAO notification after gown production.
func LowStockAlertThreshold(unit string) decimal.Decimal {
	if strings.EqualFold(strings.TrimSpace(unit), "roll") {
		return decimal.NewFromInt(RollUnitAlertThreshold)
	}
	return decimal.NewFromInt(DefaultUnitAlertThreshold)
}

// RoundQty rounds to the 2-decimal precision every stored quantity uses.
func RoundQty(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
