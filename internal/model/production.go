package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductLine string

const (
	LineSchoolUniform ProductLine = "uniform"
	LineAcademicGown  ProductLine = "gown"
)

func ParseProductLine(s string) (ProductLine, bool) {
	switch ProductLine(s) {
	case LineSchoolUniform, LineAcademicGown:
		return ProductLine(s), true
	}
	return "", false
}

// InventoryKind is the finished-goods kind a production line feeds.
func (l ProductLine) InventoryKind() ItemKind {
	if l == LineAcademicGown {
		return KindGown
	}
	return KindUniform
}

type Production struct {
	BaseModel
	ProductLine ProductLine     `db:"product_line" json:"product_line"`
	Level       string          `db:"level" json:"level"`
	ProductType string          `db:"product_type" json:"product_type"`
	Size        string          `db:"size" json:"size"`
	Quantity    int             `db:"quantity" json:"quantity"`
	StartDate   time.Time       `db:"start_date" json:"start_date"`
	EndDate     time.Time       `db:"end_date" json:"end_date"`
	Materials   []MaterialUsage `db:"-" json:"raw_materials_used"`
}

func (p *Production) FinishedGoodKey() ItemKey {
	return FinishedGoodKey(p.ProductLine.InventoryKind(), p.Level, p.ProductType, p.Size)
}

// MaterialUsage is one raw material consumed per produced unit.
type MaterialUsage struct {
	ID           string          `db:"id" json:"id"`
	ProductionID string          `db:"production_id" json:"production_id"`
	Category     string          `db:"category" json:"category"`
	MaterialType string          `db:"material_type" json:"type"`
	Quantity     decimal.Decimal `db:"quantity" json:"quantity"`
	Unit         string          `db:"unit" json:"unit"`
}

// Total is the quantity consumed by a batch of the given size.
func (u MaterialUsage) Total(batch int) decimal.Decimal {
	return RoundQty(u.Quantity.Mul(decimal.NewFromInt(int64(batch))))
}
