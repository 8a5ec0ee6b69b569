package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ItemKind string

const (
	KindUniform     ItemKind = "uniform"
	KindGown        ItemKind = "gown"
	KindRawMaterial ItemKind = "raw_material"
)

func (k ItemKind) IsFinishedGood() bool {
	return k == KindUniform || k == KindGown
}

// ItemKey identifies one inventory row. Finished goods use Level, ProductType
// and Size; raw materials use Category and MaterialType.
type ItemKey struct {
	Kind         ItemKind `json:"kind"`
	Level        string   `json:"level,omitempty"`
	ProductType  string   `json:"product_type,omitempty"`
	Size         string   `json:"size,omitempty"`
	Category     string   `json:"category,omitempty"`
	MaterialType string   `json:"material_type,omitempty"`
}

func FinishedGoodKey(kind ItemKind, level, productType, size string) ItemKey {
	return ItemKey{Kind: kind, Level: level, ProductType: productType, Size: size}
}

func RawMaterialKey(category, materialType string) ItemKey {
	return ItemKey{Kind: KindRawMaterial, Category: category, MaterialType: materialType}
}

func (k ItemKey) String() string {
	if k.Kind == KindRawMaterial {
		return fmt.Sprintf("%s/%s", k.Category, k.MaterialType)
	}
	return fmt.Sprintf("%s %s/%s/%s", k.Kind, k.Level, k.ProductType, k.Size)
}

type InventoryItem struct {
	ID           string              `db:"id" json:"id"`
	Kind         ItemKind            `db:"kind" json:"kind"`
	Level        string              `db:"level" json:"level,omitempty"`
	ProductType  string              `db:"product_type" json:"product_type,omitempty"`
	Size         string              `db:"size" json:"size,omitempty"`
	Category     string              `db:"category" json:"category,omitempty"`
	MaterialType string              `db:"material_type" json:"material_type,omitempty"`
	Unit         string              `db:"unit" json:"unit,omitempty"`
	Quantity     decimal.Decimal     `db:"quantity" json:"quantity"`
	Status       StockStatus         `db:"status" json:"status"`
	Price        decimal.NullDecimal `db:"price" json:"price"` // uniforms only
	ImageURL     *string             `db:"image_url" json:"image_url"`
	CreatedAt    time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time           `db:"updated_at" json:"updated_at"`
}

func (i *InventoryItem) Key() ItemKey {
	return ItemKey{
		Kind:         i.Kind,
		Level:        i.Level,
		ProductType:  i.ProductType,
		Size:         i.Size,
		Category:     i.Category,
		MaterialType: i.MaterialType,
	}
}

const (
	MovementInflow     = "inflow"
	MovementOutflow    = "outflow"
	MovementAdjustment = "adjustment"
)

const (
	RefProduction       = "production"
	RefProductionUpdate = "production_update"
	RefProductionDelete = "production_delete"
	RefOrderClaim       = "order_claim"
	RefManual           = "manual"
)

type InventoryMovement struct {
	ID             string          `db:"id" json:"id"`
	ItemID         string          `db:"item_id" json:"item_id"`
	Kind           ItemKind        `db:"kind" json:"kind"`
	MovementType   string          `db:"movement_type" json:"movement_type"`
	QuantityChange decimal.Decimal `db:"quantity_change" json:"quantity_change"`
	QuantityBefore decimal.Decimal `db:"quantity_before" json:"quantity_before"`
	QuantityAfter  decimal.Decimal `db:"quantity_after" json:"quantity_after"`
	ReferenceType  *string         `db:"reference_type" json:"reference_type"`
	ReferenceID    *string         `db:"reference_id" json:"reference_id"`
	Notes          string          `db:"notes" json:"notes"`
	CreatedBy      *string         `db:"created_by" json:"created_by"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}
