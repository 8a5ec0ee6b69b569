package model

// RawMaterialType is reference data owned by the admin screens. This service
// only reads it.
type RawMaterialType struct {
	ID       string `db:"id" json:"id"`
	Category string `db:"category" json:"category"`
	Name     string `db:"name" json:"name"`
}
