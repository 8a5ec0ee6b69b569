package dto

import "github.com/fekuna/campus-uniform-service/internal/model"

type ProductionFilters struct {
	Line     model.ProductLine
	Level    string
	Page     int
	PageSize int
}

// ReconcileResult carries the production plus the rows that were skipped
// under the warn policy.
type ReconcileResult struct {
	Production *model.Production `json:"production"`
	Warnings   []string          `json:"warnings,omitempty"`
}
