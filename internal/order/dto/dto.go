package dto

import "github.com/fekuna/campus-uniform-service/internal/model"

type OrderFilters struct {
	Status    model.OrderStatus
	StudentID string
	Archived  *bool
	Page      int
	PageSize  int
}
