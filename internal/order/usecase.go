package order

import (
	"context"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/order/dto"
)

type UseCase interface {
	Create(ctx context.Context, input *dto.CreateOrderInput) (*model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)
	Delete(ctx context.Context, id string) error

	AddReceipt(ctx context.Context, orderID string, input *dto.ReceiptInput) (*model.Order, error)
	VerifyReceipt(ctx context.Context, orderID, receiptID string) (*model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, input *dto.UpdateStatusInput) (*model.Order, error)
	Reject(ctx context.Context, orderID string, input *dto.RejectInput) (*model.Order, error)
	Measure(ctx context.Context, orderID string, input *dto.MeasureInput) (*model.Order, error)
	ToggleArchive(ctx context.Context, orderID string) (*model.Order, error)
}
