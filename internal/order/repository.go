package order

import (
	"context"
	"time"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/order/dto"
)

type Repository interface {
	// Create inserts the order with its receipts and line items.
	Create(ctx context.Context, order *model.Order) error

	// GetByID returns nil, nil when the order does not exist.
	GetByID(ctx context.Context, id string, forUpdate bool) (*model.Order, error)
	FindAll(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, int, error)

	// Save writes the order row, upserts its receipts and replaces its line items.
	Save(ctx context.Context, order *model.Order) error
	Delete(ctx context.Context, id string) error

	ORNumberExists(ctx context.Context, orNumber string) (bool, error)

	// Slot counting for the measurement scheduler.
	CountScheduled(ctx context.Context, day time.Time) (int, error)
	CountScheduledInSlot(ctx context.Context, day time.Time, slot string) (int, error)
}

// Locker serialises measurement-slot allocation across instances.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}
