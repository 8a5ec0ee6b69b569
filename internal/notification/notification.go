package notification

import (
	"context"

	"github.com/fekuna/campus-uniform-service/internal/model"
)

// Notifier appends in-app notifications. Calls are fire-and-forget: failures
// are logged by the implementation and never reach the caller.
type Notifier interface {
	Notify(ctx context.Context, userID, title, message string)
	NotifyRoles(ctx context.Context, roles []model.Role, title, message string)
}

// Mailer sends the order emails. Callers log returned errors and carry on.
type Mailer interface {
	SendScheduleEmail(ctx context.Context, order *model.Order) error
	SendPickupEmail(ctx context.Context, order *model.Order) error
	SendPaymentReminderEmail(ctx context.Context, order *model.Order) error
	SendMeasurementDetailsEmail(ctx context.Context, order *model.Order) error
}
