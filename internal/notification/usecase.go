package notification

import (
	"context"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/notification/dto"
)

type UseCase interface {
	// Deliver stores one notification per recipient of event.
	Deliver(ctx context.Context, event *dto.NotificationEvent) (int, error)
	ListForUser(ctx context.Context, userID string, page, pageSize int) ([]model.Notification, int, error)
}
