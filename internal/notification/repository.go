package notification

import (
	"context"

	"github.com/fekuna/campus-uniform-service/internal/model"
)

type Repository interface {
	ListActiveByRoles(ctx context.Context, roles []model.Role) ([]model.User, error)
	CreateNotifications(ctx context.Context, notifications []model.Notification) error
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]model.Notification, int, error)
}
