package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/notification"
	"github.com/fekuna/campus-uniform-service/internal/notification/dto"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"github.com/google/uuid"
)

type notificationUseCase struct {
	repo   notification.Repository
	logger logger.ZapLogger
}

func NewNotificationUseCase(repo notification.Repository, log logger.ZapLogger) notification.UseCase {
	return &notificationUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *notificationUseCase) Deliver(ctx context.Context, event *dto.NotificationEvent) (int, error) {
	var recipients []string
	switch {
	case event.UserID != "":
		recipients = []string{event.UserID}
	case len(event.Roles) > 0:
		users, err := uc.repo.ListActiveByRoles(ctx, event.Roles)
		if err != nil {
			return 0, err
		}
		for _, u := range users {
			recipients = append(recipients, u.ID)
		}
	default:
		return 0, errors.New("notification event has no recipient")
	}

	if len(recipients) == 0 {
		return 0, nil
	}

	createdAt := event.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	notifications := make([]model.Notification, 0, len(recipients))
	for _, userID := range recipients {
		notifications = append(notifications, model.Notification{
			ID:        uuid.New().String(),
			UserID:    userID,
			Title:     event.Title,
			Message:   event.Message,
			CreatedAt: createdAt,
		})
	}

	if err := uc.repo.CreateNotifications(ctx, notifications); err != nil {
		return 0, err
	}
	return len(notifications), nil
}

func (uc *notificationUseCase) ListForUser(ctx context.Context, userID string, page, pageSize int) ([]model.Notification, int, error) {
	return uc.repo.ListByUser(ctx, userID, page, pageSize)
}
