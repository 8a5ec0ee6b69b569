package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/notification/dto"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Producer interface {
	Publish(ctx context.Context, key string, value []byte) error
}

// KafkaNotifier publishes notification events for the listener to fan out.
type KafkaNotifier struct {
	producer Producer
	logger   logger.ZapLogger
	timeout  time.Duration
}

func NewKafkaNotifier(producer Producer, log logger.ZapLogger) *KafkaNotifier {
	return &KafkaNotifier{
		producer: producer,
		logger:   log,
		timeout:  5 * time.Second,
	}
}

func (n *KafkaNotifier) Notify(ctx context.Context, userID, title, message string) {
	n.publish(ctx, userID, &dto.NotificationEvent{
		EventType: dto.EventUserNotification,
		UserID:    userID,
		Title:     title,
		Message:   message,
	})
}

func (n *KafkaNotifier) NotifyRoles(ctx context.Context, roles []model.Role, title, message string) {
	n.publish(ctx, "roles", &dto.NotificationEvent{
		EventType: dto.EventRoleNotification,
		Roles:     roles,
		Title:     title,
		Message:   message,
	})
}

func (n *KafkaNotifier) publish(ctx context.Context, key string, event *dto.NotificationEvent) {
	event.EventID = uuid.New().String()
	event.Timestamp = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("Failed to marshal notification event", zap.Error(err))
		return
	}

	// The triggering request may finish before the write does.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	if err := n.producer.Publish(ctx, key, data); err != nil {
		n.logger.Error("Failed to publish notification",
			zap.String("event_type", event.EventType),
			zap.String("title", event.Title),
			zap.Error(err),
		)
	}
}
