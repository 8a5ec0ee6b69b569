package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/campus-uniform-service/internal/notification"
	"github.com/fekuna/campus-uniform-service/internal/notification/dto"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Consumer interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type NotificationListener struct {
	consumer Consumer
	uc       notification.UseCase
	logger   logger.ZapLogger
}

func NewNotificationListener(consumer Consumer, uc notification.UseCase, logger logger.ZapLogger) *NotificationListener {
	return &NotificationListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *NotificationListener) Start(ctx context.Context) {
	l.logger.Info("Starting Notification Kafka Listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping Notification Kafka Listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				// Don't log context canceled error as error
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *NotificationListener) processMessage(ctx context.Context, value []byte) {
	var event dto.NotificationEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	switch event.EventType {
	case dto.EventUserNotification, dto.EventRoleNotification:
	default:
		return
	}

	n, err := l.uc.Deliver(ctx, &event)
	if err != nil {
		l.logger.Error("Failed to deliver notification",
			zap.String("event_id", event.EventID),
			zap.String("title", event.Title),
			zap.Error(err),
		)
		return
	}
	l.logger.Debug("Delivered notification", zap.String("event_id", event.EventID), zap.Int("recipients", n))
}
