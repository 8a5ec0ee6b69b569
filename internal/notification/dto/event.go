package dto

import (
	"time"

	"github.com/fekuna/campus-uniform-service/internal/model"
)

const (
	EventUserNotification = "UserNotification"
	EventRoleNotification = "RoleNotification"
)

type NotificationEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	UserID    string       `json:"user_id,omitempty"`
	Roles     []model.Role `json:"roles,omitempty"`
	Title     string       `json:"title"`
	Message   string       `json:"message"`
	Timestamp time.Time    `json:"timestamp"`
}
