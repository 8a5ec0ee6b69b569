package handler

import (
	"github.com/fekuna/campus-uniform-service/internal/auth"
	"github.com/fekuna/campus-uniform-service/internal/httpx"
	"github.com/fekuna/campus-uniform-service/internal/notification"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	uc     notification.UseCase
	logger logger.ZapLogger
}

func NewNotificationHandler(uc notification.UseCase, log logger.ZapLogger) *NotificationHandler {
	return &NotificationHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *NotificationHandler) Register(r *gin.RouterGroup) {
	r.GET("/notifications", h.List)
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		httpx.Unauthorized(c, "missing user")
		return
	}

	page, pageSize := httpx.GetPagination(c)
	items, total, err := h.uc.ListForUser(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.List(c, items, page, pageSize, total)
}
