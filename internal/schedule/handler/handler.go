package handler

import (
	"time"

	"github.com/fekuna/campus-uniform-service/internal/httpx"
	"github.com/fekuna/campus-uniform-service/internal/schedule"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	uc     schedule.UseCase
	logger logger.ZapLogger
	now    func() time.Time
}

func NewScheduleHandler(uc schedule.UseCase, log logger.ZapLogger) *ScheduleHandler {
	return &ScheduleHandler{
		uc:     uc,
		logger: log,
		now:    time.Now,
	}
}

func (h *ScheduleHandler) Register(r *gin.RouterGroup) {
	r.GET("/schedule/next-slot", h.NextSlot)
}

// NextSlot previews the slot an approval would get right now, or after the
// optional "from" date (YYYY-MM-DD). Nothing is reserved.
func (h *ScheduleHandler) NextSlot(c *gin.Context) {
	reference := h.now()
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			httpx.BadRequest(c, "from must be YYYY-MM-DD")
			return
		}
		// midday keeps the calendar date in any scheduling timezone
		reference = t.Add(12 * time.Hour)
	}

	slot, err := h.uc.NextAvailableSlot(c.Request.Context(), reference)
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.Success(c, gin.H{
		"date":      slot.Date.Format("2006-01-02"),
		"time_slot": slot.TimeSlot,
	})
}
