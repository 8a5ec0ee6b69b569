package handler

import (
	"strconv"

	"github.com/fekuna/campus-uniform-service/internal/auth"
	"github.com/fekuna/campus-uniform-service/internal/httpx"
	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/order"
	"github.com/fekuna/campus-uniform-service/internal/order/dto"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *OrderHandler) Register(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	orders.POST("", h.Create)
	orders.GET("", h.List)
	orders.GET("/:id", h.Get)
	orders.DELETE("/:id", h.Delete)
	orders.POST("/:id/receipts", h.AddReceipt)
	orders.POST("/:id/receipts/:receiptId/verify", h.VerifyReceipt)
	orders.PATCH("/:id/status", h.UpdateStatus)
	orders.POST("/:id/reject", h.Reject)
	orders.POST("/:id/measurements", h.Measure)
	orders.PATCH("/:id/archive", h.ToggleArchive)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}
	req.StudentID = auth.GetUserID(c)
	if req.StudentID == "" {
		httpx.Unauthorized(c, "missing user")
		return
	}

	o, err := h.uc.Create(c.Request.Context(), &req)
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.Created(c, o)
}

func (h *OrderHandler) List(c *gin.Context) {
	page, pageSize := httpx.GetPagination(c)
	filters := &dto.OrderFilters{
		StudentID: c.Query("student_id"),
		Page:      page,
		PageSize:  pageSize,
	}
	if s := c.Query("status"); s != "" {
		status, ok := model.ParseOrderStatus(s)
		if !ok {
			httpx.BadRequest(c, "unknown status "+strconv.Quote(s))
			return
		}
		filters.Status = status
	}
	if a := c.Query("archived"); a != "" {
		archived, err := strconv.ParseBool(a)
		if err != nil {
			httpx.BadRequest(c, "archived must be true or false")
			return
		}
		filters.Archived = &archived
	}
	// students only ever see their own orders
	if user := auth.GetUser(c); user.Role == model.RoleStudent {
		filters.StudentID = user.UserID
	}

	items, total, err := h.uc.List(c.Request.Context(), filters)
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.List(c, items, page, pageSize, total)
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.Success(c, o)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.uc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.Success(c, nil)
}

func (h *OrderHandler) AddReceipt(c *gin.Context) {
	var req dto.ReceiptInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	o, err := h.uc.AddReceipt(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.Created(c, o)
}

func (h *OrderHandler) VerifyReceipt(c *gin.Context) {
	o, err := h.uc.VerifyReceipt(c.Request.Context(), c.Param("id"), c.Param("receiptId"))
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.Success(c, o)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}
	req.UserID = auth.GetUserID(c)

	o, err := h.uc.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.Success(c, o)
}

func (h *OrderHandler) Reject(c *gin.Context) {
	var req dto.RejectInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	o, err := h.uc.Reject(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.Success(c, o)
}

func (h *OrderHandler) Measure(c *gin.Context) {
	var req dto.MeasureInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}

	o, err := h.uc.Measure(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.Success(c, o)
}

func (h *OrderHandler) ToggleArchive(c *gin.Context) {
	o, err := h.uc.ToggleArchive(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.Success(c, o)
}
