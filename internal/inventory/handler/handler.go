package handler

import (
	"time"

	"github.com/fekuna/campus-uniform-service/internal/auth"
	"github.com/fekuna/campus-uniform-service/internal/httpx"
	"github.com/fekuna/campus-uniform-service/internal/inventory"
	"github.com/fekuna/campus-uniform-service/internal/inventory/dto"
	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	uc     inventory.UseCase
	logger logger.ZapLogger
}

func NewInventoryHandler(uc inventory.UseCase, log logger.ZapLogger) *InventoryHandler {
	return &InventoryHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *InventoryHandler) Register(r *gin.RouterGroup) {
	inv := r.Group("/inventory")
	inv.GET("", h.List)
	inv.GET("/low-stock", h.ListLowStock)
	inv.GET("/movements", h.ListMovements)
	inv.POST("/adjust", h.Adjust)
}

func (h *InventoryHandler) List(c *gin.Context) {
	page, pageSize := httpx.GetPagination(c)
	filters := &dto.InventoryFilters{
		Kind:     model.ItemKind(c.Query("kind")),
		LowStock: c.Query("low_stock") == "true",
		Page:     page,
		PageSize: pageSize,
	}

	items, total, err := h.uc.ListItems(c.Request.Context(), filters)
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.List(c, items, page, pageSize, total)
}

func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	page, pageSize := httpx.GetPagination(c)

	items, total, err := h.uc.ListLowStock(c.Request.Context(), model.ItemKind(c.Query("kind")), page, pageSize)
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.List(c, items, page, pageSize, total)
}

func (h *InventoryHandler) ListMovements(c *gin.Context) {
	page, pageSize := httpx.GetPagination(c)
	filters := &dto.MovementFilters{
		ItemID:        c.Query("item_id"),
		MovementType:  c.Query("movement_type"),
		ReferenceType: c.Query("reference_type"),
		ReferenceID:   c.Query("reference_id"),
		Page:          page,
		PageSize:      pageSize,
	}
	if s := c.Query("start_date"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			httpx.BadRequest(c, "start_date must be RFC3339")
			return
		}
		filters.StartDate = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			httpx.BadRequest(c, "end_date must be RFC3339")
			return
		}
		filters.EndDate = &t
	}

	movements, total, err := h.uc.ListMovements(c.Request.Context(), filters)
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.List(c, movements, page, pageSize, total)
}

func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req dto.AdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}
	if req.QuantityChange.IsZero() {
		httpx.BadRequest(c, "quantity_change must not be zero")
		return
	}

	item, err := h.uc.Adjust(c.Request.Context(), &dto.AdjustInput{
		Key:           req.Key,
		Delta:         req.QuantityChange,
		Rule:          model.StandardStock,
		ReferenceType: model.RefManual,
		ReferenceID:   req.ReferenceID,
		Reason:        req.Reason,
		UserID:        auth.GetUserID(c),
	})
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.Success(c, item)
}
