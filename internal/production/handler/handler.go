package handler

import (
	"github.com/fekuna/campus-uniform-service/internal/auth"
	"github.com/fekuna/campus-uniform-service/internal/httpx"
	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/production"
	"github.com/fekuna/campus-uniform-service/internal/production/dto"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type ProductionHandler struct {
	uc     production.UseCase
	logger logger.ZapLogger
}

func NewProductionHandler(uc production.UseCase, log logger.ZapLogger) *ProductionHandler {
	return &ProductionHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *ProductionHandler) Register(r *gin.RouterGroup) {
	productions := r.Group("/productions")
	productions.POST("/:line", h.Create)
	productions.GET("", h.List)
	productions.GET("/:id", h.Get)
	productions.PATCH("/:id", h.Update)
	productions.DELETE("/:id", h.Delete)
}

func (h *ProductionHandler) Create(c *gin.Context) {
	line, ok := model.ParseProductLine(c.Param("line"))
	if !ok {
		httpx.BadRequest(c, "product line must be uniform or gown")
		return
	}

	var req dto.CreateProductionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}
	req.UserID = auth.GetUserID(c)

	p, err := h.uc.Create(c.Request.Context(), line, &req)
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.Created(c, p)
}

func (h *ProductionHandler) List(c *gin.Context) {
	page, pageSize := httpx.GetPagination(c)
	filters := &dto.ProductionFilters{
		Level:    c.Query("level"),
		Page:     page,
		PageSize: pageSize,
	}
	if l := c.Query("line"); l != "" {
		line, ok := model.ParseProductLine(l)
		if !ok {
			httpx.BadRequest(c, "product line must be uniform or gown")
			return
		}
		filters.Line = line
	}

	items, total, err := h.uc.List(c.Request.Context(), filters)
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.List(c, items, page, pageSize, total)
}

func (h *ProductionHandler) Get(c *gin.Context) {
	p, err := h.uc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.Success(c, p)
}

func (h *ProductionHandler) Update(c *gin.Context) {
	var req dto.UpdateProductionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BadRequest(c, err.Error())
		return
	}
	req.UserID = auth.GetUserID(c)

	result, err := h.uc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.Success(c, result)
}

func (h *ProductionHandler) Delete(c *gin.Context) {
	result, err := h.uc.Delete(c.Request.Context(), c.Param("id"), auth.GetUserID(c))
	if err != nil {
		httpx.HandleError(c, h.logger, err)
		return
	}
	httpx.Success(c, result)
}
