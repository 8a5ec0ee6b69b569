package httpx

import (
	"net/http"
	"strconv"

	"github.com/fekuna/campus-uniform-service/pkg/apperror"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the JSON envelope every endpoint returns.
type Response struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    interface{}       `json:"data,omitempty"`
	Details []apperror.Detail `json:"details,omitempty"`
}

type ListResponse struct {
	Items      interface{} `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "success", Data: data})
}

func List(c *gin.Context, items interface{}, page, pageSize, total int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	Success(c, ListResponse{
		Items: items,
		Pagination: &Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

func Error(c *gin.Context, status int, message string, details []apperror.Detail) {
	c.JSON(status, Response{Code: status * 100, Message: message, Details: details})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message, nil)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}

// HandleError maps an apperror kind onto an HTTP status. Anything else is a 500
// and is logged.
func HandleError(c *gin.Context, log logger.ZapLogger, err error) {
	details := apperror.DetailsOf(err)
	switch apperror.KindOf(err) {
	case apperror.KindValidation, apperror.KindSchedulingFailed:
		Error(c, http.StatusBadRequest, err.Error(), details)
	case apperror.KindNotFound:
		Error(c, http.StatusNotFound, err.Error(), details)
	case apperror.KindConflict:
		Error(c, http.StatusConflict, err.Error(), details)
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}

func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}

	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}

	return page, pageSize
}
