package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/fekuna/campus-uniform-service/internal/auth"
	"github.com/fekuna/campus-uniform-service/internal/model"
	"github.com/fekuna/campus-uniform-service/internal/production"
	"github.com/fekuna/campus-uniform-service/internal/production/dto"
	"github.com/fekuna/campus-uniform-service/internal/testutil"
	"github.com/fekuna/campus-uniform-service/pkg/apperror"
	"github.com/fekuna/campus-uniform-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUseCase struct {
	production.UseCase

	line    model.ProductLine
	created *dto.CreateProductionInput
	updated *dto.UpdateProductionInput
	deleted string
	filters *dto.ProductionFilters
	err     error
}

func (s *stubUseCase) Create(_ context.Context, line model.ProductLine, input *dto.CreateProductionInput) (*model.Production, error) {
	s.line, s.created = line, input
	if s.err != nil {
		return nil, s.err
	}
	return &model.Production{BaseModel: model.BaseModel{ID: "prod-1"}, ProductLine: line, Quantity: input.Quantity}, nil
}

func (s *stubUseCase) List(_ context.Context, filters *dto.ProductionFilters) ([]model.Production, int, error) {
	s.filters = filters
	return nil, 0, s.err
}

func (s *stubUseCase) Update(_ context.Context, id string, input *dto.UpdateProductionInput) (*dto.ReconcileResult, error) {
	s.updated = input
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ReconcileResult{
		Production: &model.Production{BaseModel: model.BaseModel{ID: id}},
		Warnings:   []string{"skipped Fabric/Silk"},
	}, nil
}

func (s *stubUseCase) Delete(_ context.Context, id string, userID string) (*dto.ReconcileResult, error) {
	s.deleted = userID
	return &dto.ReconcileResult{Production: &model.Production{BaseModel: model.BaseModel{ID: id}}}, s.err
}

func newRouter(uc production.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(auth.Middleware())
	NewProductionHandler(uc, logger.NewNop()).Register(r.Group("/api/v1"))
	return r
}

var staff = map[string]string{auth.HeaderUserID: "staff-1", auth.HeaderUserRole: string(model.RoleJobOrder)}

func TestCreate_ParsesProductLine(t *testing.T) {
	tests := []struct {
		path string
		want model.ProductLine
	}{
		{"/api/v1/productions/uniform", model.LineSchoolUniform},
		{"/api/v1/productions/gown", model.LineAcademicGown},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			uc := &stubUseCase{}
			body := map[string]interface{}{"level": "College", "quantity": 5}
			w := testutil.DoRequest(t, newRouter(uc), http.MethodPost, tt.path, body, staff)

			require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
			assert.Equal(t, tt.want, uc.line)
			assert.Equal(t, 5, uc.created.Quantity)
			assert.Equal(t, "staff-1", uc.created.UserID)
		})
	}
}

func TestCreate_UnknownLine(t *testing.T) {
	uc := &stubUseCase{}
	w := testutil.DoRequest(t, newRouter(uc), http.MethodPost, "/api/v1/productions/cap", map[string]int{"quantity": 1}, staff)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 40000, testutil.ParseResponse(t, w, nil).Code)
	assert.Nil(t, uc.created)
}

func TestCreate_ShortageIsConflict(t *testing.T) {
	uc := &stubUseCase{err: apperror.Conflict("raw materials unavailable",
		apperror.Detail{Item: "Fabric/Polo Cloth", Reason: "insufficient", Required: "200.00", Available: "100.00", Shortage: "100.00"})}
	w := testutil.DoRequest(t, newRouter(uc), http.MethodPost, "/api/v1/productions/uniform", map[string]int{"quantity": 10}, staff)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := testutil.ParseResponse(t, w, nil)
	require.Len(t, env.Details, 1)
	assert.Equal(t, "Fabric/Polo Cloth", env.Details[0].Item)
}

func TestList_LineFilter(t *testing.T) {
	uc := &stubUseCase{}
	w := testutil.DoRequest(t, newRouter(uc), http.MethodGet, "/api/v1/productions?line=gown&level=College", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, model.LineAcademicGown, uc.filters.Line)
	assert.Equal(t, "College", uc.filters.Level)

	uc = &stubUseCase{}
	w = testutil.DoRequest(t, newRouter(uc), http.MethodGet, "/api/v1/productions?line=cap", nil, staff)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, uc.filters)
}

func TestUpdate_ReturnsWarnings(t *testing.T) {
	uc := &stubUseCase{}
	w := testutil.DoRequest(t, newRouter(uc), http.MethodPatch, "/api/v1/productions/prod-1", map[string]int{"quantity": 8}, staff)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NotNil(t, uc.updated.Quantity)
	assert.Equal(t, 8, *uc.updated.Quantity)
	assert.Equal(t, "staff-1", uc.updated.UserID)

	var got dto.ReconcileResult
	testutil.ParseResponse(t, w, &got)
	assert.Equal(t, "prod-1", got.Production.ID)
	assert.Equal(t, []string{"skipped Fabric/Silk"}, got.Warnings)
}

func TestDelete_RecordsCaller(t *testing.T) {
	uc := &stubUseCase{}
	w := testutil.DoRequest(t, newRouter(uc), http.MethodDelete, "/api/v1/productions/prod-1", nil, staff)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "staff-1", uc.deleted)
}
