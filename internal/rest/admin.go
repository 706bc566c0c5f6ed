package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"partyPredictor/business/predict"
	"partyPredictor/domain"
	"partyPredictor/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AdminService interface {
	History(ctx context.Context, handle string, limit int) ([]domain.PredictionEvent, error)
	FlushModelCache() (int, error)
}

type AdminHandler struct {
	adminService AdminService
	validator    *validator.Validate
	timeout      time.Duration
}

func NewAdminHandler(adminService AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		validator:    validator.New(),
		timeout:      10 * time.Second,
	}
}

type HistoryQuery struct {
	Handle string `query:"handle"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=500"`
}

// GET /api/v1/admin/predictions?handle=&limit=
func (h *AdminHandler) History(c echo.Context) error {
	var q HistoryQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid query parameters"})
	}
	if err := h.validator.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	events, err := h.adminService.History(ctx, q.Handle, q.Limit)
	if err != nil {
		if errors.Is(err, predict.ErrHistoryDisabled) {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to load prediction history", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: msgInternalError})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(events))
}

// DELETE /api/v1/admin/models/cache
func (h *AdminHandler) FlushModelCache(c echo.Context) error {
	evicted, err := h.adminService.FlushModelCache()
	if err != nil {
		if errors.Is(err, predict.ErrModelCacheDisabled) {
			return c.JSON(http.StatusConflict, ResponseError{Message: err.Error()})
		}
		logger.Error("Failed to flush model cache", "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: msgInternalError})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(echo.Map{"evicted": evicted}))
}
