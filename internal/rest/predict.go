package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"partyPredictor/domain"
	"partyPredictor/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type PredictService interface {
	Predict(ctx context.Context, handle, algoName string) (domain.Prediction, error)
	Algorithms() []domain.AlgorithmDescriptor
}

type PredictHandler struct {
	predictService PredictService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewPredictHandler(predictService PredictService, timeout time.Duration) *PredictHandler {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &PredictHandler{
		predictService: predictService,
		validator:      validator.New(),
		timeout:        timeout,
	}
}

type PredictRequest struct {
	Handle   string `form:"handle" validate:"required"`
	AlgoName string `form:"algoname" validate:"required"`
}

// Predict handles POST /predict and answers with a one-element packet array.
func (h *PredictHandler) Predict(c echo.Context) error {
	var req PredictRequest

	if err := c.Bind(&req); err != nil {
		logger.Warn("Invalid predict form", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid form body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Warn("Predict form failed validation", "error", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	prediction, err := h.predictService.Predict(ctx, req.Handle, req.AlgoName)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownAlgorithm) {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		logger.Error("Prediction failed",
			"error", err,
			"handle", req.Handle,
			"algoname", req.AlgoName,
			"trace_id", c.Get("trace_id"),
		)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: msgInternalError})
	}

	return c.JSON(http.StatusOK, []domain.ResultPacket{prediction.Packet})
}

// Algorithms handles GET /api/v1/algorithms.
func (h *PredictHandler) Algorithms(c echo.Context) error {
	return c.JSON(http.StatusOK, fres.Response.StatusOK(h.predictService.Algorithms()))
}
