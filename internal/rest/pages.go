package rest

import (
	"net/http"

	"partyPredictor/domain"
	"partyPredictor/pkg/logger"

	"github.com/labstack/echo/v4"
)

type PageHandler struct {
	algorithms []domain.AlgorithmDescriptor
}

func NewPageHandler(algorithms []domain.AlgorithmDescriptor) *PageHandler {
	return &PageHandler{algorithms: algorithms}
}

type dnnPage struct {
	Algorithms []domain.AlgorithmDescriptor
}

type buzzwordPage struct {
	Buzzword string
}

// GET /
func (h *PageHandler) Home(c echo.Context) error {
	return h.render(c, "landing.html", nil)
}

// GET /dnn
func (h *PageHandler) Dnn(c echo.Context) error {
	return h.render(c, "dnn.html", dnnPage{Algorithms: h.algorithms})
}

// GET /buzzwordmap/:buzzword
func (h *PageHandler) BuzzwordMap(c echo.Context) error {
	return h.render(c, "buzzwordmap.html", buzzwordPage{Buzzword: c.Param("buzzword")})
}

func (h *PageHandler) render(c echo.Context, name string, data any) error {
	if err := c.Render(http.StatusOK, name, data); err != nil {
		logger.Error("Failed to render page", "template", name, "error", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: msgInternalError})
	}
	return nil
}
