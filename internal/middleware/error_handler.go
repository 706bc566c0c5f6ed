package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"partyPredictor/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ResponseError mirrors the body every handler uses for failures.
type ResponseError struct {
	Message string `json:"message"`
}

func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if code < http.StatusInternalServerError {
			message = fmt.Sprint(he.Message)
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", "error", err, "path", c.Path(), "trace_id", c.Get(TraceIDContextKey))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, ResponseError{Message: message})
	}
	if err != nil {
		logger.Error("Failed to write error response", err)
	}
}
