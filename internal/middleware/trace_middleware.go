package middleware

import (
	"partyPredictor/business/predict"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const TraceIDContextKey = "trace_id"

// TraceID reuses an inbound X-Request-ID or mints one, echoes it back and
// threads it into the request context for pipeline logs.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			traceID := req.Header.Get(echo.HeaderXRequestID)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			c.Response().Header().Set(echo.HeaderXRequestID, traceID)
			c.Set(TraceIDContextKey, traceID)
			c.SetRequest(req.WithContext(predict.ContextWithTraceID(req.Context(), traceID)))

			return next(c)
		}
	}
}
