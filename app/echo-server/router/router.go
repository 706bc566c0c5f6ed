package router

import (
	"net/http"

	httpmetrics "partyPredictor/app/echo-server/metrics"
	"partyPredictor/internal/middleware"
	"partyPredictor/internal/rest"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupGlobalMiddleware installs the request chain. Metrics sit outside
// Recover so a recovered panic is still counted as a 500.
func SetupGlobalMiddleware(e *echo.Echo, allowOrigins []string) {
	e.Use(middleware.TraceID())
	e.Use(httpmetrics.Middleware())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
}

func SetupPageRoutes(e *echo.Echo, handler *rest.PageHandler) {
	e.GET("/", handler.Home)
	e.GET("/dnn", handler.Dnn)
	e.GET("/buzzwordmap/:buzzword", handler.BuzzwordMap)
}

func SetupPredictRoutes(e *echo.Echo, handler *rest.PredictHandler) {
	e.POST("/predict", handler.Predict)
}

func SetupAPIRoutes(api *echo.Group, handler *rest.PredictHandler) {
	api.GET("/algorithms", handler.Algorithms)
}

func SetupAdminRoutes(api *echo.Group, handler *rest.AdminHandler, authRequired echo.MiddlewareFunc, adminOnly echo.MiddlewareFunc) {
	admin := api.Group("/admin", authRequired, adminOnly)

	admin.GET("/predictions", handler.History)
	admin.DELETE("/models/cache", handler.FlushModelCache)
}

func SetupMetricsRoutes(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
