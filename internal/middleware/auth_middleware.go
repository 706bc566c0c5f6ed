package middleware

import (
	"net/http"
	"strings"

	"partyPredictor/pkg/logger"
	"partyPredictor/pkg/utils"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware validates a bearer JWT signed with secret.
func AuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, ResponseError{Message: "missing authorization header"})
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid authorization format"})
			}

			tokenString := tokenParts[1]

			claims, err := utils.ParseJWT(secret, tokenString)
			if err != nil {
				logger.Warn("Rejected admin token", "error", err, "trace_id", c.Get(TraceIDContextKey))
				return c.JSON(http.StatusUnauthorized, ResponseError{Message: "invalid token"})
			}

			c.Set("user_id", claims.UserID)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := c.Get("role")
			roleStr, ok := role.(string)
			if !ok || strings.ToUpper(roleStr) != "ADMIN" {
				return c.JSON(http.StatusForbidden, ResponseError{Message: "admin access required"})
			}

			return next(c)
		}
	}
}
