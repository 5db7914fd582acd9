package middleware

import (
	"net/http"
	"strings"

	"github.com/Nikhil4123/Brocker/pkg/jwtutil"
	"github.com/Nikhil4123/Brocker/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	userIDKey = "user_id"
	claimsKey = "claims"
)

// AuthMiddleware validates the bearer token and stores the caller's claims
func AuthMiddleware(tokens *jwtutil.JWTUtil) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				log.Warn("Missing Authorization header")
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "No token, authorization denied"})
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Invalid Authorization header format")
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token is not valid"})
			}

			claims, err := tokens.ValidateToken(parts[1])
			if err != nil {
				log.Warn("Invalid JWT token", zap.Error(err))
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token is not valid"})
			}

			c.Set(userIDKey, claims.UserID)
			c.Set(claimsKey, claims)
			logger.WithLogger(c, log.With(zap.String("user_id", claims.UserID)))

			return next(c)
		}
	}
}

// RequireAdmin rejects authenticated callers without the admin role.
// It must run after AuthMiddleware.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(claimsKey).(*jwtutil.UserClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "No token, authorization denied"})
		}
		if !claims.IsAdmin() {
			logger.FromContext(c).Warn("Admin access denied", zap.String("role", claims.Role))
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied. Admin only."})
		}
		return next(c)
	}
}

// UserIDFromContext returns the authenticated user id
func UserIDFromContext(c echo.Context) (string, bool) {
	id, ok := c.Get(userIDKey).(string)
	return id, ok && id != ""
}
