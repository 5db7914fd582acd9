package middleware

import (
	"github.com/Nikhil4123/Brocker/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HeaderRequestID carries the request id in both directions
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware tags each request with an id and a logger carrying it.
// An incoming X-Request-ID is kept.
func RequestIDMiddleware(base *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(HeaderRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
				c.Request().Header.Set(HeaderRequestID, requestID)
			}
			c.Response().Header().Set(HeaderRequestID, requestID)
			c.Set("request_id", requestID)

			logger.WithLogger(c, base.With(zap.String("request_id", requestID)))

			return next(c)
		}
	}
}
