package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// contextKey is where the request-scoped logger lives in the echo context
const contextKey = "logger"

// WithLogger stores a request-scoped logger in the echo context
func WithLogger(c echo.Context, l *zap.Logger) {
	c.Set(contextKey, l)
}

// FromContext retrieves the logger from the echo context
func FromContext(c echo.Context) *zap.Logger {
	if l, ok := c.Get(contextKey).(*zap.Logger); ok {
		return l
	}
	// Fall back to default logger
	return zap.L()
}
