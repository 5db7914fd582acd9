package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Nikhil4123/Brocker/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Pinger is anything whose backing connection can be checked
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck reports service liveness and store reachability
func HealthCheck(store Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		response := map[string]interface{}{
			"status":    "ok",
			"time":      time.Now().Format(time.RFC3339),
			"db_status": "ok",
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			log.Error("Store ping error", zap.Error(err))
			response["status"] = "error"
			response["db_status"] = "error"
			return c.JSON(http.StatusInternalServerError, response)
		}

		return c.JSON(http.StatusOK, response)
	}
}
