package handler

import (
	"errors"
	"net/http"

	"github.com/Nikhil4123/Brocker/internal/middleware"
	"github.com/Nikhil4123/Brocker/internal/model"
	"github.com/Nikhil4123/Brocker/internal/query"
	"github.com/Nikhil4123/Brocker/internal/service"
	"github.com/Nikhil4123/Brocker/pkg/jwtutil"
	"github.com/Nikhil4123/Brocker/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Response messages
const (
	msgNotFound    = "Property not found"
	msgServerError = "Server error"
	msgInvalidBody = "Invalid request data"
	msgValidation  = "Validation failed"
	msgDeleted     = "Property deleted successfully"
)

// PropertyHandler serves the /properties endpoints
type PropertyHandler struct {
	service *service.PropertyService
}

// NewPropertyHandler creates a handler backed by svc
func NewPropertyHandler(svc *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: svc}
}

// RegisterRoutes mounts the property routes on g. Reads are public, writes
// need an admin token.
func (h *PropertyHandler) RegisterRoutes(g *echo.Group, tokens *jwtutil.JWTUtil) {
	g.GET("", h.ListProperties)
	g.GET("/type/:type", h.ListPropertiesByType)
	g.GET("/:id", h.GetProperty)

	admin := []echo.MiddlewareFunc{middleware.AuthMiddleware(tokens), middleware.RequireAdmin}
	g.POST("", h.CreateProperty, admin...)
	g.PUT("/:id", h.UpdateProperty, admin...)
	g.DELETE("/:id", h.DeleteProperty, admin...)
}

// ListProperties handles searching listings by query parameters
func (h *PropertyHandler) ListProperties(c echo.Context) error {
	log := logger.FromContext(c)
	filter := query.FromValues(c.QueryParams())
	log.Info("Listing properties", zap.String("query", c.QueryString()))

	views, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return h.fail(c, err)
	}

	log.Info("Properties retrieved successfully", zap.Int("count", len(views)))
	return c.JSON(http.StatusOK, views)
}

// ListPropertiesByType handles listing a single property type
func (h *PropertyHandler) ListPropertiesByType(c echo.Context) error {
	log := logger.FromContext(c)
	propertyType := c.Param("type")
	log.Info("Listing properties by type", zap.String("type", propertyType))

	views, err := h.service.ListByType(c.Request().Context(), propertyType)
	if err != nil {
		return h.fail(c, err)
	}

	log.Info("Properties retrieved successfully",
		zap.String("type", propertyType),
		zap.Int("count", len(views)))
	return c.JSON(http.StatusOK, views)
}

// GetProperty handles retrieving a single listing
func (h *PropertyHandler) GetProperty(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	view, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, zap.String("property_id", id))
	}

	log.Info("Property retrieved successfully",
		zap.String("property_id", id),
		zap.String("title", view.Title))
	return c.JSON(http.StatusOK, view)
}

// CreateProperty handles creating a listing owned by the calling admin
func (h *PropertyHandler) CreateProperty(c echo.Context) error {
	log := logger.FromContext(c)

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "No token, authorization denied"})
	}

	var in model.PropertyInput
	if err := c.Bind(&in); err != nil {
		log.Warn("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}

	view, err := h.service.Create(c.Request().Context(), &in, userID)
	if err != nil {
		return h.fail(c, err)
	}

	log.Info("Property created successfully",
		zap.String("property_id", view.ID),
		zap.String("title", view.Title),
		zap.Float64("price", view.Price))
	return c.JSON(http.StatusCreated, view)
}

// UpdateProperty handles partial updates of a listing
func (h *PropertyHandler) UpdateProperty(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var patch model.PropertyInput
	if err := c.Bind(&patch); err != nil {
		log.Warn("Invalid request data", zap.String("property_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msgInvalidBody})
	}

	view, err := h.service.Update(c.Request().Context(), id, &patch)
	if err != nil {
		return h.fail(c, err, zap.String("property_id", id))
	}

	log.Info("Property updated successfully", zap.String("property_id", id))
	return c.JSON(http.StatusOK, view)
}

// DeleteProperty handles removing a listing
func (h *PropertyHandler) DeleteProperty(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, err, zap.String("property_id", id))
	}

	log.Info("Property deleted successfully", zap.String("property_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": msgDeleted})
}

// fail maps a service error onto the response contract
func (h *PropertyHandler) fail(c echo.Context, err error, fields ...zap.Field) error {
	log := logger.FromContext(c).With(fields...)

	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Warn("Property validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": msgValidation,
			"errors":  verr.Fields,
		})
	case errors.Is(err, service.ErrNotFound):
		log.Warn("Property not found")
		return c.JSON(http.StatusNotFound, echo.Map{"message": msgNotFound})
	default:
		log.Error("Property request failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": msgServerError})
	}
}
