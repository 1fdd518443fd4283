package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightinsights/internal/aggregator"
	"github.com/dharmasatrya/flightinsights/internal/models"
)

// Service is the read side the HTTP surface needs. *catalog.Catalog
// implements it.
type Service interface {
	SearchIDs(ctx context.Context) ([]string, error)
	Overview(ctx context.Context, id string) (models.SearchOverview, error)
	Itineraries(ctx context.Context, id string) ([]models.ItinerarySummary, error)
	Flights(ctx context.Context, id string) ([]models.FlightDetail, error)
	Stats(ctx context.Context, id string, m aggregator.Measure) (models.StatsResponse, error)
	Dashboard(ctx context.Context, id string, m aggregator.Measure, bins int) (models.Dashboard, error)
	DumpAll(ctx context.Context) ([]json.RawMessage, error)
	Refresh(ctx context.Context) error
}

type SearchHandler struct {
	service Service
	logger  *slog.Logger
}

func NewSearchHandler(service Service, logger *slog.Logger) *SearchHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SearchHandler{
		service: service,
		logger:  logger,
	}
}

// Register mounts every route on e.
func (h *SearchHandler) Register(e *echo.Echo) {
	e.GET("/data", h.Data)
	e.GET("/health", HealthHandler)

	api := e.Group("/api/v1")
	api.GET("/searches", h.ListSearches)
	api.GET("/searches/:id", h.Overview)
	api.GET("/searches/:id/itineraries", h.Itineraries)
	api.GET("/searches/:id/flights", h.Flights)
	api.GET("/searches/:id/stats", h.Stats)
	api.GET("/searches/:id/dashboard", h.Dashboard)
	api.POST("/cache/refresh", h.Refresh)
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: message,
		Code:    http.StatusBadRequest,
	})
}

// fail maps a service error to its HTTP response.
func (h *SearchHandler) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrNoRecords):
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "No results found for search " + c.Param("id"),
			Code:    http.StatusNotFound,
		})
	case errors.Is(err, models.ErrStoreUnavailable):
		h.logger.Error("store unavailable", "path", c.Path(), "error", err)
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "store_unavailable",
			Message: "The document store could not be reached",
			Code:    http.StatusBadGateway,
		})
	default:
		h.logger.Error("request failed", "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: "Failed to load search data: " + err.Error(),
			Code:    http.StatusInternalServerError,
		})
	}
}
