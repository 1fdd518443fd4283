package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightinsights/internal/filter"
	"github.com/dharmasatrya/flightinsights/internal/models"
)

// Data returns every stored document unchanged.
func (h *SearchHandler) Data(c echo.Context) error {
	docs, err := h.service.DumpAll(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *SearchHandler) ListSearches(c echo.Context) error {
	ids, err := h.service.SearchIDs(c.Request().Context())
	if errors.Is(err, models.ErrNoSearches) {
		return c.JSON(http.StatusOK, models.SearchListResponse{
			SearchIDs: []string{},
			Message:   "No searches stored yet",
		})
	}
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, models.SearchListResponse{
		SearchIDs: ids,
		Total:     len(ids),
	})
}

func (h *SearchHandler) Overview(c echo.Context) error {
	overview, err := h.service.Overview(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, overview)
}

func (h *SearchHandler) Itineraries(c echo.Context) error {
	filters, err := parseFilters(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	sortBy, sortOrder, err := parseSort(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	id := c.Param("id")
	summaries, err := h.service.Itineraries(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}

	filtered := filter.Apply(summaries, filters, sortBy, sortOrder)

	return c.JSON(http.StatusOK, models.ItinerariesResponse{
		SearchID:    id,
		Total:       len(filtered),
		Itineraries: filtered,
	})
}

func (h *SearchHandler) Flights(c echo.Context) error {
	id := c.Param("id")
	flights, err := h.service.Flights(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err)
	}

	return c.JSON(http.StatusOK, models.FlightsResponse{
		SearchID: id,
		Total:    len(flights),
		Flights:  flights,
	})
}

func (h *SearchHandler) Stats(c echo.Context) error {
	m, err := parseMeasure(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	stats, err := h.service.Stats(c.Request().Context(), c.Param("id"), m)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *SearchHandler) Dashboard(c echo.Context) error {
	m, err := parseMeasure(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	bins, err := parseBins(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	dash, err := h.service.Dashboard(c.Request().Context(), c.Param("id"), m, bins)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, dash)
}

// Refresh drops all memoized data so the next reads hit the store.
func (h *SearchHandler) Refresh(c echo.Context) error {
	if err := h.service.Refresh(c.Request().Context()); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, models.RefreshResponse{Status: "refreshed"})
}
