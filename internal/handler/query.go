package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dharmasatrya/flightinsights/internal/aggregator"
	"github.com/dharmasatrya/flightinsights/internal/filter"
)

// parseFilters reads the itinerary table filters from the query string.
// It returns nil filters when none are set.
func parseFilters(c echo.Context) (*filter.Filters, error) {
	var f filter.Filters
	set := false

	if v := c.QueryParam("price_min"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("price_min must be a number, got %q", v)
		}
		f.PriceMin = &n
		set = true
	}
	if v := c.QueryParam("price_max"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("price_max must be a number, got %q", v)
		}
		f.PriceMax = &n
		set = true
	}
	if f.PriceMin != nil && f.PriceMax != nil && *f.PriceMin > *f.PriceMax {
		return nil, fmt.Errorf("price_min cannot be greater than price_max")
	}

	if v := c.QueryParam("max_segments"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("max_segments must be a non-negative integer, got %q", v)
		}
		f.MaxSegments = &n
		set = true
	}

	if v := c.QueryParam("airlines"); v != "" {
		for _, code := range strings.Split(v, ",") {
			if code = strings.TrimSpace(code); code != "" {
				f.Airlines = append(f.Airlines, code)
			}
		}
		set = set || len(f.Airlines) > 0
	}

	if !set {
		return nil, nil
	}
	return &f, nil
}

var validSorts = map[string]bool{
	"":                    true,
	filter.SortItinerary:  true,
	filter.SortPrice:      true,
	filter.SortTotalPrice: true,
	filter.SortDuration:   true,
	filter.SortSegments:   true,
	filter.SortBestValue:  true,
}

func parseSort(c echo.Context) (sortBy, sortOrder string, err error) {
	sortBy = strings.ToLower(c.QueryParam("sort_by"))
	if !validSorts[sortBy] {
		return "", "", fmt.Errorf("unsupported sort_by %q", sortBy)
	}
	sortOrder = strings.ToLower(c.QueryParam("sort_order"))
	if sortOrder != "" && sortOrder != "asc" && sortOrder != "desc" {
		return "", "", fmt.Errorf("sort_order must be asc or desc, got %q", sortOrder)
	}
	return sortBy, sortOrder, nil
}

func parseMeasure(c echo.Context) (aggregator.Measure, error) {
	v := c.QueryParam("measure")
	m, ok := aggregator.ParseMeasure(v)
	if !ok {
		return "", fmt.Errorf("measure must be price or total_price, got %q", v)
	}
	return m, nil
}

const maxBins = 100

func parseBins(c echo.Context) (int, error) {
	v := c.QueryParam("bins")
	if v == "" {
		return aggregator.DefaultBins, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > maxBins {
		return 0, fmt.Errorf("bins must be an integer between 1 and %d, got %q", maxBins, v)
	}
	return n, nil
}
