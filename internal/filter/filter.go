package filter

import (
	"sort"
	"strings"

	"github.com/dharmasatrya/flightinsights/internal/models"
	"github.com/dharmasatrya/flightinsights/internal/ranking"
)

// Filters narrows the itinerary table. Nil fields are not applied.
type Filters struct {
	PriceMin    *float64
	PriceMax    *float64
	MaxSegments *int
	Airlines    []string
}

const (
	SortItinerary  = "itinerary"
	SortPrice      = "price"
	SortTotalPrice = "total_price"
	SortDuration   = "duration"
	SortSegments   = "segments"
	SortBestValue  = "best_value"
)

// Apply filters and sorts a copy of summaries; the input is left untouched.
func Apply(summaries []models.ItinerarySummary, filters *Filters, sortBy, sortOrder string) []models.ItinerarySummary {
	filtered := applyFilters(summaries, filters)

	if strings.EqualFold(sortBy, SortBestValue) {
		filtered = ranking.CalculateScores(filtered)
	}

	return applySort(filtered, sortBy, sortOrder)
}

func applyFilters(summaries []models.ItinerarySummary, filters *Filters) []models.ItinerarySummary {
	result := make([]models.ItinerarySummary, 0, len(summaries))

	for _, s := range summaries {
		if filters == nil || matchesFilters(s, filters) {
			result = append(result, s)
		}
	}

	return result
}

func matchesFilters(s models.ItinerarySummary, filters *Filters) bool {
	if filters.PriceMin != nil && s.TotalPrice < *filters.PriceMin {
		return false
	}
	if filters.PriceMax != nil && s.TotalPrice > *filters.PriceMax {
		return false
	}

	if filters.MaxSegments != nil && s.TotalSegments > *filters.MaxSegments {
		return false
	}

	if len(filters.Airlines) > 0 {
		if s.Airlines == nil {
			return false
		}
		found := false
		for _, code := range strings.Split(*s.Airlines, ",") {
			for _, airline := range filters.Airlines {
				if strings.EqualFold(strings.TrimSpace(code), strings.TrimSpace(airline)) {
					found = true
					break
				}
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func applySort(summaries []models.ItinerarySummary, sortBy, sortOrder string) []models.ItinerarySummary {
	if len(summaries) == 0 {
		return summaries
	}

	ascending := strings.ToLower(sortOrder) != "desc"

	switch strings.ToLower(sortBy) {
	case SortPrice:
		sortStable(summaries, ascending, func(a, b models.ItinerarySummary) bool { return a.Price < b.Price })

	case SortTotalPrice:
		sortStable(summaries, ascending, func(a, b models.ItinerarySummary) bool { return a.TotalPrice < b.TotalPrice })

	case SortDuration:
		// unknown durations always go last, whatever the order
		known := make([]models.ItinerarySummary, 0, len(summaries))
		var unknown []models.ItinerarySummary
		for _, s := range summaries {
			if s.DurationMinutes == nil {
				unknown = append(unknown, s)
				continue
			}
			known = append(known, s)
		}
		sortStable(known, ascending, func(a, b models.ItinerarySummary) bool { return *a.DurationMinutes < *b.DurationMinutes })
		summaries = append(known, unknown...)

	case SortSegments:
		sortStable(summaries, ascending, func(a, b models.ItinerarySummary) bool { return a.TotalSegments < b.TotalSegments })

	case SortBestValue:
		sortStable(summaries, ascending, func(a, b models.ItinerarySummary) bool { return a.BestValueScore < b.BestValueScore })

	default:
		// Default to itinerary order
		sortStable(summaries, ascending, func(a, b models.ItinerarySummary) bool { return a.ItineraryID < b.ItineraryID })
	}

	return summaries
}

func sortStable(summaries []models.ItinerarySummary, ascending bool, less func(a, b models.ItinerarySummary) bool) {
	sort.SliceStable(summaries, func(i, j int) bool {
		if ascending {
			return less(summaries[i], summaries[j])
		}
		return less(summaries[j], summaries[i])
	})
}
