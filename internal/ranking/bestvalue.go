package ranking

import (
	"math"

	"github.com/dharmasatrya/flightinsights/internal/models"
)

const (
	PriceWeight    = 0.5
	DurationWeight = 0.3
	StopsWeight    = 0.2
)

// CalculateScores returns a copy of summaries with BestValueScore set.
func CalculateScores(summaries []models.ItinerarySummary) []models.ItinerarySummary {
	if len(summaries) == 0 {
		return summaries
	}

	maxPrice := findMaxPrice(summaries)
	maxDuration := findMaxDuration(summaries)

	result := make([]models.ItinerarySummary, len(summaries))
	for i, s := range summaries {
		result[i] = s
		result[i].BestValueScore = CalculateBestValue(s, maxPrice, maxDuration)
	}

	return result
}

// Lower score = better value. Itineraries without a known duration take no
// duration penalty; every leg after the first counts as a stop.
func CalculateBestValue(s models.ItinerarySummary, maxPrice, maxDuration float64) float64 {
	priceScore := 0.0
	if maxPrice > 0 {
		priceScore = (s.TotalPrice / maxPrice) * 100
	}

	durationScore := 0.0
	if maxDuration > 0 && s.DurationMinutes != nil {
		durationScore = (float64(*s.DurationMinutes) / maxDuration) * 100
	}

	stops := s.TotalSegments - 1
	if stops < 0 {
		stops = 0
	}
	stopsScore := float64(stops) * 15
	score := (priceScore * PriceWeight) + (durationScore * DurationWeight) + (stopsScore * StopsWeight)

	return math.Round(score*100) / 100
}

// Best returns the lowest-scoring itinerary of an already scored slice.
// Itineraries without flights are never picked.
func Best(scored []models.ItinerarySummary) (models.ItinerarySummary, bool) {
	var best models.ItinerarySummary
	found := false
	for _, s := range scored {
		if s.TotalSegments == 0 {
			continue
		}
		if !found || s.BestValueScore < best.BestValueScore {
			best = s
			found = true
		}
	}
	return best, found
}

func findMaxPrice(summaries []models.ItinerarySummary) float64 {
	maxPrice := 0.0
	for _, s := range summaries {
		if s.TotalPrice > maxPrice {
			maxPrice = s.TotalPrice
		}
	}
	return maxPrice
}

func findMaxDuration(summaries []models.ItinerarySummary) float64 {
	maxDuration := 0.0
	for _, s := range summaries {
		if s.DurationMinutes == nil {
			continue
		}
		dur := float64(*s.DurationMinutes)
		if dur > maxDuration {
			maxDuration = dur
		}
	}
	return maxDuration
}
