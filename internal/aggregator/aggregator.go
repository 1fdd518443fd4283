// Package aggregator derives price metrics from itinerary summaries.
package aggregator

import (
	"sort"
	"strings"

	"github.com/dharmasatrya/flightinsights/internal/models"
)

// UnknownAirline is the grouping key for itineraries without airline data.
const UnknownAirline = "unknown"

// Measure selects which price of a summary is aggregated.
type Measure string

const (
	MeasurePrice      Measure = "price"
	MeasureTotalPrice Measure = "total_price"
)

// ParseMeasure maps a query value to a Measure, defaulting to MeasurePrice.
func ParseMeasure(s string) (Measure, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(MeasurePrice):
		return MeasurePrice, true
	case string(MeasureTotalPrice), "total":
		return MeasureTotalPrice, true
	default:
		return MeasurePrice, false
	}
}

func (m Measure) of(s models.ItinerarySummary) float64 {
	if m == MeasureTotalPrice {
		return s.TotalPrice
	}
	return s.Price
}

// Sample is one keyed value fed to GroupBy.
type Sample struct {
	Key   string
	Value float64
}

// Compute returns min, max, mean and median of values, or models.ErrNoData
// when values is empty.
func Compute(values []float64) (models.PriceStats, error) {
	if len(values) == 0 {
		return models.PriceStats{}, models.ErrNoData
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}

	return models.PriceStats{
		Count:  len(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Mean:   sum / float64(len(sorted)),
		Median: medianSorted(sorted),
	}, nil
}

// Median returns the median of values, or models.ErrNoData when empty.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, models.ErrNoData
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return medianSorted(sorted), nil
}

// Mean returns the arithmetic mean of values, or models.ErrNoData when empty.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, models.ErrNoData
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

func medianSorted(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// GroupBy partitions samples by key and returns per-group statistics sorted
// ascending by mean. Equal means are ordered by key.
func GroupBy(samples []Sample) []models.AirlineStats {
	groups := make(map[string][]float64)
	for _, s := range samples {
		groups[s.Key] = append(groups[s.Key], s.Value)
	}

	result := make([]models.AirlineStats, 0, len(groups))
	for key, values := range groups {
		stats, err := Compute(values)
		if err != nil {
			continue
		}
		result = append(result, models.AirlineStats{Airlines: key, PriceStats: stats})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Mean != result[j].Mean {
			return result[i].Mean < result[j].Mean
		}
		return result[i].Airlines < result[j].Airlines
	})

	return result
}

// Prices extracts the measured price of every summary.
func Prices(summaries []models.ItinerarySummary, m Measure) []float64 {
	values := make([]float64, len(summaries))
	for i, s := range summaries {
		values[i] = m.of(s)
	}
	return values
}

// Overall computes global statistics of the measured price.
func Overall(summaries []models.ItinerarySummary, m Measure) (models.PriceStats, error) {
	return Compute(Prices(summaries, m))
}

// ByAirlines groups summaries by their joined airlines string.
func ByAirlines(summaries []models.ItinerarySummary, m Measure) []models.AirlineStats {
	samples := make([]Sample, len(summaries))
	for i, s := range summaries {
		key := UnknownAirline
		if s.Airlines != nil && *s.Airlines != "" {
			key = *s.Airlines
		}
		samples[i] = Sample{Key: key, Value: m.of(s)}
	}
	return GroupBy(samples)
}

// ByMainAirline groups the recommendation prices of a record by their main
// marketing airline. This is the grouping behind the flat flight view.
func ByMainAirline(record models.SearchRecord) []models.AirlineStats {
	samples := make([]Sample, len(record.Recos))
	for i, reco := range record.Recos {
		key := strings.TrimSpace(reco.MainMarketingAirline.String())
		if key == "" {
			key = UnknownAirline
		}
		samples[i] = Sample{Key: key, Value: reco.Price.Float()}
	}
	return GroupBy(samples)
}
