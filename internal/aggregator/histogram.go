package aggregator

import (
	"math"

	"github.com/dharmasatrya/flightinsights/internal/models"
)

const DefaultBins = 10

// Histogram splits values into equal-width buckets between their minimum
// and maximum. bins <= 0 uses DefaultBins; identical values produce a
// single bucket.
func Histogram(values []float64, bins int) []models.HistogramBucket {
	if len(values) == 0 {
		return []models.HistogramBucket{}
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	if lo == hi {
		return []models.HistogramBucket{{Lower: lo, Upper: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(bins)
	buckets := make([]models.HistogramBucket, bins)
	for i := range buckets {
		buckets[i].Lower = lo + float64(i)*width
		buckets[i].Upper = lo + float64(i+1)*width
	}
	buckets[bins-1].Upper = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		buckets[idx].Count++
	}

	return buckets
}
