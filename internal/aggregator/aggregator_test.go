package aggregator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flightinsights/internal/aggregator"
	"github.com/dharmasatrya/flightinsights/internal/itinerary"
	"github.com/dharmasatrya/flightinsights/internal/models"
)

func strPtr(s string) *string { return &s }

// ── Compute / Median / Mean ────────────────────────────────────────────────

func TestCompute_OddCount(t *testing.T) {
	got, err := aggregator.Compute([]float64{300, 100, 200})

	require.NoError(t, err)
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, 100.0, got.Min)
	assert.Equal(t, 300.0, got.Max)
	assert.Equal(t, 200.0, got.Median)
	assert.Equal(t, 200.0, got.Mean)
}

func TestCompute_EvenCount(t *testing.T) {
	got, err := aggregator.Compute([]float64{200, 100})

	require.NoError(t, err)
	assert.Equal(t, 150.0, got.Median)
	assert.Equal(t, 150.0, got.Mean)
}

func TestCompute_EmptyIsNoData(t *testing.T) {
	_, err := aggregator.Compute(nil)
	assert.ErrorIs(t, err, models.ErrNoData)

	_, err = aggregator.Median([]float64{})
	assert.ErrorIs(t, err, models.ErrNoData)

	_, err = aggregator.Mean(nil)
	assert.ErrorIs(t, err, models.ErrNoData)
}

func TestCompute_DoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	_, err := aggregator.Compute(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestMedianAndMean(t *testing.T) {
	m, err := aggregator.Median([]float64{100, 200, 300})
	require.NoError(t, err)
	assert.Equal(t, 200.0, m)

	m, err = aggregator.Median([]float64{100, 200})
	require.NoError(t, err)
	assert.Equal(t, 150.0, m)

	mean, err := aggregator.Mean([]float64{100, 200, 300, 400})
	require.NoError(t, err)
	assert.Equal(t, 250.0, mean)
}

// ── GroupBy ────────────────────────────────────────────────────────────────

func TestGroupBy_SortedByMean(t *testing.T) {
	got := aggregator.GroupBy([]aggregator.Sample{
		{Key: "AF", Value: 900},
		{Key: "LH", Value: 100},
		{Key: "AF", Value: 500},
		{Key: "KL", Value: 400},
		{Key: "LH", Value: 300},
	})

	require.Len(t, got, 3)
	assert.Equal(t, "LH", got[0].Airlines)
	assert.Equal(t, 200.0, got[0].Mean)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "KL", got[1].Airlines)
	assert.Equal(t, "AF", got[2].Airlines)
	assert.Equal(t, 500.0, got[2].Min)
	assert.Equal(t, 900.0, got[2].Max)
	assert.Equal(t, 700.0, got[2].Median)

	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Mean, got[i].Mean)
	}
}

func TestGroupBy_TiesOrderedByKey(t *testing.T) {
	got := aggregator.GroupBy([]aggregator.Sample{
		{Key: "ZZ", Value: 100},
		{Key: "AA", Value: 100},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "AA", got[0].Airlines)
	assert.Equal(t, "ZZ", got[1].Airlines)
}

func TestGroupBy_Empty(t *testing.T) {
	got := aggregator.GroupBy(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ── ByAirlines / ByMainAirline ────────────────────────────────────────────

func endToEndRecord() models.SearchRecord {
	return models.SearchRecord{
		Recos: []models.Recommendation{
			{Price: 500, Fees: 20, MainMarketingAirline: "AB",
				Flights: []models.FlightSegment{{MarketingAirline: "AB"}}},
			{Price: 300, Fees: 0, MainMarketingAirline: "CD",
				Flights: []models.FlightSegment{{MarketingAirline: "CD"}, {MarketingAirline: "CD"}}},
		},
	}
}

func TestByAirlines_EndToEnd(t *testing.T) {
	summaries := itinerary.Summarize(endToEndRecord())

	got := aggregator.ByAirlines(summaries, aggregator.MeasureTotalPrice)

	require.Len(t, got, 2)
	assert.Equal(t, "CD", got[0].Airlines)
	assert.Equal(t, 300.0, got[0].Mean)
	assert.Equal(t, "AB", got[1].Airlines)
	assert.Equal(t, 520.0, got[1].Mean)
}

func TestByAirlines_PriceMeasure(t *testing.T) {
	summaries := itinerary.Summarize(endToEndRecord())

	got := aggregator.ByAirlines(summaries, aggregator.MeasurePrice)

	require.Len(t, got, 2)
	assert.Equal(t, 500.0, got[1].Mean)
}

func TestByAirlines_UnknownKey(t *testing.T) {
	summaries := []models.ItinerarySummary{
		{Price: 10},
		{Price: 30, Airlines: strPtr("")},
		{Price: 50, Airlines: strPtr("AF, KL")},
	}

	got := aggregator.ByAirlines(summaries, aggregator.MeasurePrice)

	require.Len(t, got, 2)
	assert.Equal(t, aggregator.UnknownAirline, got[0].Airlines)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "AF, KL", got[1].Airlines)
}

func TestByMainAirline(t *testing.T) {
	rec := endToEndRecord()
	rec.Recos = append(rec.Recos, models.Recommendation{Price: 100})

	got := aggregator.ByMainAirline(rec)

	require.Len(t, got, 3)
	assert.Equal(t, aggregator.UnknownAirline, got[0].Airlines)
	assert.Equal(t, "CD", got[1].Airlines)
	assert.Equal(t, "AB", got[2].Airlines)
	assert.Equal(t, 500.0, got[2].Mean)
}

func TestOverall(t *testing.T) {
	summaries := itinerary.Summarize(endToEndRecord())

	got, err := aggregator.Overall(summaries, aggregator.MeasureTotalPrice)
	require.NoError(t, err)
	assert.Equal(t, 300.0, got.Min)
	assert.Equal(t, 520.0, got.Max)
	assert.Equal(t, 410.0, got.Median)

	_, err = aggregator.Overall(nil, aggregator.MeasurePrice)
	assert.ErrorIs(t, err, models.ErrNoData)
}

func TestParseMeasure(t *testing.T) {
	cases := []struct {
		in   string
		want aggregator.Measure
		ok   bool
	}{
		{"", aggregator.MeasurePrice, true},
		{"price", aggregator.MeasurePrice, true},
		{"TOTAL_PRICE", aggregator.MeasureTotalPrice, true},
		{"total", aggregator.MeasureTotalPrice, true},
		{"taxes", aggregator.MeasurePrice, false},
	}
	for _, tc := range cases {
		got, ok := aggregator.ParseMeasure(tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.ok, ok, tc.in)
	}
}
