// Package itinerary turns raw search documents into the flat views shown on
// the dashboard. Every function here is total: malformed fields degrade to
// documented defaults and never produce an error.
package itinerary

import (
	"strings"

	"github.com/dharmasatrya/flightinsights/internal/datetime"
	"github.com/dharmasatrya/flightinsights/internal/models"
	"github.com/dharmasatrya/flightinsights/pkg/currency"
)

const DefaultCurrency = "EUR"

type Summarizer struct {
	Currency string
}

func NewSummarizer(currencyCode string) *Summarizer {
	if currencyCode == "" {
		currencyCode = DefaultCurrency
	}
	return &Summarizer{Currency: currencyCode}
}

// Summarize uses the default currency for formatted totals.
func Summarize(record models.SearchRecord) []models.ItinerarySummary {
	return NewSummarizer(DefaultCurrency).Summarize(record)
}

// Summarize returns one summary per recommendation, in input order, with
// 1-based itinerary ids.
func (s *Summarizer) Summarize(record models.SearchRecord) []models.ItinerarySummary {
	summaries := make([]models.ItinerarySummary, len(record.Recos))
	for i, reco := range record.Recos {
		summaries[i] = s.summarize(i+1, reco)
	}
	return summaries
}

func (s *Summarizer) summarize(id int, reco models.Recommendation) models.ItinerarySummary {
	price := reco.Price.Float()
	fees := reco.Fees.Float()
	total := price + fees

	summary := models.ItinerarySummary{
		ItineraryID:    id,
		Price:          price,
		Taxes:          reco.Taxes.Float(),
		Fees:           fees,
		TotalPrice:     total,
		FormattedTotal: currency.Format(total, s.Currency),
		TotalSegments:  len(reco.Flights),
	}

	if len(reco.Flights) == 0 {
		return summary
	}

	first := reco.Flights[0]
	last := reco.Flights[len(reco.Flights)-1]

	summary.Origin = first.DepAirport.Ptr()
	summary.Destination = last.ArrAirport.Ptr()
	summary.DepartureDate = first.DepDate.Ptr()
	summary.DepartureTime = first.DepTime.Ptr()
	summary.ArrivalDate = last.ArrDate.Ptr()
	summary.ArrivalTime = last.ArrTime.Ptr()

	airlines := JoinAirlines(reco.Flights)
	summary.Airlines = &airlines

	duration := models.DurationNotAvailable
	if minutes, ok := DurationMinutes(first, last); ok {
		duration = datetime.FormatDuration(minutes)
		summary.DurationMinutes = &minutes
	}
	summary.Duration = &duration

	return summary
}

// JoinAirlines returns the distinct marketing airlines of the segments in
// first-seen order, joined with ", ". Empty codes are skipped.
func JoinAirlines(flights []models.FlightSegment) string {
	seen := make(map[string]bool, len(flights))
	codes := make([]string, 0, len(flights))
	for _, f := range flights {
		code := strings.TrimSpace(f.MarketingAirline.String())
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return strings.Join(codes, ", ")
}

// DurationMinutes is the whole-minute span from the departure of first to
// the arrival of last. ok is false when a timestamp is missing or
// malformed, or when arrival precedes departure.
func DurationMinutes(first, last models.FlightSegment) (int, bool) {
	dep, err := datetime.ParseLocal(first.DepDate.String(), first.DepTime.String())
	if err != nil {
		return 0, false
	}
	arr, err := datetime.ParseLocal(last.ArrDate.String(), last.ArrTime.String())
	if err != nil {
		return 0, false
	}

	d := arr.Sub(dep)
	if d < 0 {
		return 0, false
	}
	return int(d.Minutes()), true
}
