package itinerary

import "github.com/dharmasatrya/flightinsights/internal/models"

// Flatten lists every segment of every recommendation, recommendations in
// input order and segments in leg order, each tagged with its parent's
// price and main airline.
func Flatten(record models.SearchRecord) []models.FlightDetail {
	var n int
	for _, reco := range record.Recos {
		n += len(reco.Flights)
	}

	details := make([]models.FlightDetail, 0, n)
	for i, reco := range record.Recos {
		for _, f := range reco.Flights {
			details = append(details, models.FlightDetail{
				ItineraryID:      i + 1,
				MarketingAirline: f.MarketingAirline.String(),
				FlightNb:         f.FlightNb.String(),
				Cabin:            f.Cabin.String(),
				DepAirport:       f.DepAirport.String(),
				DepDate:          f.DepDate.String(),
				DepTime:          f.DepTime.String(),
				ArrAirport:       f.ArrAirport.String(),
				ArrDate:          f.ArrDate.String(),
				ArrTime:          f.ArrTime.String(),
				Price:            reco.Price.Float(),
				MainAirline:      reco.MainMarketingAirline.Ptr(),
			})
		}
	}
	return details
}
