package itinerary

import (
	"github.com/dharmasatrya/flightinsights/internal/datetime"
	"github.com/dharmasatrya/flightinsights/internal/models"
)

// Overview derives the search-level KPIs. Lead time runs from the search
// date to the requested departure; stay length from departure to return.
func Overview(record models.SearchRecord) models.SearchOverview {
	ov := models.SearchOverview{
		SearchID:          record.SearchID.String(),
		SearchDate:        record.SearchDate.Ptr(),
		RequestDepDate:    record.RequestDepDate.Ptr(),
		RequestReturnDate: record.RequestReturnDate.Ptr(),
		OriginCity:        record.OriginCity.Ptr(),
		DestinationCity:   record.DestinationCity.Ptr(),
		Recommendations:   len(record.Recos),
	}

	for _, reco := range record.Recos {
		ov.Segments += len(reco.Flights)
	}

	if days, ok := datetime.DaysBetween(record.SearchDate.String(), record.RequestDepDate.String()); ok {
		ov.LeadTimeDays = &days
	}
	if days, ok := datetime.DaysBetween(record.RequestDepDate.String(), record.RequestReturnDate.String()); ok {
		ov.StayDays = &days
	}

	return ov
}
