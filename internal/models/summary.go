package models

// DurationNotAvailable is rendered when an itinerary's duration cannot be
// derived from its segment timestamps.
const DurationNotAvailable = "N/A"

// ItinerarySummary is the flattened representation of one recommendation.
// Pointer fields are nil when the recommendation has no flights, so "no
// data" stays distinguishable from an empty value.
type ItinerarySummary struct {
	ItineraryID     int     `json:"itinerary_id"`
	Price           float64 `json:"price"`
	Taxes           float64 `json:"taxes"`
	Fees            float64 `json:"fees"`
	TotalPrice      float64 `json:"total_price"`
	FormattedTotal  string  `json:"formatted_total"`
	TotalSegments   int     `json:"total_segments"`
	Origin          *string `json:"origin,omitempty"`
	Destination     *string `json:"destination,omitempty"`
	DepartureDate   *string `json:"departure_date,omitempty"`
	DepartureTime   *string `json:"departure_time,omitempty"`
	ArrivalDate     *string `json:"arrival_date,omitempty"`
	ArrivalTime     *string `json:"arrival_time,omitempty"`
	Airlines        *string `json:"airlines,omitempty"`
	Duration        *string `json:"duration,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	BestValueScore  float64 `json:"best_value_score,omitempty"`
}

// FlightDetail is one segment annotated with its parent recommendation.
type FlightDetail struct {
	ItineraryID      int     `json:"itinerary_id"`
	MarketingAirline string  `json:"marketing_airline"`
	FlightNb         string  `json:"flight_nb"`
	Cabin            string  `json:"cabin"`
	DepAirport       string  `json:"dep_airport"`
	DepDate          string  `json:"dep_date"`
	DepTime          string  `json:"dep_time"`
	ArrAirport       string  `json:"arr_airport"`
	ArrDate          string  `json:"arr_date"`
	ArrTime          string  `json:"arr_time"`
	Price            float64 `json:"price"`
	MainAirline      *string `json:"main_airline,omitempty"`
}

// SearchOverview holds the search-level KPIs of a record.
type SearchOverview struct {
	SearchID          string  `json:"search_id"`
	SearchDate        *string `json:"search_date,omitempty"`
	RequestDepDate    *string `json:"request_dep_date,omitempty"`
	RequestReturnDate *string `json:"request_return_date,omitempty"`
	OriginCity        *string `json:"origin_city,omitempty"`
	DestinationCity   *string `json:"destination_city,omitempty"`
	LeadTimeDays      *int    `json:"lead_time_days,omitempty"`
	StayDays          *int    `json:"stay_days,omitempty"`
	Recommendations   int     `json:"recommendations"`
	Segments          int     `json:"segments"`
}

// PriceStats summarizes a non-empty set of prices.
type PriceStats struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min_price"`
	Max    float64 `json:"max_price"`
	Mean   float64 `json:"avg_price"`
	Median float64 `json:"median_price"`
}

// AirlineStats are price statistics for one airline grouping key.
type AirlineStats struct {
	Airlines string `json:"airlines"`
	PriceStats
}

// HistogramBucket is one equal-width price bin, [Lower, Upper).
// The last bucket is closed on both ends.
type HistogramBucket struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}
