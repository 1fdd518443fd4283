package models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type SearchListResponse struct {
	SearchIDs []string `json:"search_ids"`
	Total     int      `json:"total"`
	Message   string   `json:"message,omitempty"`
}

type ItinerariesResponse struct {
	SearchID    string             `json:"search_id"`
	Total       int                `json:"total"`
	Itineraries []ItinerarySummary `json:"itineraries"`
}

type FlightsResponse struct {
	SearchID string         `json:"search_id"`
	Total    int            `json:"total"`
	Flights  []FlightDetail `json:"flights"`
}

// StatsResponse carries a nil Overall when there is nothing to aggregate.
type StatsResponse struct {
	SearchID string         `json:"search_id"`
	Measure  string         `json:"measure"`
	Overall  *PriceStats    `json:"overall"`
	ByGroup  []AirlineStats `json:"by_airlines"`
	Message  string         `json:"message,omitempty"`
}

// Dashboard bundles every view of one search: KPIs, tables and chart series.
type Dashboard struct {
	Overview       SearchOverview     `json:"overview"`
	Overall        *PriceStats        `json:"overall"`
	ByAirlines     []AirlineStats     `json:"by_airlines"`
	ByMainAirline  []AirlineStats     `json:"by_main_airline"`
	PriceHistogram []HistogramBucket  `json:"price_histogram"`
	BestValue      *ItinerarySummary  `json:"best_value,omitempty"`
	Itineraries    []ItinerarySummary `json:"itineraries"`
	Flights        []FlightDetail     `json:"flights"`
}

type RefreshResponse struct {
	Status string `json:"status"`
}
