package models

// SearchRecord is one stored document: the full response of a single
// flight-price search.
type SearchRecord struct {
	SearchID          Text             `json:"search_id"`
	SearchDate        Text             `json:"search_date"`
	RequestDepDate    Text             `json:"request_dep_date"`
	RequestReturnDate Text             `json:"request_return_date"`
	OriginCity        Text             `json:"origin_city"`
	DestinationCity   Text             `json:"destination_city"`
	Recos             []Recommendation `json:"recos"`
}

// Recommendation is one priced itinerary option within a search.
type Recommendation struct {
	Price                Amount          `json:"price"`
	Taxes                Amount          `json:"taxes"`
	Fees                 Amount          `json:"fees"`
	MainMarketingAirline Text            `json:"main_marketing_airline"`
	Flights              []FlightSegment `json:"flights"`
}

// FlightSegment is a single leg. Flights within a recommendation are
// stored in chronological order.
type FlightSegment struct {
	MarketingAirline Text `json:"marketing_airline"`
	FlightNb         Text `json:"flight_nb"`
	Cabin            Text `json:"cabin"`
	DepAirport       Text `json:"dep_airport"`
	DepDate          Text `json:"dep_date"`
	DepTime          Text `json:"dep_time"`
	ArrAirport       Text `json:"arr_airport"`
	ArrDate          Text `json:"arr_date"`
	ArrTime          Text `json:"arr_time"`
}
