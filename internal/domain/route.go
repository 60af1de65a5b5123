package domain

import (
	"errors"
	"time"
)

// ErrNoRouteFound is returned when no dataset row connects the requested airports.
var ErrNoRouteFound = errors.New("no routes found between specified airports")

// Route is one row of the routes dataset: a single airline's offering between two airports.
type Route struct {
	Airline            string  `csv:"airline" json:"airline"`
	SourceAirport      string  `csv:"source_airport" json:"source_airport"`
	DestinationAirport string  `csv:"destination_airport" json:"destination_airport"`
	SourceCountry      string  `csv:"source_country" json:"source_country"`
	Price              float64 `csv:"price" json:"price"`
	Distance           float64 `csv:"distance" json:"distance"`
}

// RouteSuggestion is the projection of a Route returned to clients.
type RouteSuggestion struct {
	Airline            string  `json:"airline"`
	SourceAirport      string  `json:"source_airport"`
	DestinationAirport string  `json:"destination_airport"`
	Price              float64 `json:"price"`
	Distance           float64 `json:"distance"`
}

func (r Route) Suggestion() RouteSuggestion {
	return RouteSuggestion{
		Airline:            r.Airline,
		SourceAirport:      r.SourceAirport,
		DestinationAirport: r.DestinationAirport,
		Price:              r.Price,
		Distance:           r.Distance,
	}
}

const SearchEventRouteSearched = "route_searched"

type SearchEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Found       bool      `json:"found"`
	Results     int       `json:"results"`
	SearchedAt  time.Time `json:"searched_at"`
}

type PairStat struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Searches    int64  `json:"searches"`
}
