package dataset

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/Domenick1991/routesuggest/internal/domain"
)

// RouteSource reads every row of the routes dataset.
type RouteSource interface {
	LoadRoutes(ctx context.Context) ([]domain.Route, error)
}

// Load reads the whole dataset from src and builds the table. Any invalid row
// fails the load; there is no partial table.
func Load(ctx context.Context, src RouteSource) (*Table, error) {
	routes, err := src.LoadRoutes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load routes: %w", err)
	}
	if len(routes) == 0 {
		return nil, errors.New("load routes: dataset is empty")
	}
	for i, r := range routes {
		if err := validate(r); err != nil {
			return nil, fmt.Errorf("load routes: row %d: %w", i+1, err)
		}
	}

	table := NewTable(routes)
	log.Printf("Loaded %d routes", table.Len())
	return table, nil
}

func validate(r domain.Route) error {
	switch {
	case strings.TrimSpace(r.SourceAirport) == "":
		return errors.New("source_airport is empty")
	case strings.TrimSpace(r.DestinationAirport) == "":
		return errors.New("destination_airport is empty")
	case strings.TrimSpace(r.SourceCountry) == "":
		return errors.New("source_country is empty")
	case math.IsNaN(r.Price) || math.IsInf(r.Price, 0) || r.Price < 0:
		return fmt.Errorf("invalid price %v", r.Price)
	case math.IsNaN(r.Distance) || math.IsInf(r.Distance, 0) || r.Distance < 0:
		return fmt.Errorf("invalid distance %v", r.Distance)
	}
	return nil
}
