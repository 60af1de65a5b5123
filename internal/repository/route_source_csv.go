package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Domenick1991/routesuggest/internal/domain"
	"github.com/jszwec/csvutil"
)

// CSVRouteSource reads the routes dataset from a CSV file whose header names
// the columns airline, source_airport, destination_airport, source_country,
// price and distance. Column order is free and extra columns are ignored.
type CSVRouteSource struct {
	path string
}

func NewCSVRouteSource(path string) *CSVRouteSource {
	return &CSVRouteSource{path: path}
}

func (s *CSVRouteSource) LoadRoutes(ctx context.Context) ([]domain.Route, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	routes, err := DecodeRoutesCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return routes, ctx.Err()
}

// DecodeRoutesCSV decodes every record of r. A missing column is an error.
func DecodeRoutesCSV(r io.Reader) ([]domain.Route, error) {
	decoder, err := csvutil.NewDecoder(csv.NewReader(r))
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv has no header")
		}
		return nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}
	decoder.DisallowMissingColumns = true

	var routes []domain.Route
	if err := decoder.Decode(&routes); err != nil {
		return nil, fmt.Errorf("failed to decode routes CSV: %w", err)
	}
	return routes, nil
}
