// Package dataset holds the in-memory routes table and the read-only queries over it.
package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Domenick1991/routesuggest/internal/domain"
)

// Table is the routes dataset loaded at startup. It is never mutated after
// NewTable returns, so it can be shared by any number of concurrent readers.
type Table struct {
	routes   []domain.Route
	byPair   map[pairKey][]int
	airports map[string][]string
}

type pairKey struct {
	source      string
	destination string
}

// NewTable copies routes and builds the lookup indexes.
func NewTable(routes []domain.Route) *Table {
	t := &Table{
		routes:   make([]domain.Route, len(routes)),
		byPair:   make(map[pairKey][]int),
		airports: make(map[string][]string),
	}
	copy(t.routes, routes)

	seen := make(map[string]map[string]struct{})
	for i, r := range t.routes {
		key := pairKey{source: Normalize(r.SourceAirport), destination: Normalize(r.DestinationAirport)}
		t.byPair[key] = append(t.byPair[key], i)

		country := Normalize(r.SourceCountry)
		if seen[country] == nil {
			seen[country] = make(map[string]struct{})
		}
		code := Normalize(r.SourceAirport)
		if _, ok := seen[country][code]; ok {
			continue
		}
		seen[country][code] = struct{}{}
		t.airports[country] = append(t.airports[country], r.SourceAirport)
	}
	for _, codes := range t.airports {
		sort.Strings(codes)
	}
	return t
}

// Normalize folds an airport code or country name into its matching key.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ValidCode reports whether code looks like an IATA or ICAO airport code
// after normalization.
func ValidCode(code string) bool {
	code = Normalize(code)
	if len(code) < 3 || len(code) > 4 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func (t *Table) Len() int {
	return len(t.routes)
}

// ListAirports returns the distinct source airports of the given country in
// ascending order. An unknown country yields an empty slice.
func (t *Table) ListAirports(country string) []string {
	codes := t.airports[Normalize(country)]
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}

// SuggestRoutes returns every route from source to destination, cheapest
// first. Routes with equal prices keep their dataset order.
func (t *Table) SuggestRoutes(source, destination string) ([]domain.RouteSuggestion, error) {
	idx := t.byPair[pairKey{source: Normalize(source), destination: Normalize(destination)}]
	if len(idx) == 0 {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrNoRouteFound, source, destination)
	}

	matched := make([]domain.Route, 0, len(idx))
	for _, i := range idx {
		matched = append(matched, t.routes[i])
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Price < matched[j].Price
	})

	out := make([]domain.RouteSuggestion, 0, len(matched))
	for _, r := range matched {
		out = append(out, r.Suggestion())
	}
	return out, nil
}
