package routes

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Domenick1991/routesuggest/internal/dataset"
	"github.com/Domenick1991/routesuggest/internal/domain"
	"github.com/google/uuid"
)

type RouteUseCase interface {
	ListAirports(ctx context.Context, country string) []string
	DefaultAirports(ctx context.Context) []string
	SuggestRoutes(ctx context.Context, source, destination string) ([]domain.RouteSuggestion, error)
}

// Querier is the read side of the routes table.
type Querier interface {
	ListAirports(country string) []string
	SuggestRoutes(source, destination string) ([]domain.RouteSuggestion, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

const defaultPublishTimeout = 250 * time.Millisecond

type RouteService struct {
	table          Querier
	defaultCountry string
	producer       Producer
	searchTopic    string
	publishTimeout time.Duration
	now            func() time.Time
}

type RouteServiceOption func(*RouteService)

// WithPublishTimeout bounds how long a query waits on the search event.
func WithPublishTimeout(d time.Duration) RouteServiceOption {
	return func(s *RouteService) {
		if d > 0 {
			s.publishTimeout = d
		}
	}
}

// WithSearchEvents publishes a search event to topic after every route query.
func WithSearchEvents(producer Producer, topic string) RouteServiceOption {
	return func(s *RouteService) {
		s.producer = producer
		s.searchTopic = topic
	}
}

func NewRouteService(table Querier, defaultCountry string, opts ...RouteServiceOption) *RouteService {
	service := &RouteService{
		table:          table,
		defaultCountry: defaultCountry,
		publishTimeout: defaultPublishTimeout,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *RouteService) ListAirports(_ context.Context, country string) []string {
	return s.table.ListAirports(country)
}

func (s *RouteService) DefaultAirports(ctx context.Context) []string {
	return s.ListAirports(ctx, s.defaultCountry)
}

func (s *RouteService) SuggestRoutes(ctx context.Context, source, destination string) ([]domain.RouteSuggestion, error) {
	routes, err := s.table.SuggestRoutes(source, destination)
	if err != nil && !errors.Is(err, domain.ErrNoRouteFound) {
		return nil, err
	}

	if pubErr := s.publish(ctx, source, destination, routes); pubErr != nil {
		log.Printf("WARNING: Failed to publish search event for %s -> %s: %v", source, destination, pubErr)
	}
	return routes, err
}

// publish sends a search event for well-formed airport codes only, so
// arbitrary client input never reaches the stats keys. The send is bounded by
// publishTimeout regardless of the request deadline.
func (s *RouteService) publish(ctx context.Context, source, destination string, routes []domain.RouteSuggestion) error {
	if s.producer == nil || s.searchTopic == "" {
		return nil
	}
	if !dataset.ValidCode(source) || !dataset.ValidCode(destination) {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()

	source = dataset.Normalize(source)
	destination = dataset.Normalize(destination)
	event := domain.SearchEvent{
		ID:          uuid.NewString(),
		Type:        domain.SearchEventRouteSearched,
		Source:      source,
		Destination: destination,
		Found:       len(routes) > 0,
		Results:     len(routes),
		SearchedAt:  s.now().UTC(),
	}
	return s.producer.Publish(ctx, s.searchTopic, source+":"+destination, event)
}

var (
	_ RouteUseCase = (*RouteService)(nil)
	_ Querier      = (*dataset.Table)(nil)
)
