package repository

import (
	"context"

	"github.com/Domenick1991/routesuggest/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewPGRouteRepository(db *pgxpool.Pool) *PGRouteRepository {
	return &PGRouteRepository{db: db}
}

func (r *PGRouteRepository) LoadRoutes(ctx context.Context) ([]domain.Route, error) {
	rows, err := r.db.Query(ctx, selectRoutes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		var rt domain.Route
		if err := rows.Scan(&rt.Airline, &rt.SourceAirport, &rt.DestinationAirport, &rt.SourceCountry, &rt.Price, &rt.Distance); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}
