package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Domenick1991/routesuggest/internal/domain"
	_ "github.com/go-sql-driver/mysql"
)

type MySQLRouteRepository struct {
	db *sql.DB
}

func NewMySQLRouteRepository(db *sql.DB) *MySQLRouteRepository {
	return &MySQLRouteRepository{db: db}
}

// OpenMySQL opens a pool for dsn and verifies it with a ping.
func OpenMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func (r *MySQLRouteRepository) LoadRoutes(ctx context.Context) ([]domain.Route, error) {
	rows, err := r.db.QueryContext(ctx, selectRoutes)
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
