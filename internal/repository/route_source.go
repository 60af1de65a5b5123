package repository

import "github.com/Domenick1991/routesuggest/internal/dataset"

const selectRoutes = `SELECT airline, source_airport, destination_airport, source_country, price, distance FROM routes ORDER BY id`

var (
	_ dataset.RouteSource = (*CSVRouteSource)(nil)
	_ dataset.RouteSource = (*PGRouteRepository)(nil)
	_ dataset.RouteSource = (*MySQLRouteRepository)(nil)
)
