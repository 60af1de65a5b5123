package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/routesuggest/config"
	"github.com/Domenick1991/routesuggest/internal/bootstrap"
	"github.com/Domenick1991/routesuggest/internal/dataset"
	"github.com/Domenick1991/routesuggest/internal/kafka"
	"github.com/Domenick1991/routesuggest/internal/repository"
	"github.com/Domenick1991/routesuggest/internal/service/routes"
	"github.com/Domenick1991/routesuggest/internal/stats"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("load .env: %v", err)
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	table, err := loadTable(ctx, cfg)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}

	var opts []routes.RouteServiceOption
	if cfg.EventsEnabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		if err := producer.CheckConnection(ctx); err != nil {
			log.Printf("WARNING: kafka %v unreachable: %v", cfg.Kafka.Brokers, err)
		}
		opts = append(opts, routes.WithSearchEvents(producer, cfg.Kafka.SearchTopic))
	}
	routeService := routes.NewRouteService(table, cfg.Dataset.DefaultCountry, opts...)

	deps := bootstrap.Deps{Routes: routeService, RouteCount: table.Len()}
	if cfg.StatsEnabled() {
		store := stats.NewRedisStore(cfg.Redis)
		defer store.Close()
		if err := store.Ping(ctx); err != nil {
			log.Printf("WARNING: redis %s unreachable: %v", cfg.Redis.Addr, err)
		}
		deps.Stats = store
	}

	if err := bootstrap.Run(ctx, cfg, deps); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// loadTable reads the dataset from the configured source. The process must
// not serve without it.
func loadTable(ctx context.Context, cfg *config.Config) (*dataset.Table, error) {
	switch cfg.Dataset.Source {
	case config.SourceCSV:
		log.Printf("Loading routes from %s", cfg.Dataset.Path)
		return dataset.Load(ctx, repository.NewCSVRouteSource(cfg.Dataset.Path))
	case config.SourcePostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()
		log.Printf("Loading routes from postgres %s/%s", cfg.Database.Host, cfg.Database.Name)
		return dataset.Load(ctx, repository.NewPGRouteRepository(pool))
	case config.SourceMySQL:
		db, err := repository.OpenMySQL(ctx, cfg.MySQL.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		defer db.Close()
		log.Printf("Loading routes from mysql %s/%s", cfg.MySQL.Host, cfg.MySQL.Name)
		return dataset.Load(ctx, repository.NewMySQLRouteRepository(db))
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
}
