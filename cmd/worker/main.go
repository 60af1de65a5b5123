package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/routesuggest/config"
	"github.com/Domenick1991/routesuggest/internal/kafka"
	"github.com/Domenick1991/routesuggest/internal/stats"
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
	if !cfg.EventsEnabled() || !cfg.StatsEnabled() {
		log.Fatalf("worker needs kafka.brokers and redis.addr configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := stats.NewRedisStore(cfg.Redis)
	defer store.Close()
	if err := store.Ping(ctx); err != nil {
		log.Fatalf("connect redis: %v", err)
	}

	if err := kafka.CheckConnection(ctx, cfg.Kafka.Brokers); err != nil {
		log.Fatalf("connect kafka: %v", err)
	}

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.SearchTopic)
	defer consumer.Close()

	recorder := stats.NewRecorder(store)

	log.Printf("Consuming search events from %s", cfg.Kafka.SearchTopic)
	if err := consumer.ConsumeSearchEvents(ctx, recorder.Handle); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("consumer stopped: %v", err)
		return
	}
	log.Printf("shutting down")
}
