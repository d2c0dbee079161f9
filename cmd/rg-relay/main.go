package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/rajgarments/storefront/internal/config"
	"github.com/rajgarments/storefront/internal/http"
	"github.com/rajgarments/storefront/internal/log"
	"github.com/rajgarments/storefront/internal/relay"
	"github.com/rajgarments/storefront/internal/repository"
	"github.com/rajgarments/storefront/internal/storage/db"
	"github.com/rajgarments/storefront/internal/storage/mq"
	"github.com/rajgarments/storefront/internal/telemetry"
	"github.com/rajgarments/storefront/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running relay application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		Relay    config.Relay
		Kafka    config.Kafka
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("error creating kafka producer: %w", err)
	}
	defer kafkaProducer.Close()

	outboxMsgRepository := repository.NewOutboxMsgRepository(dbClient)

	interruptChan := cmdutil.InterruptChan()

	cleanupOps, err := http.ServeOps(ctx, cfg.Relay.MetricsPort, logger)
	if err != nil {
		return fmt.Errorf("error serving relay metrics: %w", err)
	}
	defer func() {
		if err := cleanupOps(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down metrics server", slog.Any("error", err))
		}
	}()

	svc := relay.NewService(cfg.Relay, logger, dbClient, outboxMsgRepository, kafkaProducer)
	cleanup := svc.Run(ctx)
	logger.InfoContext(ctx, "relay service started")

	<-interruptChan

	logger.InfoContext(ctx, "relay service is shutting down")
	cleanup()

	logger.InfoContext(ctx, "relay service is stopped")

	return nil
}
