package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	apicontract "github.com/rajgarments/storefront/api-contract"
	"github.com/rajgarments/storefront/internal/assistant"
	"github.com/rajgarments/storefront/internal/config"
	"github.com/rajgarments/storefront/internal/event"
	"github.com/rajgarments/storefront/internal/http"
	"github.com/rajgarments/storefront/internal/log"
	"github.com/rajgarments/storefront/internal/recommend"
	"github.com/rajgarments/storefront/internal/relay"
	"github.com/rajgarments/storefront/internal/repository"
	"github.com/rajgarments/storefront/internal/service"
	"github.com/rajgarments/storefront/internal/storage/cache"
	"github.com/rajgarments/storefront/internal/storage/db"
	"github.com/rajgarments/storefront/internal/storage/mq"
	"github.com/rajgarments/storefront/internal/telemetry"
	"github.com/rajgarments/storefront/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running standalone application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log       config.Log
		Postgres  config.Postgres
		Redis     config.Redis
		HTTP      config.HTTP
		Relay     config.Relay
		Kafka     config.Kafka
		Otel      config.Otel
		AI        config.AI
		Recommend config.Recommend
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	if cfg.HTTP.Swagger {
		if _, err := apicontract.Load(ctx); err != nil {
			return fmt.Errorf("error loading api contract: %w", err)
		}
	}

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

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("error creating redis client: %w", err)
	}
	defer redisClient.Close()

	redisCache := cache.NewRedisCache(redisClient, cfg.Redis.Prefix, cfg.Redis.TTL)

	kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("error creating kafka producer: %w", err)
	}
	defer kafkaProducer.Close()

	kafkaConsumer, err := mq.NewKafkaConsumer(ctx, cfg.Kafka, logger)
	if err != nil {
		return fmt.Errorf("error creating kafka consumer: %w", err)
	}
	defer kafkaConsumer.Close()

	productRepository := repository.NewProductRepository(dbClient)
	categoryRepository := repository.NewCategoryRepository(dbClient)
	cartRepository := repository.NewCartRepository(dbClient)
	orderRepository := repository.NewOrderRepository(dbClient)
	outboxMsgRepository := repository.NewOutboxMsgRepository(dbClient)

	productService := service.NewProductService(
		dbClient, productRepository, categoryRepository, outboxMsgRepository, redisCache, logger)
	categoryService := service.NewCategoryService(
		dbClient, categoryRepository, outboxMsgRepository, redisCache, logger)
	cartService := service.NewCartService(dbClient, cartRepository, productRepository)
	orderService := service.NewOrderService(dbClient, orderRepository, cartRepository, outboxMsgRepository)

	catalog := service.NewCatalog(productService, cartService)
	engine := recommend.NewEngine(catalog, logger)

	var completer assistant.Completer
	if cfg.AI.Enabled() {
		completer = assistant.NewOpenAICompleter(cfg.AI, logger)
	} else {
		logger.InfoContext(ctx, "no model api key configured, assistant uses canned replies")
	}
	shopAssistant := assistant.New(completer, catalog, logger)

	httpService, err := http.New(cfg.HTTP, cfg.Recommend, logger, http.Services{
		Products:    productService,
		Categories:  categoryService,
		Carts:       cartService,
		Orders:      orderService,
		Recommender: engine,
		Assistant:   shopAssistant,
	})
	if err != nil {
		return fmt.Errorf("error creating http service: %w", err)
	}

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	wg.Go(func() {
		svc := event.New(logger, kafkaConsumer, redisCache)
		cleanup, err := svc.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running event service: %w", err))
		}
		logger.InfoContext(ctx, "event service started")

		<-interruptChan

		logger.InfoContext(ctx, "event service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "event service is stopped")
	})

	wg.Go(func() {
		cleanup, err := httpService.Run(ctx)
		if err != nil {
			panic(fmt.Errorf("error running http service: %w", err))
		}

		logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

		<-interruptChan

		logger.InfoContext(ctx, "http service is shutting down")
		if err := cleanup(ctx); err != nil {
			logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
		}

		logger.InfoContext(ctx, "http service is stopped")
	})

	wg.Go(func() {
		svc := relay.NewService(cfg.Relay, logger, dbClient, outboxMsgRepository, kafkaProducer)
		cleanup := svc.Run(ctx)
		logger.InfoContext(ctx, "relay service started")

		<-interruptChan

		logger.InfoContext(ctx, "relay service is shutting down")
		cleanup()

		logger.InfoContext(ctx, "relay service is stopped")
	})

	wg.Wait()

	return nil
}
