package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	apicontract "github.com/tuanvumaihuynh/storefront/api-contract"
	"github.com/tuanvumaihuynh/storefront/internal/config"
	"github.com/tuanvumaihuynh/storefront/internal/event"
	"github.com/tuanvumaihuynh/storefront/internal/http"
	"github.com/tuanvumaihuynh/storefront/internal/log"
	"github.com/tuanvumaihuynh/storefront/internal/relay"
	"github.com/tuanvumaihuynh/storefront/internal/repository"
	"github.com/tuanvumaihuynh/storefront/internal/service"
	"github.com/tuanvumaihuynh/storefront/internal/storage/mq"
	"github.com/tuanvumaihuynh/storefront/internal/telemetry"
	"github.com/tuanvumaihuynh/storefront/pkg/cmdutil"
	"github.com/tuanvumaihuynh/storefront/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running storefront server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log     config.Log
		HTTP    config.HTTP
		Catalog config.Catalog
		Cart    config.Cart
		Kafka   config.Kafka
		Relay   config.Relay
		Otel    config.Otel
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

	if cfg.HTTP.Swagger {
		if _, err := apicontract.Load(ctx); err != nil {
			return fmt.Errorf("error loading api contract: %w", err)
		}
	}

	catalogRepository, err := newCatalogRepository(cfg.Catalog)
	if err != nil {
		return fmt.Errorf("error loading catalog: %w", err)
	}
	cartRepository := repository.NewCartRepository()

	v, err := validator.NewDefaultValidator()
	if err != nil {
		return fmt.Errorf("error creating validator: %w", err)
	}

	var outboxMsgRepository repository.OutboxMsgRepository
	if cfg.Kafka.Enabled() {
		outboxMsgRepository = repository.NewOutboxMsgRepository()
	}

	catalogService := service.NewCatalogService(catalogRepository)
	cartService := service.NewCartService(cfg.Cart, v, catalogRepository, cartRepository, outboxMsgRepository)

	interruptChan := cmdutil.InterruptChan()
	var wg sync.WaitGroup

	if cfg.Kafka.Enabled() {
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

		wg.Go(func() {
			svc := event.New(logger, kafkaConsumer)
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
			svc := relay.NewService(cfg.Relay, logger, outboxMsgRepository, kafkaProducer)
			cleanup := svc.Run(ctx)
			logger.InfoContext(ctx, "relay service started")

			<-interruptChan

			logger.InfoContext(ctx, "relay service is shutting down")
			cleanup()

			logger.InfoContext(ctx, "relay service is stopped")
		})
	} else {
		logger.InfoContext(ctx, "kafka addresses not set, cart events are disabled")
	}

	wg.Go(func() {
		svc := http.New(cfg.HTTP, logger, catalogService, cartService)
		cleanup, err := svc.Run(ctx)
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

	wg.Wait()

	return nil
}

func newCatalogRepository(cfg config.Catalog) (repository.CatalogRepository, error) {
	if cfg.File == "" {
		return repository.NewDefaultCatalogRepository()
	}
	return repository.NewCatalogRepositoryFromFile(cfg.File)
}
