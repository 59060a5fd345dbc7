package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/RaikyD/orders-tracker/internal/application"
	"github.com/RaikyD/orders-tracker/internal/config"
	"github.com/RaikyD/orders-tracker/internal/kafka"
	"github.com/RaikyD/orders-tracker/internal/logger"
	"github.com/RaikyD/orders-tracker/internal/migrate"
	"github.com/RaikyD/orders-tracker/internal/presentation"
	"github.com/RaikyD/orders-tracker/internal/repository"
	"github.com/RaikyD/orders-tracker/internal/session"
	"github.com/RaikyD/orders-tracker/internal/telemetry"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init(false)
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}
	logger.Init(cfg.LOG_DEV)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	meter, shutdownTelemetry, err := telemetry.Setup(ctx, "orders-tracker", cfg.OTEL_ENDPOINT)
	if err != nil {
		logger.Error("telemetry setup failed", "err", err)
		os.Exit(1)
	}
	defer shutdownTelemetry(context.Background())

	metrics, err := telemetry.NewMetrics(meter)
	if err != nil {
		logger.Error("metrics setup failed", "err", err)
		os.Exit(1)
	}

	// Record store
	var (
		orderRepo repository.OrderRepo
		itemRepo  repository.ItemRepo
	)
	if cfg.STORE == config.StorePostgres {
		if err := migrate.Up(cfg.DB_STRING); err != nil {
			logger.Error("migrations failed", "err", err)
			os.Exit(1)
		}

		pool, err := pgxpool.New(ctx, cfg.DB_STRING)
		if err != nil {
			logger.Error("pgxpool new failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Error("db ping failed", "err", err)
			os.Exit(1)
		}
		logger.Info("db connected")

		orderRepo = repository.NewOrderRepository(pool)
		itemRepo = repository.NewItemRepository(pool)
	} else {
		logger.Warn("STORE=memory, records are lost on restart")
		store := repository.NewMemoryStore()
		orderRepo = store.Orders()
		itemRepo = store.Items()
	}

	// Change events
	var publisher application.EventPublisher = application.NopPublisher{}
	if cfg.KafkaEnabled() {
		prod := kafka.NewProducer(cfg.KAFKA_BROKERS, cfg.KAFKA_EVENTS_TOPIC)
		defer prod.Close()
		publisher = prod
	}

	ordersSvc := application.NewOrdersService(orderRepo, publisher, metrics)
	itemsSvc := application.NewItemsService(itemRepo, publisher, metrics)

	// Order intake
	var consumerDone <-chan struct{}
	if cfg.KafkaEnabled() {
		consumerDone = kafka.StartConsumer(ctx, ordersSvc, metrics, kafka.ConsumerConfig{
			Brokers: cfg.KAFKA_BROKERS,
			Topic:   cfg.KAFKA_INTAKE_TOPIC,
			GroupID: cfg.KAFKA_GROUP_ID,
		})
	}

	// Sessions
	sessions := session.NewMemoryStore(cfg.SESSION_TTL)
	sweeper, err := session.NewSweeper(sessions, cfg.SESSION_SWEEP_SCHEDULE)
	if err != nil {
		logger.Error("invalid SESSION_SWEEP_SCHEDULE", "err", err)
		os.Exit(1)
	}
	sweeper.Start()
	defer sweeper.Stop()

	guard := session.NewGuard(session.StaticCredentials{
		Username: cfg.ADMIN_USERNAME,
		Password: cfg.ADMIN_PASSWORD,
	}, sessions, metrics)

	web := presentation.NewWebHandler(ordersSvc, itemsSvc, guard)
	api := presentation.NewAPIHandler(ordersSvc, itemsSvc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP_PORT,
		Handler:           presentation.NewRouter(web, api, sessions, cfg.SESSION_TTL),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting http", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server crashed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("graceful shutdown failed", "err", err)
	}

	if cfg.KafkaEnabled() {
		select {
		case <-consumerDone:
		case <-shutdownCtx.Done():
			logger.Warn("kafka consumer did not stop in time")
		}
	}
}
