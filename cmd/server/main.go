package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aarthiksaathi/aarthik-be/internal/catalog"
	"github.com/aarthiksaathi/aarthik-be/internal/config"
	"github.com/aarthiksaathi/aarthik-be/internal/events"
	"github.com/aarthiksaathi/aarthik-be/internal/logging"
	"github.com/aarthiksaathi/aarthik-be/internal/metrics"
	"github.com/aarthiksaathi/aarthik-be/internal/server"
	"github.com/aarthiksaathi/aarthik-be/internal/storage"
	"github.com/aarthiksaathi/aarthik-be/internal/storage/cache"
	"github.com/aarthiksaathi/aarthik-be/internal/storage/memory"
	"github.com/aarthiksaathi/aarthik-be/internal/storage/postgres"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Info("no .env file found; relying on existing environment")
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx := context.Background()
	m := metrics.New()

	cat, err := catalog.Open(cfg.CatalogDir)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded",
		"schemes", len(cat.Schemes),
		"provisions", len(cat.Provisions),
		"investments", len(cat.Investments),
		"resources", len(cat.Resources),
	)

	store, err := openStore(ctx, cfg, logger, m)
	if err != nil {
		return err
	}
	defer store.Close()

	var publisher events.Publisher = events.Discard{}
	if len(cfg.Kafka.Brokers) > 0 {
		k, err := events.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger, m)
		if err != nil {
			return err
		}
		publisher = k
		logger.Info("publishing profile events", "topic", cfg.Kafka.Topic, "brokers", cfg.Kafka.Brokers)
	}

	srv := server.New(cfg, server.Deps{
		Store:     store,
		Catalog:   cat,
		Publisher: publisher,
		Logger:    logger,
		Metrics:   m,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Aarthik Saathi backend listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("graceful shutdown error", "error", err)
	}
	if err := publisher.Close(ctxShutdown); err != nil {
		logger.Error("event publisher shutdown error", "error", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger, m *metrics.Metrics) (storage.Store, error) {
	var store storage.Store
	switch cfg.StorageDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage; data is lost on restart")
		store = memory.New()
	default:
		pg, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		store = pg
	}

	if cfg.Redis.URL == "" {
		return store, nil
	}
	client, err := cache.Connect(ctx, cfg.Redis.URL)
	if err != nil {
		store.Close()
		return nil, err
	}
	logger.Info("profile cache enabled", "ttl", cfg.Redis.ProfileTTL.String())
	return cache.New(store, client, cfg.Redis.ProfileTTL, logger, m), nil
}
