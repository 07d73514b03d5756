package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"atelier/internal/address"
	"atelier/internal/auth"
	"atelier/internal/commons"
	"atelier/internal/customer"
	"atelier/internal/infrastructure/broker"
	"atelier/internal/infrastructure/logger"
	"atelier/internal/infrastructure/mysql"
	"atelier/internal/infrastructure/storage"
	"atelier/internal/item"
	"atelier/internal/metrics"
	"atelier/internal/order"
	"atelier/internal/postal"
	"atelier/internal/server"
)

func main() {
	cfg, err := commons.LoadConfig("internal/config/config.yaml")
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()

	store, err := storage.NewClient(context.Background())
	if err != nil {
		zapLogger.Fatal("creating storage client", zap.Error(err))
	}
	defer store.Close()

	// Broker outages must not keep the API down; events are skipped
	// until the next restart finds it again.
	publisher, err := broker.NewPublisher(cfg.Broker)
	if err != nil {
		zapLogger.Warn("broker unavailable, events disabled", zap.Error(err))
		publisher = nil
	} else {
		defer publisher.Close()
	}

	authModule := auth.NewModule(db, cfg.Auth, zapLogger)

	router := server.NewRouter(server.Controllers{
		Auth:     authModule,
		Customer: customer.NewModule(db, cfg.Storage, store, zapLogger),
		Address:  address.NewModule(db, zapLogger),
		Item:     item.NewModule(db, cfg.Storage, store, zapLogger),
		Order:    order.NewModule(db, cfg, store, publisher, zapLogger),
		Metrics:  metrics.NewModule(db, zapLogger),
		Postal:   postal.NewController(postal.NewClient(cfg.Postal), zapLogger),
	}, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("forced shutdown", zap.Error(err))
	}

	zapLogger.Info("server stopped")
}
