package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"floracrm/internal/client"
	"floracrm/internal/commons"
	appconfig "floracrm/internal/config"
	"floracrm/internal/infrastructure/logger"
	"floracrm/internal/infrastructure/mysql"
	"floracrm/internal/inventory"
	"floracrm/internal/order"
	"floracrm/internal/product"
	"floracrm/internal/server"
	"floracrm/internal/stats"
)

func main() {
	cfg, err := commons.LoadConfig("internal/config/config.yaml")
	if err != nil {
		// Without a config file the environment supplies everything.
		cfg, err = appconfig.Load()
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
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
	zapLogger.Info("database connected")

	if err := mysql.EnsureSchema(db); err != nil {
		zapLogger.Fatal("ensuring schema", zap.Error(err))
	}

	clientCtrl := client.NewModule(db, zapLogger)
	productCtrl := product.NewModule(db, zapLogger)
	inventoryCtrl := inventory.NewModule(db, zapLogger)
	orderCtrl := order.NewModule(db, zapLogger)
	statsCtrl := stats.NewModule(db, zapLogger)

	router := server.NewRouter(clientCtrl, productCtrl, inventoryCtrl, orderCtrl, statsCtrl, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
