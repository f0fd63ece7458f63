package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"inventory/internal/amqp"
	"inventory/internal/cli"
	apphttp "inventory/internal/http"
	"inventory/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting inventory API server")

	cfg := cli.LoadAndValidateConfig(logger)

	sqliteRepo := cli.InitSQLite(logger, cfg.SQLiteDBPath)

	// AMQP is optional for the API: writes are queued in the outbox either
	// way, and the worker's pending sweep picks them up.
	var amqpClient *amqp.Client
	if client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue); err != nil {
		logger.Warn("AMQP unavailable, relying on worker pending sweep", "error", err)
	} else {
		amqpClient = client
	}

	service := services.NewRecordService(sqliteRepo, amqpClient)
	defer service.Close()

	srv := apphttp.NewServer(":"+cfg.Port, service, apphttp.Options{
		SummaryOptions: cfg.SummaryOptions(),
		DB:             sqliteRepo,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Server listening", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		return
	}

	cli.WaitForShutdown(ctx, done)
}
