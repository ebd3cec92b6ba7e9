package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"moviecatalog/httpserver"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/logger"
	"moviecatalog/pkg/sentry"
	"moviecatalog/pkg/storage"
	"moviecatalog/review"

	sentrygo "github.com/getsentry/sentry-go"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format).With("service", "reviews")
	slog.SetDefault(log)

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		slog.Error("Cannot init sentry", "error", err)
		os.Exit(1)
	}
	defer sentrygo.Flush(sentry.FlushTime)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := storage.OpenReviewRepository(ctx, cfg)
	if err != nil {
		sentry.Fatal(err)
		slog.Error("Cannot open review store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeRepo(); err != nil {
			slog.Warn("close review store", "error", err)
		}
	}()

	server := httpserver.Default(cfg)
	server.Logger = log
	server.ReviewService = review.NewUsecase(repo)

	slog.Info("server started!", "addr", server.Addr, "driver", cfg.StoreDriver)
	if err := server.Run(ctx); err != nil {
		sentry.Error(err)
		slog.Error("server stopped with error", "error", err)
		return
	}
	slog.Info("server stopped")
}
