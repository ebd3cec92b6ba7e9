package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"moviecatalog/httpserver"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/logger"
	"moviecatalog/pkg/sentry"
	"moviecatalog/restclient"

	sentrygo "github.com/getsentry/sentry-go"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Cannot load config", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format).With("service", "movies")
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

	infos, err := restclient.NewMovieInfoClient(restclient.Options{
		BaseURL: cfg.Upstream.MovieInfoURL,
		Timeout: cfg.Upstream.Timeout,
		Retries: cfg.Upstream.Retries,
		Logger:  log,
	})
	if err != nil {
		slog.Error("Cannot create movie info client", "error", err)
		os.Exit(1)
	}
	reviews, err := restclient.NewReviewClient(restclient.Options{
		BaseURL: cfg.Upstream.ReviewsURL,
		Timeout: cfg.Upstream.Timeout,
		Retries: cfg.Upstream.Retries,
		Logger:  log,
	})
	if err != nil {
		slog.Error("Cannot create review client", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := httpserver.Default(cfg)
	server.Logger = log
	server.MovieService = movie.NewUsecase(infos, reviews, log)

	slog.Info("server started!", "addr", server.Addr,
		"movieinfo", cfg.Upstream.MovieInfoURL, "reviews", cfg.Upstream.ReviewsURL)
	if err := server.Run(ctx); err != nil {
		sentry.Error(err)
		slog.Error("server stopped with error", "error", err)
		return
	}
	slog.Info("server stopped")
}
