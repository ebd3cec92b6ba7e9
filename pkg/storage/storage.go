// Package storage opens the repositories selected by STORE_DRIVER.
package storage

import (
	"context"
	"fmt"
	"strconv"

	"moviecatalog/dynamodb"
	"moviecatalog/movieinfo"
	"moviecatalog/pkg/config"
	"moviecatalog/postgres"
	"moviecatalog/review"

	"gorm.io/gorm"
)

// Closer releases the connection behind a repository.
type Closer func() error

func noopCloser() error { return nil }

func OpenMovieInfoRepository(ctx context.Context, cfg *config.Config) (movieinfo.Repository, Closer, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverDynamoDB:
		client, err := dynamodb.NewClient(ctx, dynamoOptions(cfg))
		if err != nil {
			return nil, nil, err
		}
		return dynamodb.NewMovieInfoRepository(client, cfg.DynamoDB.MovieInfosTable), noopCloser, nil
	default:
		db, closer, err := openPostgres(cfg)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewMovieInfoRepository(db), closer, nil
	}
}

func OpenReviewRepository(ctx context.Context, cfg *config.Config) (review.Repository, Closer, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverDynamoDB:
		client, err := dynamodb.NewClient(ctx, dynamoOptions(cfg))
		if err != nil {
			return nil, nil, err
		}
		return dynamodb.NewReviewRepository(client, cfg.DynamoDB.ReviewsTable), noopCloser, nil
	default:
		db, closer, err := openPostgres(cfg)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewReviewRepository(db), closer, nil
	}
}

func PostgresOptions(cfg *config.Config) postgres.Options {
	return postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,

		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	}
}

func openPostgres(cfg *config.Config) (*gorm.DB, Closer, error) {
	db, err := postgres.NewConnection(PostgresOptions(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get postgres instance: %w", err)
	}
	return db, sqlDB.Close, nil
}

func dynamoOptions(cfg *config.Config) dynamodb.Options {
	return dynamodb.Options{
		Region:       cfg.DynamoDB.Region,
		Endpoint:     cfg.DynamoDB.Endpoint,
		AccessKey:    cfg.DynamoDB.AccessKey,
		SecretKey:    cfg.DynamoDB.SecretKey,
		SessionToken: cfg.DynamoDB.SessionToken,
	}
}
