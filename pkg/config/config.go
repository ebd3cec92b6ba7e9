package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverDynamoDB = "dynamodb"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`
	// RateLimit is the allowed requests per second per client IP. Zero disables rate limiting.
	RateLimit float64 `envconfig:"RATE_LIMIT"`
	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres"`

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"json"`
	}
	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT" default:"5432"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`

		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"10"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	}
	DynamoDB struct {
		Region          string `envconfig:"DDB_REGION"`
		Endpoint        string `envconfig:"DDB_ENDPOINT"`
		AccessKey       string `envconfig:"DDB_ACCESS_KEY"`
		SecretKey       string `envconfig:"DDB_SECRET_KEY"`
		SessionToken    string `envconfig:"DDB_SESSION_TOKEN"`
		MovieInfosTable string `envconfig:"DDB_MOVIE_INFOS_TABLE" default:"movie_infos"`
		ReviewsTable    string `envconfig:"DDB_REVIEWS_TABLE" default:"reviews"`
	}
	Upstream struct {
		MovieInfoURL string        `envconfig:"MOVIE_INFO_URL" default:"http://localhost:8080/v1/movieinfos"`
		ReviewsURL   string        `envconfig:"REVIEWS_URL" default:"http://localhost:8081/v1/reviews"`
		Timeout      time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"5s"`
		Retries      uint64        `envconfig:"UPSTREAM_RETRIES" default:"3"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres, StoreDriverDynamoDB:
	default:
		return nil, fmt.Errorf("load config error: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}
