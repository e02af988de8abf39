package config

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	// CORSOrigin is the browser origin allowed to send credentialed
	// requests, e.g. https://campus.example.edu.
	CORSOrigin string `env:"CORS_ORIGIN, default=http://localhost:3000"`

	Token TokenConfig
	Mongo MongoConfig
	Redis RedisConfig
	Media MediaConfig
}

// TokenConfig carries the two independent signing secrets. Both are
// mandatory: the process refuses to start without them.
type TokenConfig struct {
	AccessSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=campus_cms"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type MediaConfig struct {
	CloudName string `env:"MEDIA_CLOUD_NAME"`
	APIKey    string `env:"MEDIA_API_KEY"`
	APISecret string `env:"MEDIA_API_SECRET"`
	Folder    string `env:"MEDIA_FOLDER, default=campus"`
	// CleanupWorkers sets the size of the async media-cleanup pool.
	CleanupWorkers int `env:"MEDIA_CLEANUP_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig and
// rejects configurations the service must not start with.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}

	if cfg.Token.AccessSecret == "" || cfg.Token.RefreshSecret == "" {
		return nil, errors.New("config: ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}

	return &cfg, nil
}
