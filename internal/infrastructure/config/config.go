package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	// AdminPassword is only used to seed the first administrator account.
	AdminPassword string `env:"ADMIN_PASSWORD, default=changeme"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Insights InsightsConfig
	Workers  WorkersConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=discovery"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type InsightsConfig struct {
	APIKey string `env:"INSIGHTS_API_KEY"`
	Model  string `env:"INSIGHTS_MODEL, default=gemini-3-flash-preview"`
}

type WorkersConfig struct {
	ClickWorkers        int    `env:"CLICK_WORKERS,        default=8"`
	MaintenanceInterval string `env:"MAINTENANCE_INTERVAL, default=5m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
