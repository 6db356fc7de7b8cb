// Package config loads process configuration from the environment, after
// optionally seeding it from a .env file.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

const (
	StoreBackendRedis  = "redis"
	StoreBackendMemory = "memory"
)

type ServerConfig struct {
	Port int64  `envconfig:"PORT" default:"8080"`
	Mode string `envconfig:"MODE" default:"release"`

	// ShutdownTimeout bounds how long in-flight interactions may drain.
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

type RedisConfig struct {
	Addr           string        `envconfig:"ADDR" default:"localhost:6379"`
	DB             int           `envconfig:"DB" default:"0"`
	ConnectTimeout time.Duration `envconfig:"CONNECT_TIMEOUT" default:"5s"`
}

type UpstreamConfig struct {
	URL     string        `envconfig:"URL" default:"https://api.apilayer.com/fixer"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s"`
}

type MetricsConfig struct {
	OTLPEndpoint     string        `envconfig:"OTLP_ENDPOINT"`
	OTLPGRPCEndpoint string        `envconfig:"OTLP_GRPC_ENDPOINT"`
	ExportInterval   time.Duration `envconfig:"EXPORT_INTERVAL" default:"10s"`
}

// Enabled reports whether any collector endpoint is configured.
func (m MetricsConfig) Enabled() bool {
	return m.OTLPEndpoint != "" || m.OTLPGRPCEndpoint != ""
}

type DiscordConfig struct {
	AppID    string `envconfig:"APP_ID"`
	BotToken string `envconfig:"BOT_TOKEN"`
	APIURL   string `envconfig:"API_URL" default:"https://discord.com/api/v10"`
}

type App struct {
	Env             string         `envconfig:"ENV" default:"development"`
	Server          ServerConfig   `envconfig:"SERVER"`
	StoreBackend    string         `envconfig:"STORE_BACKEND" default:"redis"`
	Redis           RedisConfig    `envconfig:"REDIS"`
	MemoryCacheSize int            `envconfig:"MEMORY_CACHE_SIZE" default:"104857600"`
	CurrConvToken   string         `envconfig:"CURR_CONV_TOKEN"`
	Upstream        UpstreamConfig `envconfig:"UPSTREAM"`
	RateTTL         time.Duration  `envconfig:"RATE_TTL" default:"4h"`
	TimeseriesDays  int            `envconfig:"TIMESERIES_DAYS" default:"14"`
	Metrics         MetricsConfig  `envconfig:"METRICS"`
	Discord         DiscordConfig  `envconfig:"DISCORD"`
}

// Load reads the first .env file found among envFiles (or ./.env when none
// are given) and then the process environment. Missing files are not an
// error; variables already set in the environment win.
func Load(lg *zap.Logger, envFiles ...string) (*App, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		lg.Debug("no .env file loaded, using process environment", zap.Error(err))
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}

	lg.Info("config loaded",
		zap.String("env", cfg.Env),
		zap.Int64("port", cfg.Server.Port),
		zap.String("storeBackend", cfg.StoreBackend),
		zap.String("upstreamUrl", cfg.Upstream.URL),
		zap.String("currConvToken", maskValue(cfg.CurrConvToken)),
		zap.Duration("rateTtl", cfg.RateTTL),
		zap.Bool("metricsEnabled", cfg.Metrics.Enabled()),
	)
	return &cfg, nil
}

// ValidateServer checks what the webhook server needs to start.
func (a *App) ValidateServer() error {
	if a.CurrConvToken == "" {
		return fmt.Errorf("CURR_CONV_TOKEN is required")
	}
	switch a.StoreBackend {
	case StoreBackendRedis, StoreBackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", a.StoreBackend)
	}
	if a.TimeseriesDays <= 0 {
		return fmt.Errorf("TIMESERIES_DAYS must be positive, got %d", a.TimeseriesDays)
	}
	return nil
}

// ValidateRegister checks what command registration needs.
func (a *App) ValidateRegister() error {
	if a.Discord.AppID == "" || a.Discord.BotToken == "" {
		return fmt.Errorf("DISCORD_APP_ID and DISCORD_BOT_TOKEN are required")
	}
	return nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
