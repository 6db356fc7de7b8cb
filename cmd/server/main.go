package main

import (
	"context"

	"github.com/coocood/freecache"
	"github.com/infigaming-com/xe-bot/cache"
	"github.com/infigaming-com/xe-bot/config"
	"github.com/infigaming-com/xe-bot/exchange"
	"github.com/infigaming-com/xe-bot/interaction"
	"github.com/infigaming-com/xe-bot/lock"
	"github.com/infigaming-com/xe-bot/observability/metrics"
	"github.com/infigaming-com/xe-bot/rate"
	"github.com/infigaming-com/xe-bot/util"
	"github.com/infigaming-com/xe-bot/web"
	"github.com/infigaming-com/xe-bot/web/middleware"
	"go.uber.org/zap"
)

const serviceName = "xe-bot"

func main() {
	lg, flush := util.NewLogger(serviceName)
	defer flush()

	cfg, err := config.Load(lg)
	if err != nil {
		lg.Fatal("failed to load config", zap.Error(err))
	}
	if err := cfg.ValidateServer(); err != nil {
		lg.Fatal("invalid config", zap.Error(err))
	}

	ctx := context.Background()

	var (
		store  cache.Cache
		locker lock.Lock
	)
	switch cfg.StoreBackend {
	case config.StoreBackendRedis:
		client, err := util.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.DB, cfg.Redis.ConnectTimeout)
		if err != nil {
			lg.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		store = cache.NewRedisCache(lg, client)
		locker = lock.NewRedisLock(client)
	case config.StoreBackendMemory:
		lg.Warn("using in-process store, data is lost on restart")
		store = cache.NewFreeCache(freecache.NewCache(cfg.MemoryCacheSize))
	}

	var (
		serviceOpts  []exchange.ServiceOption
		providerOpts = []rate.FixerOption{rate.WithTimeout(cfg.Upstream.Timeout)}
	)
	if cfg.Metrics.Enabled() {
		exporter, shutdown, err := metrics.NewMetricExporter(
			metrics.WithServiceName(serviceName),
			metrics.WithEnvironment(cfg.Env),
			metrics.WithOTLPEndpoint(cfg.Metrics.OTLPEndpoint),
			metrics.WithOTLPGRPCEndpoint(cfg.Metrics.OTLPGRPCEndpoint),
			metrics.WithExportInterval(cfg.Metrics.ExportInterval),
		)
		if err != nil {
			lg.Fatal("failed to create metric exporter", zap.Error(err))
		}
		defer shutdown()
		serviceOpts = append(serviceOpts, exchange.WithMetrics(exporter))
		providerOpts = append(providerOpts, rate.WithRecorder(exchange.UpstreamRecorder(lg, exporter)))
	}

	provider := rate.NewFixerRateProvider(lg, cfg.Upstream.URL, cfg.CurrConvToken, providerOpts...)
	prefs := exchange.NewPreferenceStore(lg, store, locker)
	service := exchange.NewService(lg,
		provider,
		exchange.NewRateCache(lg, store, exchange.WithTTL(cfg.RateTTL)),
		exchange.NewTimeseriesCache(lg, store),
		serviceOpts...,
	)
	resolver := exchange.NewResolver(prefs, exchange.WithTimeseriesDays(cfg.TimeseriesDays))

	registry := interaction.NewRegistry(
		interaction.NewXECommand(lg, resolver, prefs, service, exchange.NewRenderer()),
	)
	dispatcher := interaction.NewDispatcher(lg, registry)

	err = web.StartServer(ctx, lg,
		web.WithMode(cfg.Server.Mode),
		web.WithPort(cfg.Server.Port),
		web.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		web.WithCustomHandler(middleware.CorrelationIdMiddleware()),
		web.WithCustomHandler(middleware.LoggingMiddleware(
			middleware.WithLogger(lg),
			middleware.WithExcludePaths([]string{"/", "/healthcheck"}),
		)),
		web.WithRoutes(web.InteractionRoutes(lg, dispatcher)),
	)
	if err != nil {
		lg.Error("web server stopped", zap.Error(err))
	}
}
