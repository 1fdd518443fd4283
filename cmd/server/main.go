package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dharmasatrya/flightinsights/internal/cache"
	"github.com/dharmasatrya/flightinsights/internal/catalog"
	"github.com/dharmasatrya/flightinsights/internal/config"
	"github.com/dharmasatrya/flightinsights/internal/handler"
	"github.com/dharmasatrya/flightinsights/internal/itinerary"
	"github.com/dharmasatrya/flightinsights/internal/ratelimit"
	"github.com/dharmasatrya/flightinsights/internal/store"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to read .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	repo, err := store.NewCosmosRepository(store.CosmosConfig{
		Endpoint:  cfg.CosmosEndpoint,
		Key:       cfg.CosmosKey,
		Database:  cfg.CosmosDatabase,
		Container: cfg.CosmosContainer,
	}, logger)
	if err != nil {
		logger.Error("failed to create cosmos client", "error", err)
		os.Exit(1)
	}

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 10*time.Second)
	err = repo.Ping(pingCtx)
	cancelPing()
	if err != nil {
		logger.Error("failed to reach cosmos container", "database", cfg.CosmosDatabase, "container", cfg.CosmosContainer, "error", err)
		os.Exit(1)
	}
	logger.Info("cosmos container reachable", "database", cfg.CosmosDatabase, "container", cfg.CosmosContainer)

	limiter := ratelimit.NewOperationLimiter(ratelimit.Config{
		RequestsPerSecond: cfg.StoreRPS,
		BurstSize:         cfg.StoreBurst,
	})
	// full dumps are the most expensive query
	limiter.SetLimit(store.OpDumpAll, cfg.StoreRPS/2, max(cfg.StoreBurst/2, 1))

	searchCache, err := newCache(cfg)
	if err != nil {
		logger.Error("failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	defer searchCache.Close()
	logger.Info("cache ready", "backend", cfg.CacheBackend, "ttl", cfg.RedisTTL)

	cat := catalog.New(
		store.NewThrottled(repo, limiter),
		searchCache,
		itinerary.NewSummarizer(cfg.Currency),
		logger,
	)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
	}))

	handler.NewSearchHandler(cat, logger).Register(e)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func newLogger(level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func newCache(cfg config.Config) (cache.Cache, error) {
	switch cfg.CacheBackend {
	case config.CacheRedis:
		redisCfg := cache.DefaultRedisConfig()
		redisCfg.Host = cfg.RedisHost
		redisCfg.Port = cfg.RedisPort
		redisCfg.Password = cfg.RedisPassword
		redisCfg.DB = cfg.RedisDB
		redisCfg.TTL = cfg.RedisTTL
		return cache.NewRedisCache(redisCfg)
	case config.CacheNone:
		return cache.NewNoOpCache(), nil
	default:
		return cache.NewMemoryCache(), nil
	}
}

// requestLogger writes one structured line per request.
func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.Error("request", append(attrs, "error", v.Error)...)
				return nil
			}
			logger.Info("request", attrs...)
			return nil
		},
	})
}
