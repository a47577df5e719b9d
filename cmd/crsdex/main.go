package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kartgeo/crsdex/internal/cache"
	"github.com/kartgeo/crsdex/internal/config"
	logpkg "github.com/kartgeo/crsdex/internal/logger"
	"github.com/kartgeo/crsdex/internal/metrics"
	"github.com/kartgeo/crsdex/internal/repository/registry"
	chiTransport "github.com/kartgeo/crsdex/internal/transport/chi"
	healthuc "github.com/kartgeo/crsdex/internal/usecase/health"
	searchuc "github.com/kartgeo/crsdex/internal/usecase/search"
	variantuc "github.com/kartgeo/crsdex/internal/usecase/variant"
	"github.com/kartgeo/crsdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting crsdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_host", cfg.Database.Host),
		zap.String("db_name", cfg.Database.Name),
		zap.String("cache_driver", cfg.Cache.Driver),
	)

	// Connect to the registry database
	db, err := registry.Open(
		cfg.Database.DSN(),
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
		time.Duration(cfg.Database.ConnMaxLifeSec)*time.Second,
	)
	if err != nil {
		logger.Fatal("Failed to connect to registry database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()
	logger.Info("Connected to registry database")

	repo := registry.New(db,
		registry.WithRanges(registry.Ranges{
			CustomMin:   cfg.Database.CustomSRIDMin,
			CustomMax:   cfg.Database.CustomSRIDMax,
			StandardMin: cfg.Database.StandardSRIDMin,
			StandardMax: cfg.Database.StandardSRIDMax,
		}),
		registry.WithTrigram(cfg.Database.Trigram),
		registry.WithLogger(logger),
	)

	// Response cache store based on driver
	ctx := context.Background()
	var store cache.Store
	var cachePinger healthuc.CachePinger
	switch cfg.Cache.Driver {
	case "redis":
		redisStore, err := cache.NewRedis(cache.RedisConfig{
			Addrs:    cfg.Cache.Addrs,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err != nil {
			logger.Fatal("Failed to create redis cache", zap.Error(err))
		}
		defer redisStore.Close()

		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := redisStore.WaitForReady(ctx, readiness); err != nil {
			logger.Fatal("Cache not ready", zap.Error(err))
		}
		store = redisStore
		cachePinger = redisStore
		logger.Info("Connected to redis cache", zap.Strings("addrs", cfg.Cache.Addrs))
	default:
		store = cache.NewMemory(cfg.Cache.MemoryCapacity)
	}

	resultCache := cache.NewResultStore(store, time.Duration(cfg.Cache.TTLSec)*time.Second, logger)

	// Variant generator with its own small in-process cache; variant
	// expansion is pure so process-local caching is always safe.
	generator := variantuc.NewGenerator(
		variantuc.WithCache(variantuc.NewBoundedCache(cfg.Search.VariantCacheSize)),
	)

	searchSvc, err := searchuc.New(repo, generator,
		searchuc.WithCache(resultCache),
		searchuc.WithWeights(weightsFromConfig(cfg.Search)),
		searchuc.WithLogger(logger),
		searchuc.WithTierWorkers(cfg.Search.TierWorkers),
	)
	if err != nil {
		logger.Fatal("Failed to create search service", zap.Error(err))
	}
	defer searchSvc.Close()

	healthSvc := healthuc.New(repo, cachePinger)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.HTTP.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// weightsFromConfig overlays configured scoring knobs on the engine
// defaults; zero-valued fields keep the defaults.
func weightsFromConfig(cfg config.SearchConfig) searchuc.Weights {
	w := searchuc.DefaultWeights()
	if cfg.DBWeight > 0 {
		w.DB = cfg.DBWeight
	}
	if cfg.TextWeight > 0 {
		w.Text = cfg.TextWeight
	}
	if cfg.ExactBonus > 0 {
		w.ExactBonus = cfg.ExactBonus
	}
	if cfg.PrefixBonus > 0 {
		w.PrefixBonus = cfg.PrefixBonus
	}
	if cfg.PriorityStep > 0 {
		w.PriorityStep = cfg.PriorityStep
	}
	if cfg.PriorityFloor > 0 {
		w.PriorityFloor = cfg.PriorityFloor
	}
	return w
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
