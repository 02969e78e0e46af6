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

	"github.com/vietbites/discovery/internal/config"
	dbRedis "github.com/vietbites/discovery/internal/db/redis"
	"github.com/vietbites/discovery/internal/domain/geo"
	"github.com/vietbites/discovery/internal/gazetteer"
	logpkg "github.com/vietbites/discovery/internal/logger"
	"github.com/vietbites/discovery/internal/metrics"
	"github.com/vietbites/discovery/internal/repository/catalog"
	chiTransport "github.com/vietbites/discovery/internal/transport/chi"
	"github.com/vietbites/discovery/internal/transport/mapbox"
	geocodeuc "github.com/vietbites/discovery/internal/usecase/geocode"
	searchuc "github.com/vietbites/discovery/internal/usecase/search"
	"github.com/vietbites/discovery/internal/version"
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

	logger.Info("Starting discovery API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create catalog store", zap.Error(err))
	}
	defer store.Close()

	// Wait for the store to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Catalog store not ready", zap.Error(err))
	}
	logger.Info("Connected to catalog store")

	// Register geocoding metrics explicitly (no init())
	metrics.RegisterGeocodingMetrics()

	catalogRepo := catalog.New(store, cfg.Database.KeyPrefix).
		WithMaxCandidates(cfg.Search.MaxCandidates)
	if err := catalogRepo.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure catalog index", zap.Error(err))
	}

	// Build the geocoding resolver chain — composition root.
	// Without an access token the resolver runs gazetteer-plus-fallback only.
	var provider geocodeuc.CoordinateProvider
	if cfg.Geocoding.AccessToken != "" {
		provider = mapbox.NewClient(&mapbox.Config{
			SearchBaseURL:  cfg.Geocoding.SearchBaseURL,
			GeocodeBaseURL: cfg.Geocoding.GeocodeBaseURL,
			AccessToken:    cfg.Geocoding.AccessToken,
			Country:        cfg.Geocoding.Country,
			Language:       cfg.Geocoding.Language,
			BBox:           cfg.Geocoding.BBox.String(),
			Limit:          cfg.Geocoding.Limit,
			Timeout:        time.Duration(cfg.Geocoding.TimeoutSec) * time.Second,
			Logger:         logger,
		})
		logger.Info("Geocoding provider configured",
			zap.String("country", cfg.Geocoding.Country),
			zap.String("language", cfg.Geocoding.Language),
		)
	} else {
		logger.Warn("No geocoding access token; resolver will use gazetteer and fallback only")
	}

	defaultCenter, err := geo.NewPoint(cfg.Geocoding.DefaultCenter.Lat, cfg.Geocoding.DefaultCenter.Lon)
	if err != nil {
		logger.Fatal("Invalid default center", zap.Error(err))
	}

	gaz := gazetteer.New(cfg.Geocoding.Gazetteer)
	resolver := geocodeuc.NewResolver(gaz, provider, defaultCenter, "Đà Nẵng")

	// Create use case services
	searchSvc := searchuc.New(catalogRepo, resolver)

	// Create chi server
	server := chiTransport.NewServer(searchSvc, catalogRepo, logger).
		WithPagination(cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
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
