package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/adapter/http"
	kafkaadapter "github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/adapter/kafka"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/adapter/geocache"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/adapter/mapbox"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/adapter/openweather"
	redisadapter "github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/adapter/redis"
	s3adapter "github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/adapter/s3"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/adapter/sqlstore"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/auth"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/config"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/domain"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/observability"
	"github.com/msaemrow/Capstone-Project-One-Reel-Report/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sqlstore.Open(ctx, cfg.DBDriver, cfg.DBDSN, logger)
	if err != nil {
		logger.Error("failed to open database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}

	weather := openweather.NewClient(cfg.OpenWeatherKey, cfg.WeatherTimeout, cfg.CatchLocation, metrics, logger)

	// Geocoder selection (GEOCODER), cached in-process when GEOCODE_CACHE_SIZE > 0.
	var geocoder domain.Geocoder = weather
	if cfg.Geocoder == config.GeocoderMapbox {
		geocoder = mapbox.NewClient(cfg.MapboxToken, cfg.GeocodeTimeout, metrics, logger)
	}
	if cfg.GeocodeCacheSize > 0 {
		geocoder = geocache.NewCachedGeocoder(geocoder, cfg.GeocodeCacheSize, metrics)
	}
	logger.Info("geocoding configured", "provider", cfg.Geocoder, "cache_size", cfg.GeocodeCacheSize)

	var forecaster domain.Forecaster = weather
	var closers []func() error
	if cfg.RedisURL != "" {
		client, err := redisadapter.Connect(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("forecast cache disabled", "error", err)
		} else {
			forecaster = redisadapter.NewForecastCache(weather, client, cfg.ForecastCacheTTL, metrics, logger)
			closers = append(closers, client.Close)
			logger.Info("forecast cache enabled", "ttl", cfg.ForecastCacheTTL)
		}
	}

	var events service.EventPublisher
	if cfg.EventsEnabled() {
		publisher := kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaCatchTopic, metrics, logger)
		events = publisher
		closers = append(closers, publisher.Close)
		logger.Info("catch events enabled", "topic", cfg.KafkaCatchTopic)
	} else {
		logger.Info("catch events disabled")
	}

	var photos service.PhotoUploader
	if cfg.PhotosEnabled() {
		ps, err := s3adapter.NewPhotoStore(cfg.S3Region, cfg.S3Bucket, cfg.S3PublicURL, cfg.PhotoMaxEdge, cfg.PhotoMaxPixels, logger)
		if err != nil {
			logger.Error("failed to configure photo storage", "error", err)
			os.Exit(1)
		}
		photos = ps
		logger.Info("catch photos enabled", "bucket", cfg.S3Bucket, "region", cfg.S3Region)
	} else {
		logger.Info("catch photos disabled")
	}

	clock := clockwork.NewRealClock()
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL, clock)

	svc := httpadapter.Services{
		Accounts: service.NewAccounts(store, tokens, logger),
		Lakes:    service.NewLakes(store, geocoder, forecaster, logger),
		Species:  service.NewSpeciesCatalog(store),
		Lures:    service.NewLures(store),
		Catches: service.NewCatches(service.CatchesConfig{
			Store:    store,
			Weather:  weather,
			Events:   events,
			Photos:   photos,
			Clock:    clock,
			Location: cfg.CatchLocation,
			Metrics:  metrics,
			Logger:   logger,
		}),
		Reports: service.NewReports(store, logger),
	}

	var opts []httpadapter.Option
	if cfg.SecureCookies {
		opts = append(opts, httpadapter.WithSecureCookies())
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, store, metrics, logger, opts...)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			logger.Error("close error", "error", err)
		}
	}
	if err := store.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("shutdown complete")
}
