package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// Geocoding providers selectable with GEOCODER.
const (
	GeocoderOpenWeather = "openweather"
	GeocoderMapbox      = "mapbox"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Persistence.
	DBDriver string
	DBDSN    string

	// Sessions.
	JWTSecret     string
	TokenTTL      time.Duration
	SecureCookies bool

	// Weather and geocoding.
	OpenWeatherKey   string
	WeatherTimeout   time.Duration
	Geocoder         string
	MapboxToken      string
	GeocodeTimeout   time.Duration
	GeocodeCacheSize int
	CatchLocation    *time.Location

	// Optional forecast cache; empty RedisURL disables it.
	RedisURL         string
	ForecastCacheTTL time.Duration

	// Optional catch photo storage; empty S3Bucket disables uploads.
	S3Bucket       string
	S3Region       string
	S3PublicURL    string
	PhotoMaxEdge   int
	PhotoMaxPixels int // decoding allocates 4 bytes per pixel

	// Optional catch event feed; no brokers disables it.
	KafkaBrokers    []string
	KafkaCatchTopic string
}

// PhotosEnabled reports whether catch photo uploads are configured.
func (c *Config) PhotosEnabled() bool { return c.S3Bucket != "" }

// EventsEnabled reports whether catch events are published.
func (c *Config) EventsEnabled() bool { return len(c.KafkaBrokers) > 0 }

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is loaded first when present;
// variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	weatherTimeout, err := parsePositiveDuration("WEATHER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	geocodeTimeout, err := parsePositiveDuration("GEOCODE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	tokenTTL, err := parsePositiveDuration("TOKEN_TTL", "24h")
	if err != nil {
		return nil, err
	}
	forecastTTL, err := parsePositiveDuration("FORECAST_CACHE_TTL", "30m")
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(sharedcfg.EnvOrDefault("CATCH_TIMEZONE", "Local"))
	if err != nil {
		return nil, errors.New("invalid CATCH_TIMEZONE")
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DBDriver: strings.ToLower(sharedcfg.EnvOrDefault("DB_DRIVER", "sqlite")),
		DBDSN:    sharedcfg.EnvOrDefault("DB_DSN", "reel_report.db"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenTTL:      tokenTTL,
		SecureCookies: parseBool("SECURE_COOKIES", false),

		OpenWeatherKey:   os.Getenv("OPENWEATHER_API_KEY"),
		WeatherTimeout:   weatherTimeout,
		Geocoder:         strings.ToLower(sharedcfg.EnvOrDefault("GEOCODER", GeocoderOpenWeather)),
		MapboxToken:      os.Getenv("MAPBOX_TOKEN"),
		GeocodeTimeout:   geocodeTimeout,
		GeocodeCacheSize: parsePositiveInt("GEOCODE_CACHE_SIZE", 1000),
		CatchLocation:    loc,

		RedisURL:         os.Getenv("REDIS_URL"),
		ForecastCacheTTL: forecastTTL,

		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       sharedcfg.EnvOrDefault("S3_REGION", "us-east-2"),
		S3PublicURL:    strings.TrimRight(os.Getenv("S3_PUBLIC_URL"), "/"),
		PhotoMaxEdge:   parsePositiveInt("PHOTO_MAX_EDGE", 1024),
		PhotoMaxPixels: parsePositiveInt("PHOTO_MAX_PIXELS", 40_000_000),

		KafkaCatchTopic: sharedcfg.EnvOrDefault("KAFKA_CATCH_TOPIC", "reel-report.catches"),
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = sharedcfg.ParseBrokers(brokers)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "sqlite", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDSN == "" {
		return errors.New("DB_DSN is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.OpenWeatherKey == "" {
		return errors.New("OPENWEATHER_API_KEY is required")
	}
	switch c.Geocoder {
	case GeocoderOpenWeather:
	case GeocoderMapbox:
		if c.MapboxToken == "" {
			return errors.New("GEOCODER is mapbox but MAPBOX_TOKEN is not set")
		}
	default:
		return fmt.Errorf("unsupported GEOCODER %q", c.Geocoder)
	}
	if c.EventsEnabled() && c.KafkaCatchTopic == "" {
		return errors.New("KAFKA_CATCH_TOPIC is required when KAFKA_BROKERS is set")
	}
	return nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func parseBool(key string, def bool) bool {
	if s := os.Getenv(key); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}
	return def
}
