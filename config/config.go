package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
				PoolSize int    `envconfig:"POOL_SIZE"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		AccessSecret    string `envconfig:"ACCESS_SECRET"`
		AccessExpireMin int    `envconfig:"ACCESS_EXPIRE_MIN"`
		Issuer          string `envconfig:"ISSUER"`
	} `envconfig:"JWT"`

	Booking struct {
		TimeSlots             []string `envconfig:"TIME_SLOTS"              default:"09:00,10:30,12:00,14:00,15:30,17:00"`
		TimeoutSeconds        int      `envconfig:"TIMEOUT_SECONDS"         default:"10"`
		MaxRetry              int      `envconfig:"MAX_RETRY"               default:"5"`
		RetryBackoffMillis    int      `envconfig:"RETRY_BACKOFF_MS"        default:"20"`
		IdempotencyTTLSeconds int      `envconfig:"IDEMPOTENCY_TTL_SECONDS" default:"86400"`
	} `envconfig:"BOOKING"`

	Prediction struct {
		BaseURL            string   `envconfig:"BASE_URL"`
		TimeoutSeconds     int      `envconfig:"TIMEOUT_SECONDS"     default:"3"`
		RatePerSecond      float64  `envconfig:"RATE_PER_SECOND"     default:"20"`
		Burst              int      `envconfig:"BURST"               default:"5"`
		DefaultTemperature float64  `envconfig:"DEFAULT_TEMPERATURE" default:"30"`
		ModerateThreshold  float64  `envconfig:"MODERATE_THRESHOLD"  default:"0.4"`
		HighThreshold      float64  `envconfig:"HIGH_THRESHOLD"      default:"0.7"`
		Holidays           []string `envconfig:"HOLIDAYS"`
		CacheTTL           int      `envconfig:"CACHE_TTL"           default:"900"`
	} `envconfig:"PREDICTION"`

	Kafka struct {
		Enable  bool     `envconfig:"ENABLE"`
		Brokers []string `envconfig:"BROKERS"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topics struct {
			BookingCreated string `envconfig:"BOOKING_CREATED" default:"booking.created"`
		} `envconfig:"TOPICS"`
	} `envconfig:"KAFKA"`

	DB struct {
		Postgres struct {
			MaxRetry           int    `envconfig:"MAX_RETRY"             default:"5"`
			RetryWaitTime      int    `envconfig:"RETRY_WAIT_TIME"       default:"2"`
			MaxOpenConns       int    `envconfig:"MAX_OPEN_CONNS"        default:"10"`
			MaxIdleConns       int    `envconfig:"MAX_IDLE_CONNS"        default:"10"`
			ConnMaxLifetimeMin int    `envconfig:"CONN_MAX_LIFETIME_MIN" default:"30"`
			MigrationTable     string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate        bool   `envconfig:"AUTO_MIGRATE"`
			Prefix             string `envconfig:"PREFIX"`
			Read               struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
		} `envconfig:"OTEL"`
		S3 struct {
			BucketName      string `envconfig:"BUCKET_NAME"`
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			Region          string `envconfig:"REGION"            default:"auto"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		} `envconfig:"S3"`
		Weather struct {
			Enable         bool   `envconfig:"ENABLE"`
			GeocodeURL     string `envconfig:"GEOCODE_URL"     default:"https://nominatim.openstreetmap.org"`
			ForecastURL    string `envconfig:"FORECAST_URL"    default:"https://api.open-meteo.com"`
			TimeoutSeconds int    `envconfig:"TIMEOUT_SECONDS" default:"3"`
			CacheTTL       int    `envconfig:"CACHE_TTL"       default:"1800"`
		} `envconfig:"WEATHER"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		err = godotenv.Load(".env")
		if err != nil {
			log.Warn().Err(err).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Successfully loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to process environment variables")
		}

		initialized = true

		log.Info().Msg("Service configuration initialized successfully")
	})

	if err != nil {
		return fmt.Errorf("loading .env file: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}
