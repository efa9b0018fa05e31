package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

type Application struct {
	Name        string
	Environment string
	Debug       bool
	Port        int
	Timeout     time.Duration
}

// Event holds the immutable construction parameters of the single event this
// instance sells tickets for. Amounts are minor currency units.
type Event struct {
	Name              string
	Venue             string
	StartsAt          string
	FacePrice         int64
	MaxResales        int64
	MaxTicketsPerUser int64
	RoyaltyPercentage int64
	OrganizerAccount  string
}

type Kafka struct {
	BootstrapServers string
	SASLUsername     string
	SASLPassword     string
	SecurityProtocol string
}

type Redis struct {
	Address  string
	Password string
	DB       int
}

type PostgreSQL struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

type JWT struct {
	PrivateKey string
	PublicKey  string
}

type CORS struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	MaxAge           int
	AllowCredentials bool
}

type GCP struct {
	ProjectID string
}

type Config struct {
	Application Application
	Event       Event
	Kafka       Kafka
	Redis       Redis
	PostgreSQL  PostgreSQL
	JWT         JWT
	CORS        CORS
	GCP         GCP
}

var (
	once sync.Once
	c    *Config
)

func Get() *Config {
	once.Do(func() {
		godotenv.Load()

		c = &Config{
			Application: Application{
				Name:        getString("APP_NAME", "tm-ticket"),
				Environment: getString("APP_ENVIRONMENT", "development"),
				Debug:       getBool("APP_DEBUG", false),
				Port:        getInt("APP_PORT", 8080),
				Timeout:     getDuration("APP_TIMEOUT", 10*time.Second),
			},
			Event: Event{
				Name:              getString("EVENT_NAME", ""),
				Venue:             getString("EVENT_VENUE", ""),
				StartsAt:          getString("EVENT_STARTS_AT", ""),
				FacePrice:         getInt64("EVENT_FACE_PRICE", 0),
				MaxResales:        getInt64("EVENT_MAX_RESALES", 0),
				MaxTicketsPerUser: getInt64("EVENT_MAX_TICKETS_PER_USER", 1),
				RoyaltyPercentage: getInt64("EVENT_ROYALTY_PERCENTAGE", 0),
				OrganizerAccount:  getString("EVENT_ORGANIZER_ACCOUNT", "organizer"),
			},
			Kafka: Kafka{
				BootstrapServers: getString("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092"),
				SASLUsername:     getString("KAFKA_SASL_USERNAME", ""),
				SASLPassword:     getString("KAFKA_SASL_PASSWORD", ""),
				SecurityProtocol: getString("KAFKA_SECURITY_PROTOCOL", "plaintext"),
			},
			Redis: Redis{
				Address:  getString("REDIS_ADDRESS", "localhost:6379"),
				Password: getString("REDIS_PASSWORD", ""),
				DB:       getInt("REDIS_DB", 0),
			},
			PostgreSQL: PostgreSQL{
				DSN:          getString("POSTGRESQL_DSN", ""),
				MaxOpenConns: getInt("POSTGRESQL_MAX_OPEN_CONNS", 10),
				MaxIdleConns: getInt("POSTGRESQL_MAX_IDLE_CONNS", 5),
			},
			JWT: JWT{
				PrivateKey: getString("JWT_PRIVATE_KEY", ""),
				PublicKey:  getString("JWT_PUBLIC_KEY", ""),
			},
			CORS: CORS{
				AllowedOrigins:   getStrings("CORS_ALLOWED_ORIGINS", []string{"*"}),
				AllowedMethods:   getStrings("CORS_ALLOWED_METHODS", []string{"GET", "POST"}),
				AllowedHeaders:   getStrings("CORS_ALLOWED_HEADERS", []string{"Authorization", "Content-Type"}),
				ExposedHeaders:   getStrings("CORS_EXPOSED_HEADERS", []string{"X-Trace-Id"}),
				MaxAge:           getInt("CORS_MAX_AGE", 300),
				AllowCredentials: getBool("CORS_ALLOW_CREDENTIALS", true),
			},
			GCP: GCP{
				ProjectID: getString("GCP_PROJECT_ID", ""),
			},
		}
	})

	return c
}

func getString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getStrings(key string, fallback []string) []string {
	if v, ok := os.LookupEnv(key); ok {
		return strings.Split(v, ",")
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
