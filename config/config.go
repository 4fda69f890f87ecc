package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is built once at process start and handed to the components that need it.
// Nothing reads the environment after LoadEnv returns.
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Catalog  CatalogConfig
}

type ServerConfig struct {
	AppEnv       string
	HTTPPort     string
	TimeZone     string
	Language     string
	CookieSecure bool
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
	AutoMigrate     bool
}

type JWTConfig struct {
	SecretKey  string
	SessionTTL time.Duration
	CookieName string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Enabled           bool
	Brokers           []string
	Topic             string
	SubscriptionTopic string
	GroupID           string
}

type CatalogConfig struct {
	PageSize            int
	VendorRailLimit     int
	DashboardPageSize   int
	DefaultVendorImage  string
	DefaultProductImage string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:       getEnv("APP_ENV", "dev"),
			HTTPPort:     getEnv("HTTP_PORT", ":8080"),
			TimeZone:     getEnv("TIME_ZONE", "America/Port-au-Prince"),
			Language:     getEnv("LANGUAGE_CODE", "fr"),
			CookieSecure: getEnvBool("COOKIE_SECURE", false),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "marketplace"),
			Password:        getEnv("POSTGRES_PASSWORD", "marketplace"),
			DBName:          getEnv("POSTGRES_DB", "marketplace"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
			AutoMigrate:     getEnvBool("POSTGRES_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-this-in-prod"),
			SessionTTL: time.Duration(getEnvInt("SESSION_TTL_HOURS", 24*14)) * time.Hour,
			CookieName: getEnv("SESSION_COOKIE_NAME", "sessionid"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Enabled:           getEnvBool("KAFKA_ENABLED", false),
			Brokers:           getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:             getEnv("KAFKA_TOPIC_PRODUCTS", "marketplace.products"),
			SubscriptionTopic: getEnv("KAFKA_TOPIC_SUBSCRIPTIONS", "billing.subscriptions"),
			GroupID:           getEnv("KAFKA_GROUP_ID", "marketplace-service"),
		},
		Catalog: CatalogConfig{
			PageSize:            getEnvInt("CATALOG_PAGE_SIZE", 12),
			VendorRailLimit:     getEnvInt("CATALOG_VENDOR_RAIL_LIMIT", 12),
			DashboardPageSize:   getEnvInt("DASHBOARD_PAGE_SIZE", 10),
			DefaultVendorImage:  getEnv("DEFAULT_VENDOR_IMAGE", "/static/default-avatar.png"),
			DefaultProductImage: getEnv("DEFAULT_PRODUCT_IMAGE", "/static/default-product.png"),
		},
	}
}

// Location resolves the configured time zone, falling back to UTC when it is unknown.
func (s ServerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (s ServerConfig) IsDevelopment() bool {
	return s.AppEnv == "dev" || s.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}
