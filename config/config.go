package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

type Config struct {
	ServiceName string

	AppHost      string
	AppPort      string
	FrontendURL  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	MongoURI          string
	MongoDatabase     string
	MongoTransactions bool

	StrictDeliveryTransitions bool

	IdentityPublicKeyURL string
	IdentityIssuer       string
	IdentityAudience     string
	IdentityKeyTTL       time.Duration

	PaymentKey      string
	PaymentCurrency string

	LogSink  string
	LogDBDSN string
	LogDir   string
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	_ = godotenv.Load(".env")

	cfg := Config{}

	cfg.ServiceName = cast.ToString(getOrReturnDefault("SERVICE_NAME", "parcel-delivery"))

	cfg.AppHost = cast.ToString(getOrReturnDefault("APP_HOST", ""))
	cfg.AppPort = cast.ToString(getOrReturnDefault("APP_PORT", "3000"))
	cfg.FrontendURL = cast.ToString(getOrReturnDefault("FRONTEND_URL", "*"))
	cfg.ReadTimeout = cast.ToDuration(getOrReturnDefault("READ_TIMEOUT", "30s"))
	cfg.WriteTimeout = cast.ToDuration(getOrReturnDefault("WRITE_TIMEOUT", "30s"))

	cfg.MongoURI = cast.ToString(getOrReturnDefault("MONGO_URI", "mongodb://localhost:27017"))
	cfg.MongoDatabase = cast.ToString(getOrReturnDefault("MONGO_DATABASE", "ParcelDB"))
	cfg.MongoTransactions = cast.ToBool(getOrReturnDefault("MONGO_TRANSACTIONS", true))

	cfg.StrictDeliveryTransitions = cast.ToBool(getOrReturnDefault("STRICT_DELIVERY_TRANSITIONS", false))

	cfg.IdentityPublicKeyURL = cast.ToString(getOrReturnDefault("IDENTITY_PUBLIC_KEY_URL", ""))
	cfg.IdentityIssuer = cast.ToString(getOrReturnDefault("IDENTITY_ISSUER", ""))
	cfg.IdentityAudience = cast.ToString(getOrReturnDefault("IDENTITY_AUDIENCE", ""))
	cfg.IdentityKeyTTL = cast.ToDuration(getOrReturnDefault("IDENTITY_KEY_TTL", "1h"))

	cfg.PaymentKey = cast.ToString(getOrReturnDefault("PAYMENT_KEY", ""))
	cfg.PaymentCurrency = cast.ToString(getOrReturnDefault("PAYMENT_CURRENCY", "usd"))

	cfg.LogSink = cast.ToString(getOrReturnDefault("LOG_SINK", "mongo"))
	cfg.LogDBDSN = cast.ToString(getOrReturnDefault("LOG_DB_DSN", ""))
	cfg.LogDir = cast.ToString(getOrReturnDefault("LOG_DIR", "log/app"))

	return cfg
}

func (c Config) Addr() string {
	return c.AppHost + ":" + c.AppPort
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}
