package shared

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// DevJWTSecret is only good enough for local runs.
const DevJWTSecret = "worldacross-dev-secret-change-me"

type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"prod"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	MetricsAddr string `envconfig:"METRICS_ADDR"`
	TrustProxy  bool   `envconfig:"TRUST_PROXY" default:"false"` // honour X-Forwarded-For / X-Real-IP

	DataSource string `envconfig:"DATA_SOURCE" default:"memory"` // memory|mysql
	MySQLDSN   string `envconfig:"MYSQL_DSN" default:"root:root@tcp(localhost:3306)/worldacross?parseTime=true&charset=utf8mb4&loc=UTC"`

	RedisAddr string        `envconfig:"REDIS_ADDR"` // empty disables the cache
	RedisPass string        `envconfig:"REDIS_PASSWORD"`
	RedisDB   int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL  time.Duration `ignored:"true"`
	CacheTTLS int           `envconfig:"CACHE_TTL_SECONDS" default:"900"`

	MockLatency time.Duration `envconfig:"MOCK_LATENCY" default:"500ms"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"worldacross-dev-secret-change-me"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	ContactRPS   float64 `envconfig:"CONTACT_RPS" default:"1"`
	ContactBurst int     `envconfig:"CONTACT_BURST" default:"5"`

	RemoteBase string `envconfig:"REMOTE_BASE_URL"`
	RemoteKey  string `envconfig:"REMOTE_API_KEY"`
	RemoteRPS  int    `envconfig:"REMOTE_RPS" default:"5"`

	SeedWorkers int `envconfig:"SEED_WORKERS" default:"8"`
}

// Load reads an optional .env file, then the process environment.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg(".env loaded")
	}

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	c.CacheTTL = time.Duration(c.CacheTTLS) * time.Second

	if c.JWTSecret == DevJWTSecret && c.AppEnv != "dev" && c.AppEnv != "development" {
		log.Warn().Msg("JWT_SECRET is the development default")
	}
	if c.DataSource != "memory" && c.DataSource != "mysql" {
		log.Fatal().Str("data_source", c.DataSource).Msg("DATA_SOURCE must be memory or mysql")
	}
	return c
}
