package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         string        `env:"PORT" envDefault:"8000"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	JWTSecret    string        `env:"JWT_SECRET_KEY,required"`
	SessionTTL   time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"60s"`
	CacheMaxCost int64         `env:"CACHE_MAX_COST" envDefault:"10000"`
	KafkaBrokers []string      `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string        `env:"KAFKA_TOPIC" envDefault:"trade-requests"`
	KafkaGroupID string        `env:"KAFKA_GROUP_ID" envDefault:"trade-ledger"`
	DatabaseURL  string        `env:"DATABASE_URL"`
	SeedTrades   int           `env:"SEED_TRADES" envDefault:"20"`
	SeedPosition int           `env:"SEED_POSITIONS" envDefault:"5"`
	Seed         int64         `env:"SEED" envDefault:"0"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads .env when present, then the environment. Real environment
// variables win over .env entries.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)
	var cfg Config
	return cfg, env.Parse(&cfg)
}

func (c Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

func (c Config) JournalEnabled() bool { return c.DatabaseURL != "" }
