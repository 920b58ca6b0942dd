package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LIFTLEDGER_APP_ENV" required:"true"`
	Port         string `envconfig:"LIFTLEDGER_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LIFTLEDGER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LIFTLEDGER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"LIFTLEDGER_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"LIFTLEDGER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LIFTLEDGER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LIFTLEDGER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LIFTLEDGER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional: when URL is empty the auth rate limiter is disabled.
type RedisConfig struct {
	URL          string        `envconfig:"LIFTLEDGER_REDIS_URL"`
	PoolSize     int           `envconfig:"LIFTLEDGER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LIFTLEDGER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LIFTLEDGER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LIFTLEDGER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LIFTLEDGER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"LIFTLEDGER_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LIFTLEDGER_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"LIFTLEDGER_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// PasswordConfig carries the Argon2id work factors used when hashing credentials.
type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LIFTLEDGER_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LIFTLEDGER_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LIFTLEDGER_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LIFTLEDGER_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LIFTLEDGER_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow           time.Duration `envconfig:"LIFTLEDGER_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit    int           `envconfig:"LIFTLEDGER_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit          int           `envconfig:"LIFTLEDGER_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow        time.Duration `envconfig:"LIFTLEDGER_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterUsernameLimit int           `envconfig:"LIFTLEDGER_AUTH_RATE_LIMIT_REGISTER_USERNAME_LIMIT" default:"3"`
	RegisterIPLimit       int           `envconfig:"LIFTLEDGER_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LIFTLEDGER_AUTO_MIGRATE" default:"false"`
}
