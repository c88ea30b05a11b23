package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
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
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"EMBALAGENS_APP_ENV" required:"true"`
	Port         string `envconfig:"EMBALAGENS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"EMBALAGENS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"EMBALAGENS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"EMBALAGENS_DB_DSN"`

	Host     string `envconfig:"EMBALAGENS_DB_HOST"`
	Port     int    `envconfig:"EMBALAGENS_DB_PORT" default:"5432"`
	User     string `envconfig:"EMBALAGENS_DB_USER"`
	Password string `envconfig:"EMBALAGENS_DB_PASSWORD"`
	Name     string `envconfig:"EMBALAGENS_DB_NAME"`
	SSLMode  string `envconfig:"EMBALAGENS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"EMBALAGENS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"EMBALAGENS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"EMBALAGENS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"EMBALAGENS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN builds the DSN from discrete fields when it was not
// provided directly.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database config requires EMBALAGENS_DB_DSN or host/user/name fields")
	}
	userInfo := url.User(d.User)
	if d.Password != "" {
		userInfo = url.UserPassword(d.User, d.Password)
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     userInfo,
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"EMBALAGENS_REDIS_URL"`
	Address      string        `envconfig:"EMBALAGENS_REDIS_ADDR"`
	Password     string        `envconfig:"EMBALAGENS_REDIS_PASSWORD"`
	DB           int           `envconfig:"EMBALAGENS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"EMBALAGENS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"EMBALAGENS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"EMBALAGENS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"EMBALAGENS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"EMBALAGENS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"EMBALAGENS_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"EMBALAGENS_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"EMBALAGENS_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"EMBALAGENS_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"EMBALAGENS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"EMBALAGENS_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"EMBALAGENS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"EMBALAGENS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"EMBALAGENS_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"EMBALAGENS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"EMBALAGENS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"EMBALAGENS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate   bool `envconfig:"EMBALAGENS_FEATURE_AUTO_MIGRATE" default:"false"`
	AllowDevLogin bool `envconfig:"EMBALAGENS_ALLOW_DEV_LOGIN" default:"false"`
}
