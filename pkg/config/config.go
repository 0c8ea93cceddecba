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

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	// Dev-only defaults. Load refuses to start a prod process with these.
	DefaultJWTSecret  = "dev-secret-change-me"
	DefaultSQLitePath = "surjo.db"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
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
	if cfg.App.IsProd() && cfg.JWT.Secret == DefaultJWTSecret {
		return nil, fmt.Errorf("SURJO_JWT_SECRET must be set in prod")
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SURJO_APP_ENV" default:"dev"`
	Port         string `envconfig:"SURJO_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SURJO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SURJO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver string `envconfig:"SURJO_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"SURJO_DB_DSN"`

	// SQLite deployments point at a single file.
	SQLitePath string `envconfig:"SURJO_DB_PATH" default:"surjo.db"`

	// Postgres deployments may supply discrete parts instead of a DSN.
	Host     string `envconfig:"SURJO_DB_HOST"`
	Port     int    `envconfig:"SURJO_DB_PORT" default:"5432"`
	User     string `envconfig:"SURJO_DB_USER"`
	Password string `envconfig:"SURJO_DB_PASSWORD"`
	Name     string `envconfig:"SURJO_DB_NAME"`
	SSLMode  string `envconfig:"SURJO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SURJO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SURJO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SURJO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SURJO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"SURJO_REDIS_URL"`
	Address      string        `envconfig:"SURJO_REDIS_ADDR"`
	Password     string        `envconfig:"SURJO_REDIS_PASSWORD"`
	DB           int           `envconfig:"SURJO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SURJO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SURJO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SURJO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SURJO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SURJO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint is configured at all. Redis is
// optional; without it the auth rate limiter disables itself.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret          string `envconfig:"SURJO_JWT_SECRET" default:"dev-secret-change-me"`
	Issuer          string `envconfig:"SURJO_JWT_ISSUER" default:"surjo"`
	ExpirationHours int    `envconfig:"SURJO_JWT_EXPIRATION_HOURS" default:"168"`
}

// TTL returns the session token lifetime. 7 days unless overridden.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationHours <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationHours) * time.Hour
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SURJO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SURJO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SURJO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SURJO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SURJO_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow      time.Duration `envconfig:"SURJO_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit  int           `envconfig:"SURJO_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit     int           `envconfig:"SURJO_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	CreateWindow     time.Duration `envconfig:"SURJO_AUTH_RATE_LIMIT_CREATE_WINDOW" default:"5m"`
	CreateEmailLimit int           `envconfig:"SURJO_AUTH_RATE_LIMIT_CREATE_EMAIL_LIMIT" default:"3"`
	CreateIPLimit    int           `envconfig:"SURJO_AUTH_RATE_LIMIT_CREATE_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SURJO_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.IsSQLite() {
		if db.DSN == "" {
			db.DSN = db.SQLitePath
		}
		return nil
	}

	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		"SURJO_DB_HOST": db.Host,
		"SURJO_DB_USER": db.User,
		"SURJO_DB_NAME": db.Name,
	}
	for _, key := range []string{"SURJO_DB_HOST", "SURJO_DB_USER", "SURJO_DB_NAME"} {
		if parts[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either SURJO_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
