package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "ALUNA"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "ALUNA_DB_DSN"
	EnvDBHost = "ALUNA_DB_HOST"
	EnvDBUser = "ALUNA_DB_USER"
	EnvDBName = "ALUNA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Cart         CartConfig
	Checkout     CheckoutConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"ALUNA_APP_ENV" required:"true"`
	Port         string `envconfig:"ALUNA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ALUNA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ALUNA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ALUNA_DB_DSN"`
	Driver string `envconfig:"ALUNA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ALUNA_DB_HOST"`
	LegacyPort     int    `envconfig:"ALUNA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ALUNA_DB_USER"`
	LegacyPassword string `envconfig:"ALUNA_DB_PASSWORD"`
	LegacyName     string `envconfig:"ALUNA_DB_NAME"`
	LegacySSLMode  string `envconfig:"ALUNA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ALUNA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ALUNA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ALUNA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ALUNA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ALUNA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ALUNA_REDIS_ADDR"`
	Password     string        `envconfig:"ALUNA_REDIS_PASSWORD"`
	DB           int           `envconfig:"ALUNA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ALUNA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ALUNA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ALUNA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ALUNA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ALUNA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"ALUNA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"ALUNA_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"ALUNA_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"ALUNA_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the Redis session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	BcryptCost int `envconfig:"ALUNA_BCRYPT_COST" default:"12"`
}

type CartConfig struct {
	SessionTTL time.Duration `envconfig:"ALUNA_CART_SESSION_TTL" default:"168h"`
}

type CheckoutConfig struct {
	PickupAddress string `envconfig:"ALUNA_PICKUP_ADDRESS" default:"124 F.Vergel Concepcion Baliuag Bulacan (Pickup Only)"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ALUNA_CORS_ALLOWED_ORIGINS" default:"*"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ALUNA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
