package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/fondita/fondita-backend/pkg/enums"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Idempotency   IdempotencyConfig
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
	Env          string `envconfig:"FONDITA_APP_ENV" required:"true"`
	Port         string `envconfig:"FONDITA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FONDITA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FONDITA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FONDITA_DB_DSN"`
	Driver string `envconfig:"FONDITA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FONDITA_DB_HOST"`
	LegacyPort     int    `envconfig:"FONDITA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FONDITA_DB_USER"`
	LegacyPassword string `envconfig:"FONDITA_DB_PASSWORD"`
	LegacyName     string `envconfig:"FONDITA_DB_NAME"`
	LegacySSLMode  string `envconfig:"FONDITA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FONDITA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FONDITA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FONDITA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FONDITA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DBDriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"FONDITA_REDIS_URL" required:"true"`
	Password     string        `envconfig:"FONDITA_REDIS_PASSWORD"`
	DB           int           `envconfig:"FONDITA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FONDITA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FONDITA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FONDITA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FONDITA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FONDITA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret      string        `envconfig:"FONDITA_JWT_SECRET" required:"true"`
	AdminSecret string        `envconfig:"FONDITA_JWT_SECRET_ADMIN"`
	Issuer      string        `envconfig:"FONDITA_JWT_ISSUER" default:"fondita"`
	CustomerTTL time.Duration `envconfig:"FONDITA_JWT_CUSTOMER_TTL" default:"168h"`
	AdminTTL    time.Duration `envconfig:"FONDITA_JWT_ADMIN_TTL" default:"24h"`
}

// SecretFor picks the signing secret for a token namespace. Admin tokens use
// the dedicated secret when configured and fall back to the shared one.
func (j JWTConfig) SecretFor(kind enums.TokenKind) string {
	if kind == enums.TokenKindAdmin && j.AdminSecret != "" {
		return j.AdminSecret
	}
	return j.Secret
}

func (j JWTConfig) TTLFor(kind enums.TokenKind) time.Duration {
	if kind == enums.TokenKindAdmin {
		return j.AdminTTL
	}
	return j.CustomerTTL
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FONDITA_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FONDITA_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FONDITA_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FONDITA_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FONDITA_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"FONDITA_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"FONDITA_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"FONDITA_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"FONDITA_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"FONDITA_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"FONDITA_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type IdempotencyConfig struct {
	OrderTTL time.Duration `envconfig:"FONDITA_IDEMPOTENCY_ORDER_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FONDITA_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.IsSQLite() {
		return fmt.Errorf("%s is required when %s=sqlite", EnvDBDSN, EnvDBDriver)
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
