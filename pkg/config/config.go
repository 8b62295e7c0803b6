package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Quota        QuotaConfig
	Purchase     PurchaseConfig
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
	Env          string `envconfig:"CHATSKINS_APP_ENV" required:"true"`
	Port         string `envconfig:"CHATSKINS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CHATSKINS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CHATSKINS_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"CHATSKINS_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CHATSKINS_DB_DSN"`
	Driver string `envconfig:"CHATSKINS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CHATSKINS_DB_HOST"`
	LegacyPort     int    `envconfig:"CHATSKINS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CHATSKINS_DB_USER"`
	LegacyPassword string `envconfig:"CHATSKINS_DB_PASSWORD"`
	LegacyName     string `envconfig:"CHATSKINS_DB_NAME"`
	LegacySSLMode  string `envconfig:"CHATSKINS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CHATSKINS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CHATSKINS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CHATSKINS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CHATSKINS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CHATSKINS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CHATSKINS_REDIS_ADDR"`
	Password     string        `envconfig:"CHATSKINS_REDIS_PASSWORD"`
	DB           int           `envconfig:"CHATSKINS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CHATSKINS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CHATSKINS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CHATSKINS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CHATSKINS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CHATSKINS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// QuotaConfig controls the VIP daily-free accounting window.
type QuotaConfig struct {
	Timezone string `envconfig:"CHATSKINS_QUOTA_TIMEZONE" default:"Local"`
}

// Location resolves the configured timezone, falling back to the host's.
func (q QuotaConfig) Location() *time.Location {
	name := strings.TrimSpace(q.Timezone)
	if name == "" || strings.EqualFold(name, "Local") {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}

type PurchaseConfig struct {
	LockTTL time.Duration `envconfig:"CHATSKINS_PURCHASE_LOCK_TTL" default:"10s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CHATSKINS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CHATSKINS_AUTO_MIGRATE" default:"false"`
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
